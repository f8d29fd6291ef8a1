package exec

import (
	"bytes"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// PrefixWriter labels every line of a script's output, so interleaved
// clean and build logs stay attributable.
type PrefixWriter struct {
	mu     sync.Mutex
	prefix string
	writer io.Writer
	buffer []byte
}

// NewPrefixWriter creates a writer that renders prefix in gray before
// each line. An empty prefix passes lines through unchanged.
func NewPrefixWriter(writer io.Writer, prefix string) *PrefixWriter {
	if prefix != "" {
		prefix = prefixStyle.Render(prefix)
	}
	return &PrefixWriter{
		prefix: prefix,
		writer: writer,
	}
}

var prefixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Write emits every complete line and buffers a trailing partial line.
func (p *PrefixWriter) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buffer = append(p.buffer, data...)
	for {
		i := bytes.IndexByte(p.buffer, '\n')
		if i < 0 {
			break
		}
		if err := p.emit(p.buffer[:i+1]); err != nil {
			return 0, err
		}
		p.buffer = p.buffer[i+1:]
	}
	return len(data), nil
}

// Flush writes any buffered partial line, terminated with a newline.
func (p *PrefixWriter) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buffer) == 0 {
		return nil
	}
	line := append(p.buffer, '\n')
	p.buffer = nil
	return p.emit(line)
}

func (p *PrefixWriter) emit(line []byte) error {
	out := make([]byte, 0, len(p.prefix)+len(line))
	out = append(out, p.prefix...)
	out = append(out, line...)
	_, err := p.writer.Write(out)
	return err
}
