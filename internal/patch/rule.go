package patch

import (
	"regexp"
	"strings"
)

// Rule is a single substitution. Replacement is expanded with
// regexp.Regexp.ReplaceAllString, so $1 and ${name} refer to groups.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule compiles pattern. It panics on an invalid expression and is
// meant for the fixed rule tables.
func NewRule(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}

// Literal escapes s for use inside a replacement template.
func Literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// Apply runs rules over lines and returns the patched copy. lines is not
// modified.
func Apply(lines []string, rules []Rule) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ApplyLine(line, rules)
	}
	return out
}

// ApplyLine patches a single line, keeping its "\n" or "\r\n" terminator.
func ApplyLine(line string, rules []Rule) string {
	body, eol := splitEOL(line)
	for _, r := range rules {
		if r.Pattern.MatchString(body) {
			return r.Pattern.ReplaceAllString(body, r.Replacement) + eol
		}
	}
	return line
}

// SplitLines splits content after each "\n". A trailing newline does not
// produce an empty final element.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func splitEOL(line string) (body, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
