// Package runner drives a model's own scripts: ./clean and ./mk in the
// foreground, then ./rn detached so the evolution keeps going after
// starling exits.
package runner
