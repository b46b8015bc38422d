// Package tui runs the career wizard in a terminal using survey prompts. The
// PromptDriver seam lets tests script answers without a TTY.
package tui
