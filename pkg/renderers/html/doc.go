// Package html renders the wizard steps, the roadmap result, and the saved
// roadmaps dashboard as server-side HTML pages using pongo2 templates embedded
// in the binary.
package html
