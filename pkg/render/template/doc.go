// Package template defines the template engine seam used by the HTML
// renderer. The pongo2-backed implementation lives in the gotemplate
// subpackage.
package template
