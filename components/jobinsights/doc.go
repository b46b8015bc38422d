// Package jobinsights serves market insight data over net/http: insights for a
// job title, trending skills for an industry, and a title search that returns
// JSON options for the wizard's dream job field.
//
// Handlers respond to GET and HEAD. Data comes from an insights.Catalog,
// the built-in one unless WithCatalog is given.
package jobinsights
