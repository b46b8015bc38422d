// Package server exposes the roadmap service over HTTP: the JSON API the
// wizard client talks to (/generate-roadmap, insights, OpenAPI document) and
// a server-rendered version of the wizard with cookie-scoped sessions.
package server
