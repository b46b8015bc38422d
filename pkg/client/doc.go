// Package client calls a roadmap backend over HTTP. Client satisfies
// wizard.Generator, so a wizard session can submit straight to a remote
// /generate-roadmap endpoint.
package client
