// Package apispec embeds the OpenAPI description of the roadmap API and
// validates request and response payloads against its component schemas.
package apispec
