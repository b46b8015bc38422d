// Package model defines the typed records shared by the roadmap wizard, the
// roadmap backend, and the renderers. FormInput is what the wizard collects
// across its three steps; Roadmap is what the backend returns and what the
// renderers project into display trees. JSON field names follow the camelCase
// wire format used by the generate-roadmap endpoint (currentRole,
// marketInsights, inDemandSkills, ...). Experience and Timeline are closed
// enumerations; their Options helpers expose the display labels used by the
// terminal and HTML wizards.
package model
