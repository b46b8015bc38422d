package apispec

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-roadmap/pkg/model"
)

//go:embed openapi.yaml
var rawDocument []byte

// Component schema names referenced by the validators.
const (
	SchemaFormInput      = "FormInput"
	SchemaRoadmap        = "Roadmap"
	SchemaMarketInsights = "MarketInsights"
	SchemaTrendingSkills = "TrendingSkills"
)

// ErrUnknownSchema is returned when a schema name is not in components.
var ErrUnknownSchema = errors.New("apispec: unknown schema")

// Document is the parsed, validated OpenAPI description.
type Document struct {
	spec *openapi3.T
	json []byte
}

var (
	defaultOnce sync.Once
	defaultDoc  *Document
	defaultErr  error
)

// Raw returns a copy of the embedded YAML document.
func Raw() []byte {
	return append([]byte(nil), rawDocument...)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return LoadData(ctx, rawDocument)
}

// LoadData parses and validates an OpenAPI document supplied by the caller.
func LoadData(ctx context.Context, raw []byte) (*Document, error) {
	if len(raw) == 0 {
		return nil, errors.New("apispec: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apispec: invalid document: %w", err)
	}
	encoded, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("apispec: encode document: %w", err)
	}
	return &Document{spec: spec, json: encoded}, nil
}

// Default returns the embedded document, loading it once per process.
func Default() (*Document, error) {
	defaultOnce.Do(func() {
		defaultDoc, defaultErr = Load(context.Background())
	})
	return defaultDoc, defaultErr
}

// JSON returns the document encoded as JSON, as served on /openapi.json.
func (d *Document) JSON() []byte {
	return append([]byte(nil), d.json...)
}

// Version reports info.version.
func (d *Document) Version() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Version
}

// Title reports info.title.
func (d *Document) Title() string {
	if d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// ValidateFormInput checks in against the FormInput schema.
func (d *Document) ValidateFormInput(in model.FormInput) error {
	return d.Validate(SchemaFormInput, in)
}

// ValidateRoadmap checks record against the Roadmap schema. Nil slices are
// normalized first so an empty list is not reported as null.
func (d *Document) ValidateRoadmap(record model.Roadmap) error {
	return d.Validate(SchemaRoadmap, record.Normalize())
}

// Validate encodes value as JSON and checks it against the named schema.
func (d *Document) Validate(schema string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("apispec: encode %s: %w", schema, err)
	}
	return d.ValidateJSON(schema, raw)
}

// ValidateJSON checks a raw JSON payload against the named schema. Schema
// violations are reported as *ValidationError; malformed JSON is reported as
// a plain error.
func (d *Document) ValidateJSON(schema string, raw []byte) error {
	ref, ok := d.spec.Components.Schemas[schema]
	if !ok || ref == nil || ref.Value == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, schema)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("apispec: decode %s: %w", schema, err)
	}

	if err := ref.Value.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return &ValidationError{Schema: schema, Issues: issuesFromError(err)}
	}
	return nil
}
