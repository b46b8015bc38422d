package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/apispec"
	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

const maxRequestBytes = 64 << 10

type serviceInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type health struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type problem struct {
	Detail string          `json:"detail"`
	Issues []apispec.Issue `json:"issues,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serviceInfo{
		Message: "Career Roadmap API is running",
		Version: s.version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, health{Status: "healthy", Message: "API is running successfully"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.doc.JSON())
}

// handleGenerate answers POST /generate-roadmap: 400 for unreadable JSON, 422
// when the body fails the FormInput schema, 500 when generation fails.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, problem{Detail: "request body is too large or unreadable"})
		return
	}
	if !json.Valid(raw) {
		writeProblem(w, http.StatusBadRequest, problem{Detail: "request body must be a JSON object"})
		return
	}

	if err := s.doc.ValidateJSON(apispec.SchemaFormInput, raw); err != nil {
		var verr *apispec.ValidationError
		if errors.As(err, &verr) {
			writeProblem(w, http.StatusUnprocessableEntity, problem{
				Detail: "form input is invalid",
				Issues: fieldIssues(verr),
			})
			return
		}
		writeProblem(w, http.StatusBadRequest, problem{Detail: err.Error()})
		return
	}

	var input model.FormInput
	if err := json.Unmarshal(raw, &input); err != nil {
		writeProblem(w, http.StatusBadRequest, problem{Detail: "request body does not match FormInput"})
		return
	}

	roadmap, err := s.generator.Generate(r.Context(), input)
	if err != nil {
		s.logger.Error("roadmap generation failed", zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, problem{Detail: "Error generating roadmap: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, roadmap.Normalize())
}

// fieldIssues keeps one issue per field, preferring the wizard's message so
// API clients see the same text as the form.
func fieldIssues(verr *apispec.ValidationError) []apispec.Issue {
	fields := verr.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]apispec.Issue, 0, len(names))
	for _, name := range names {
		message := fields[name]
		if rule, ok := wizard.RuleFor(name); ok {
			message = rule.Message
		}
		out = append(out, apispec.Issue{Field: name, Message: message})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeProblem(w http.ResponseWriter, status int, body problem) {
	writeJSON(w, status, body)
}
