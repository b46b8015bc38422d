package jobinsights

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-roadmap/pkg/model"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []model.Option `json:"data"`
}

type trendingResponse struct {
	Industry       string   `json:"industry"`
	TrendingSkills []string `json:"trending_skills"`
}

type problem struct {
	Detail string `json:"detail"`
}

// InsightsHandler answers GET <InsightsPath><jobTitle> with MarketInsights.
func InsightsHandler(fns ...OptionFn) http.Handler {
	return InsightsHandlerWithOptions(NewOptions(fns...))
}

// InsightsHandlerWithOptions builds the insights handler from a pre-built
// Options value.
func InsightsHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return readOnly(opts, func(w http.ResponseWriter, r *http.Request) {
		title := lastSegment(r, "jobTitle")
		if title == "" {
			writeProblem(w, http.StatusBadRequest, "job title is required")
			return
		}
		insights, err := opts.Catalog.MarketInsights(r.Context(), title)
		if err != nil {
			writeProblem(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, r, insights)
	})
}

// TrendingHandler answers GET <TrendingPath><industry> with the industry's
// trending skills.
func TrendingHandler(fns ...OptionFn) http.Handler {
	return TrendingHandlerWithOptions(NewOptions(fns...))
}

// TrendingHandlerWithOptions builds the trending handler from a pre-built
// Options value.
func TrendingHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return readOnly(opts, func(w http.ResponseWriter, r *http.Request) {
		industry := lastSegment(r, "industry")
		if industry == "" {
			writeProblem(w, http.StatusBadRequest, "industry is required")
			return
		}
		writeJSON(w, r, trendingResponse{
			Industry:       industry,
			TrendingSkills: opts.Catalog.TrendingSkills(industry),
		})
	})
}

// TitlesHandler answers GET <TitlesPath>?q=...&limit=... with the catalog
// titles matching q as {"data":[{value,label}]}.
func TitlesHandler(fns ...OptionFn) http.Handler {
	return TitlesHandlerWithOptions(NewOptions(fns...))
}

// TitlesHandlerWithOptions builds the title search handler from a pre-built
// Options value.
func TitlesHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return readOnly(opts, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := SearchOptions(opts.Catalog.Titles(), query, limit, opts)
		if results == nil {
			results = []model.Option{}
		}
		writeJSON(w, r, optionsResponse{Data: results})
	})
}

func readOnly(opts Options, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		next(w, r)
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeProblem(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(problem{Detail: detail})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

// lastSegment prefers the named ServeMux wildcard and otherwise decodes the
// final escaped path segment, so "UI%2FUX Designer" stays one title.
func lastSegment(r *http.Request, wildcard string) string {
	if value := strings.TrimSpace(r.PathValue(wildcard)); value != "" {
		return value
	}
	escaped := strings.TrimRight(r.URL.EscapedPath(), "/")
	idx := strings.LastIndex(escaped, "/")
	if idx < 0 {
		return ""
	}
	value, err := url.PathUnescape(escaped[idx+1:])
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
