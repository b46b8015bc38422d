package jobinsights

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPaths returns the insights, trending, and titles mount paths under
// basePath.
func MountPaths(basePath string, fns ...OptionFn) []string {
	opts := NewOptions(fns...)
	return []string{
		mountPath(basePath, opts.InsightsPath),
		mountPath(basePath, opts.TrendingPath),
		mountPath(basePath, opts.TitlesPath),
	}
}

// RegisterRoutes registers the three handlers under basePath on mux and
// returns the registered patterns.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handlers under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("jobinsights: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	routes := []struct {
		path    string
		handler http.Handler
	}{
		{path: opts.InsightsPath, handler: InsightsHandlerWithOptions(opts)},
		{path: opts.TrendingPath, handler: TrendingHandlerWithOptions(opts)},
		{path: opts.TitlesPath, handler: TitlesHandlerWithOptions(opts)},
	}
	patterns := make([]string, 0, len(routes))
	for _, route := range routes {
		pattern := mountPath(basePath, route.path)
		mux.Handle(pattern, route.handler)
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
