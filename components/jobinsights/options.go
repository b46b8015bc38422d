package jobinsights

import (
	"net/http"

	"github.com/goliatone/go-roadmap/pkg/insights"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	InsightsPath string
	TrendingPath string
	TitlesPath   string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc

	Catalog *insights.Catalog
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		InsightsPath: "/job-insights/",
		TrendingPath: "/trending-skills/",
		TitlesPath:   "/api/job-titles",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 10,
		MaxLimit:     50,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.InsightsPath == "" {
		opts.InsightsPath = "/job-insights/"
	}
	if opts.TrendingPath == "" {
		opts.TrendingPath = "/trending-skills/"
	}
	if opts.TitlesPath == "" {
		opts.TitlesPath = "/api/job-titles"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.Catalog == nil {
		opts.Catalog = insights.New()
	}
	return opts
}

func WithInsightsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.InsightsPath = path
	}
}

func WithTrendingPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TrendingPath = path
	}
}

func WithTitlesPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TitlesPath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithCatalog(catalog *insights.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = catalog
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	return limit
}
