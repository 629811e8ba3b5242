// internal/rednote/options.go
package rednote

import (
	"time"

	"github.com/xkilldash9x/rednote-cli/internal/browser/humanoid"
	"github.com/xkilldash9x/rednote-cli/internal/config"
)

// Pacing holds every randomized pause of the flows.
type Pacing struct {
	Settle       humanoid.Range
	Keystroke    humanoid.Range
	PreSubmit    humanoid.Range
	ResultSettle humanoid.Range
	DetailSettle humanoid.Range
	PostItem     humanoid.Range
	PageSettle   humanoid.Range
}

// Options configures a Client.
type Options struct {
	HomeURL      string
	DefaultLimit int

	// Attempts wraps a whole search; Submit wraps pressing Enter inside it.
	Attempts RetryPolicy
	Submit   RetryPolicy

	ProbeTimeout    time.Duration
	SubmitTimeout   time.Duration
	ResultsTimeout  time.Duration
	DetailTimeout   time.Duration
	CloseTimeout    time.Duration
	CommentsTimeout time.Duration

	Pacing       Pacing
	ErrorMarkers []string
}

// OptionsFromConfig maps the application configuration onto client options.
func OptionsFromConfig(cfg *config.Config) Options {
	p := cfg.Pacing
	return Options{
		HomeURL:         cfg.Session.HomeURL,
		DefaultLimit:    cfg.Search.DefaultLimit,
		Attempts:        PolicyFromConfig(cfg.Search.Attempts),
		Submit:          PolicyFromConfig(cfg.Search.Submit),
		ProbeTimeout:    cfg.Session.ProbeTimeout,
		SubmitTimeout:   cfg.Search.SubmitTimeout,
		ResultsTimeout:  cfg.Search.ResultsTimeout,
		DetailTimeout:   cfg.Search.DetailTimeout,
		CloseTimeout:    cfg.Search.CloseTimeout,
		CommentsTimeout: cfg.Search.CommentsTimeout,
		Pacing: Pacing{
			Settle:       toRange(p.Settle),
			Keystroke:    toRange(p.Keystroke),
			PreSubmit:    toRange(p.PreSubmit),
			ResultSettle: toRange(p.ResultSettle),
			DetailSettle: toRange(p.DetailSettle),
			PostItem:     toRange(p.PostItem),
			PageSettle:   toRange(p.PageSettle),
		},
		ErrorMarkers: cfg.Search.ErrorMarkers,
	}
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewDefaultConfig())
}

func toRange(r config.RangeConfig) humanoid.Range {
	return humanoid.Between(r.Min, r.Max)
}
