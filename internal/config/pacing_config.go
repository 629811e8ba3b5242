// File: internal/config/pacing_config.go
// This file defines the PacingConfig struct, the tunable delay ranges that
// drive the humanoid delay scheduler. Every pause the search pipeline takes
// (settling after a click, the gap between two keystrokes, the wait before
// submitting) is drawn uniformly from one of these ranges.
//
// Setting a range to 0/0 disables that pause, which is how tests and
// debugging runs get deterministic, instant interaction.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// RangeConfig is a closed [Min, Max] duration interval.
type RangeConfig struct {
	Min time.Duration `mapstructure:"min" yaml:"min"`
	Max time.Duration `mapstructure:"max" yaml:"max"`
}

// PacingConfig groups every randomized pause of the interaction flow.
type PacingConfig struct {
	// Settle follows a click on the search box.
	Settle RangeConfig `mapstructure:"settle" yaml:"settle"`
	// Keystroke separates two typed characters.
	Keystroke RangeConfig `mapstructure:"keystroke" yaml:"keystroke"`
	// PreSubmit precedes pressing Enter.
	PreSubmit RangeConfig `mapstructure:"pre_submit" yaml:"pre_submit"`
	// ResultSettle precedes enumerating the result list.
	ResultSettle RangeConfig `mapstructure:"result_settle" yaml:"result_settle"`
	// DetailSettle follows the detail overlay becoming visible.
	DetailSettle RangeConfig `mapstructure:"detail_settle" yaml:"detail_settle"`
	// PostItem precedes closing the detail overlay.
	PostItem RangeConfig `mapstructure:"post_item" yaml:"post_item"`
	// PageSettle follows a direct navigation to a note page.
	PageSettle RangeConfig `mapstructure:"page_settle" yaml:"page_settle"`
}

func setPacingDefaults(v *viper.Viper) {
	ranges := map[string][2]string{
		"settle":        {"200ms", "700ms"},
		"keystroke":     {"50ms", "250ms"},
		"pre_submit":    {"200ms", "700ms"},
		"result_settle": {"500ms", "1500ms"},
		"detail_settle": {"300ms", "900ms"},
		"post_item":     {"300ms", "900ms"},
		"page_settle":   {"500ms", "1500ms"},
	}
	for name, r := range ranges {
		v.SetDefault("pacing."+name+".min", r[0])
		v.SetDefault("pacing."+name+".max", r[1])
	}
}

// Validate checks that every range is well formed.
func (p *PacingConfig) Validate() error {
	ranges := map[string]RangeConfig{
		"settle":        p.Settle,
		"keystroke":     p.Keystroke,
		"pre_submit":    p.PreSubmit,
		"result_settle": p.ResultSettle,
		"detail_settle": p.DetailSettle,
		"post_item":     p.PostItem,
		"page_settle":   p.PageSettle,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%s range [%v, %v] is invalid", name, r.Min, r.Max)
		}
	}
	return nil
}
