package bbf

import (
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	osc8     bool
	softWrap bool
	profile  termenv.Profile
	logger   zerolog.Logger
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{
		profile: termenv.TrueColor,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// WithSoftWrap enables soft wrapping for long words.
func WithSoftWrap(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.softWrap = enabled
	}
}

// WithColorProfile sets the color profile used to build style sequences.
// termenv.Ascii disables all styling.
func WithColorProfile(profile termenv.Profile) RenderOption {
	return func(cfg *renderConfig) {
		cfg.profile = profile
	}
}

// WithLogger sets the logger used to report markup that fell back to literal
// text.
func WithLogger(logger zerolog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}
