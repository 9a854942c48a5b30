package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"pkt.systems/bbf"
	"pkt.systems/bbf/internal/config"
	"pkt.systems/bbf/internal/logging"
	"pkt.systems/version"
)

const defaultWidth = 80

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type rootOptions struct {
	configPath string
	verbosity  int
	theme      string
	width      int
	osc8       string
	boring     bool
	softWrap   bool
	output     string
	listThemes bool
}

// app carries state shared by all subcommands after flags and config are
// resolved.
type app struct {
	io   *streams
	opts rootOptions
	cfg  *config.Config
	log  zerolog.Logger
}

func newRootCmd(s *streams) *cobra.Command {
	a := &app{io: s, log: zerolog.Nop()}
	cmd := &cobra.Command{
		Use:   "bbf [inputs...]",
		Short: "Render BBCode in the terminal",
		Long: `bbf renders BBCode markup as styled terminal text.

Inputs are files, file:// or http(s):// URLs; with no input, markup is read
from stdin. Markup that does not parse is shown verbatim.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.opts.listThemes {
				return printThemes(a.io.out)
			}
			return a.render(cmd, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.CountVarP(&a.opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	pf.StringVarP(&a.opts.theme, "theme", "t", "default", "Theme name")
	pf.IntVarP(&a.opts.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	pf.StringVarP(&a.opts.osc8, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	pf.BoolVarP(&a.opts.boring, "boring", "b", false, "Generate non-ANSI output")
	pf.BoolVar(&a.opts.softWrap, "soft-wrap", false, "Split words longer than the width")
	pf.StringVarP(&a.opts.output, "output", "o", "", "Output file instead of stdout")
	cmd.Flags().BoolVar(&a.opts.listThemes, "list-themes", false, "List available themes")

	cmd.AddCommand(
		newRenderCmd(a),
		newTokensCmd(a),
		newTreeCmd(a),
		newThemesCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// flagOverrides maps the flags the user set to config keys.
var flagOverrides = map[string]string{
	"theme":     "theme",
	"width":     "width",
	"osc8":      "osc8",
	"boring":    "boring",
	"soft-wrap": "soft_wrap",
	"verbose":   "verbosity",
}

func (a *app) setup(cmd *cobra.Command) error {
	overrides := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagOverrides[f.Name]
		if !ok {
			return
		}
		switch f.Name {
		case "width":
			overrides[key] = a.opts.width
		case "verbose":
			overrides[key] = a.opts.verbosity
		case "boring":
			overrides[key] = a.opts.boring
		case "soft-wrap":
			overrides[key] = a.opts.softWrap
		default:
			overrides[key] = f.Value.String()
		}
	})
	cfg, err := config.Load(config.Options{Path: a.opts.configPath, Overrides: overrides})
	if err != nil {
		return usageError{err: err}
	}
	a.cfg = cfg
	logging.Setup(cfg.Verbosity, a.io.err)
	a.log = logging.Get("cli")
	a.log.Debug().
		Str("command", cmd.Name()).
		Str("module", version.Module()).
		Str("theme", cfg.Theme).
		Int("width", cfg.Width).
		Msg("command started")
	return nil
}

func (a *app) theme() (bbf.Theme, error) {
	if a.cfg.Boring {
		return bbf.BoringTheme(), nil
	}
	theme, ok := bbf.ThemeByName(a.cfg.Theme)
	if !ok {
		msg := fmt.Sprintf("unknown theme %q", a.cfg.Theme)
		if suggestions := suggestThemes(a.cfg.Theme); len(suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
		}
		return nil, usagef("%s; see bbf themes", msg)
	}
	return theme, nil
}

// suggestThemes returns up to three theme names close to name: themes that
// contain its letters in order, then near misses by edit distance.
func suggestThemes(name string) []string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	var ranks fuzzy.Ranks
	for i, candidate := range bbf.AvailableThemes() {
		d := fuzzy.RankMatchNormalizedFold(name, candidate)
		if d < 0 {
			if d = fuzzy.LevenshteinDistance(name, candidate); d > 2 {
				continue
			}
		}
		ranks = append(ranks, fuzzy.Rank{Source: name, Target: candidate, Distance: d, OriginalIndex: i})
	}
	sort.Stable(ranks)
	out := make([]string, 0, 3)
	for _, r := range ranks {
		if len(out) == 3 {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

func (a *app) renderOptions(w io.Writer) ([]bbf.RenderOption, error) {
	osc8, err := resolveOSC8(a.cfg.OSC8)
	if err != nil {
		return nil, usagef("invalid --osc8 %q: %v", a.cfg.OSC8, err)
	}
	profile := termenv.TrueColor
	switch {
	case a.cfg.Boring:
		profile = termenv.Ascii
		osc8 = false
	case isTerminal(w):
		profile = termenv.NewOutput(w).EnvColorProfile()
	}
	return []bbf.RenderOption{
		bbf.WithOSC8(osc8),
		bbf.WithColorProfile(profile),
		bbf.WithSoftWrap(a.cfg.SoftWrap),
		bbf.WithLogger(logging.Get("render")),
	}, nil
}

func (a *app) resolveWidth(w io.Writer) int {
	if a.cfg.Width > 0 {
		return a.cfg.Width
	}
	return terminalWidth(w, defaultWidth)
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return bbf.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

func printThemes(w io.Writer) error {
	for _, name := range bbf.AvailableThemes() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) openOutput() (io.Writer, func(), error) {
	w, closer, err := resolveOutput(a.opts.output, a.io.out)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return w, func() {
		if closer != nil {
			_ = closer.Close()
		}
	}, nil
}
