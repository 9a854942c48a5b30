package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"pkt.systems/bbf"
	"pkt.systems/bbf/internal/config"
	"pkt.systems/bbf/internal/dump"
	"pkt.systems/bbf/internal/logging"
	"pkt.systems/version"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [inputs...]",
		Short: "Render BBCode as styled terminal text (default command)",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.render,
	}
}

func (a *app) render(cmd *cobra.Command, args []string) error {
	theme, err := a.theme()
	if err != nil {
		return err
	}
	out, closeOut, err := a.openOutput()
	if err != nil {
		return err
	}
	defer closeOut()
	opts, err := a.renderOptions(out)
	if err != nil {
		return err
	}
	width := a.resolveWidth(out)
	defer logging.OperationTimer(a.log, "render")()

	if len(args) == 1 && isRemote(args[0]) {
		return bbf.HTTPRender(cmd.Context(), bbf.HTTPRenderRequest{
			URL:     strings.TrimSpace(args[0]),
			Writer:  out,
			Width:   width,
			Theme:   theme,
			Options: opts,
		})
	}
	in, closer, err := openInputs(cmd.Context(), args, a.io.in)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	return bbf.Render(bbf.RenderRequest{
		Reader:  in,
		Writer:  out,
		Width:   width,
		Theme:   theme,
		Options: opts,
	})
}

func formatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "f", string(dump.FormatText),
		"Output format: "+strings.Join(dump.Formats(), "|"))
}

func newTokensCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokens [inputs...]",
		Short: "Print the token stream of the input",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dump.ParseFormat(format)
			if err != nil {
				return usageError{err: err}
			}
			src, err := readInputs(cmd.Context(), args, a.io.in)
			if err != nil {
				return err
			}
			tokens, err := bbf.Tokenize(src)
			if err != nil {
				return a.reportParseError(err, src)
			}
			out, closeOut, err := a.openOutput()
			if err != nil {
				return err
			}
			defer closeOut()
			return dump.WriteTokens(out, tokens, f)
		},
	}
	formatFlag(cmd, &format)
	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		format  string
		literal bool
	)
	cmd := &cobra.Command{
		Use:   "tree [inputs...]",
		Short: "Print the parsed document tree",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dump.ParseFormat(format)
			if err != nil {
				return usageError{err: err}
			}
			src, err := readInputs(cmd.Context(), args, a.io.in)
			if err != nil {
				return err
			}
			var root *bbf.Container
			if literal {
				root, err = bbf.ParseOrLiteral(src)
				if err != nil {
					a.log.Warn().Err(err).Msg("markup shown as literal text")
				}
			} else if root, err = bbf.Parse(src); err != nil {
				return a.reportParseError(err, src)
			}
			out, closeOut, err := a.openOutput()
			if err != nil {
				return err
			}
			defer closeOut()
			return dump.WriteTree(out, root, f)
		},
	}
	formatFlag(cmd, &format)
	cmd.Flags().BoolVar(&literal, "literal", false, "Fall back to the literal tree when parsing fails")
	return cmd
}

// reportParseError writes err with a source excerpt to stderr.
func (a *app) reportParseError(err error, src string) error {
	fmt.Fprintln(a.io.err, bbf.FormatError(err, src))
	return errReported
}

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes [name]",
		Short: "List themes, or check that a theme exists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printThemes(a.io.out)
			}
			if _, ok := bbf.ThemeByName(args[0]); ok {
				_, err := fmt.Fprintln(a.io.out, strings.ToLower(strings.TrimSpace(args[0])))
				return err
			}
			suggestions := suggestThemes(args[0])
			if len(suggestions) == 0 {
				return fmt.Errorf("unknown theme %q", args[0])
			}
			return fmt.Errorf("unknown theme %q (did you mean %s?)", args[0], strings.Join(suggestions, ", "))
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := fmt.Fprintf(a.io.out, "# %s\n", path); err != nil {
				return err
			}
			return toml.NewEncoder(a.io.out).Encode(a.cfg)
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.io.out, version.Module(), version.Current())
			return err
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Render a file and render it again whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0])
		},
	}
}

func (a *app) watch(ctx context.Context, path string) error {
	theme, err := a.theme()
	if err != nil {
		return err
	}
	opts, err := a.renderOptions(a.io.out)
	if err != nil {
		return err
	}
	path = normalizePath(path)
	width := a.resolveWidth(a.io.out)
	clearScreen := isTerminal(a.io.out)
	return watchFile(ctx, path, a.log, func() error {
		if clearScreen {
			termenv.NewOutput(a.io.out).ClearScreen()
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return bbf.Render(bbf.RenderRequest{
			Reader:  f,
			Writer:  a.io.out,
			Width:   width,
			Theme:   theme,
			Options: opts,
		})
	})
}

// watchFile calls fn once, then again after every write to path, until ctx
// is done. The parent directory is watched so that editors replacing the
// file are noticed. Only the first call's error is returned.
func watchFile(ctx context.Context, path string, log zerolog.Logger, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	if err := fn(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug().Str("file", path).Str("op", ev.Op.String()).Msg("file changed")
			if err := fn(); err != nil {
				log.Warn().Err(err).Str("file", path).Msg("render failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}
