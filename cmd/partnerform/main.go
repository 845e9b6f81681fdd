package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-partnerform/internal/config"
	"github.com/goliatone/go-partnerform/pkg/client"
	"github.com/goliatone/go-partnerform/pkg/dropdown"
	"github.com/goliatone/go-partnerform/pkg/partner"
	"github.com/goliatone/go-partnerform/pkg/render"
	htmlrenderer "github.com/goliatone/go-partnerform/pkg/renderers/html"
	"github.com/goliatone/go-partnerform/pkg/renderers/term"
	"github.com/goliatone/go-partnerform/pkg/renderers/tui"
)

// shutdownSignals cancel the run context.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("partnerform: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("partnerform", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML config file")
	envFile := flags.String("env", ".env", "dotenv file loaded before the environment (ignored when missing)")
	mode := flags.String("mode", "prompt", "front end: prompt, term, html or text")
	endpoint := flags.String("endpoint", "", "partnership endpoint, overrides config")
	output := flags.String("output", "", "file for html/text output (stdout if empty)")
	logFile := flags.String("log-file", "", "write logs to this file instead of stderr")
	templatesDir := flags.String("templates", "", "directory with form.tpl/field.tpl overriding the built-in html templates")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{Path: *configPath, EnvFiles: []string{*envFile}})
	if err != nil {
		return err
	}
	if *endpoint != "" {
		cfg.Endpoint = strings.TrimSpace(*endpoint)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logOut := stderr
	if *mode == "term" {
		// stderr would draw over the alternate screen.
		logOut = io.Discard
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.NewLogger(logOut)

	submitter, err := client.New(cfg.Endpoint,
		client.WithUserAgent(cfg.UserAgent),
		client.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	// The front end is built after the controller, so notifications are
	// routed through this late-bound hook.
	var notifier partner.Notifier
	ctrl := partner.New(
		partner.WithSubmitter(submitter),
		partner.WithLogger(logger),
		partner.WithNotifier(partner.NotifierFunc(func(ctx context.Context, kind partner.Kind, msg string) {
			if notifier != nil {
				notifier.Notify(ctx, kind, msg)
			}
		})),
	)

	bus := dropdown.NewBus()
	menu, err := dropdown.New(ctrl, partner.Catalog(),
		dropdown.WithObserver(bus),
		dropdown.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer menu.Close()

	logger.Debug("partnerform starting", slog.String("mode", *mode), slog.String("endpoint", cfg.Endpoint))

	switch *mode {
	case "prompt":
		session, err := tui.New(ctrl, menu, bus, tui.WithLogger(logger))
		if err != nil {
			return err
		}
		notifier = session
		if err := session.Run(ctx); err != nil && !errors.Is(err, tui.ErrAborted) {
			return err
		}
		return nil

	case "term":
		model, err := term.New(ctx, ctrl, menu, bus, term.WithLogger(logger))
		if err != nil {
			return err
		}
		notifier = model
		return term.Run(ctx, model)

	case "html", "text":
		return renderStatic(ctx, cfg, *mode, ctrl, *templatesDir, *output, stdout)

	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func renderStatic(ctx context.Context, cfg *config.Config, mode string, ctrl *partner.Controller, templatesDir, output string, stdout io.Writer) error {
	htmlRenderer, err := htmlrenderer.New(
		htmlrenderer.WithTemplatesDir(templatesDir),
		htmlrenderer.WithDismissIcon(cfg.DismissIcon),
	)
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(htmlRenderer, tui.TextRenderer{})
	if err != nil {
		return err
	}

	themeCfg, err := resolveTheme(cfg.Theme)
	if err != nil {
		return err
	}

	out, err := registry.Render(ctx, mode, render.Build(ctrl.Snapshot(), false), render.RenderOptions{
		Theme: themeCfg,
	})
	if err != nil {
		return err
	}

	if output == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "Form written to %s\n", output)
	return err
}

func resolveTheme(cfg config.ThemeConfig) (*theme.RendererConfig, error) {
	var extra []*theme.Manifest
	if cfg.Manifest != "" {
		manifest, err := htmlrenderer.LoadThemeManifest(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		extra = append(extra, manifest)
	}
	selector, err := htmlrenderer.NewThemeSelector(extra...)
	if err != nil {
		return nil, err
	}
	return htmlrenderer.ResolveTheme(selector, cfg.Name, cfg.Variant, cfg.Tokens)
}
