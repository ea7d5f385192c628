package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timelevel/internal/bootstrap"
	"timelevel/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	vaultPath string
	logLevel  string
	noColor   bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "timelevel",
		Short:         "Cumulative activity time tracker with levels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			applyColorMode(flags.noColor)
		},
	}
	root.PersistentFlags().StringVar(&flags.vaultPath, "vault", ".", "vault path holding the stats file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTrackCmd(flags))
	root.AddCommand(newStatusCmd(flags))
	root.AddCommand(newHeatmapCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	root.AddCommand(newEffectsCmd(flags))
	return root
}

func loadApp(flags *globalFlags, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := config.New(flags.vaultPath)
	if err != nil {
		return nil, err
	}
	opts.LogLevel = flags.logLevel
	return bootstrap.New(cfg, opts)
}

// loadQuietApp builds the host for one-shot commands: warnings go to stderr
// and no level-up cue can ring.
func loadQuietApp(flags *globalFlags) (*bootstrap.App, error) {
	return loadApp(flags, bootstrap.Options{Console: os.Stderr})
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive tracker",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{Bell: os.Stderr, Interactive: true})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newTrackCmd(flags *globalFlags) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track time headless until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, bootstrap.Options{
				Console: os.Stderr,
				Bell:    cmd.OutOrStdout(),
				Metrics: metricsAddr != "",
			})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := serveMetrics(app, metricsAddr)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			app.Logger.Info("tracking started", "vault", flags.vaultPath)
			if err := app.TrackerCLI.Track(ctx); err != nil {
				return err
			}
			app.Logger.Info("tracking stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9464")
	return cmd
}

func serveMetrics(app *bootstrap.App, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.MetricsHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("metrics server stopped", "addr", addr, "err", err)
		}
	}()
	app.Logger.Info("serving metrics", "addr", addr)
	return srv
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved total, level and progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			status, err := app.TrackerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), status)
			return nil
		},
	}
}

func newHeatmapCmd(flags *globalFlags) *cobra.Command {
	var days int
	var htmlPath string
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show daily activity as a calendar heatmap",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if strings.TrimSpace(htmlPath) != "" {
				file, err := os.Create(htmlPath)
				if err != nil {
					return fmt.Errorf("create heatmap file: %w", err)
				}
				if err := app.TrackerCLI.ExportHeatmap(context.Background(), days, file); err != nil {
					_ = file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "heatmap written to %s\n", htmlPath)
				return nil
			}

			out, err := app.TrackerCLI.Heatmap(context.Background(), days)
			if err != nil {
				return err
			}
			printHeatmap(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 365, "days to include, ending today")
	cmd.Flags().StringVar(&htmlPath, "html", "", "write an interactive HTML heatmap to this file")
	return cmd
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded level-ups, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			items, err := app.TrackerCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no level-ups recorded")
				return nil
			}
			printHistory(cmd.OutOrStdout(), items, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}

func newSettingsCmd(flags *globalFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Show or change tracker settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			entries, err := app.SettingsCLI.Show(context.Background())
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), entries)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SettingsCLI.Set(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (saved to %s)\n", args[0], args[1], out.Path)
			return nil
		},
	})
	return settings
}

func newEffectsCmd(flags *globalFlags) *cobra.Command {
	effects := &cobra.Command{Use: "effects", Short: "Level-up effect plugins"}

	effects.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured effect plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			items, err := app.EffectsCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no effect plugins configured")
				return nil
			}
			printPlugins(cmd.OutOrStdout(), items)
			return nil
		},
	})

	effects.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check effect plugin binaries and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			items, err := app.EffectsCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no effect plugins configured")
				return nil
			}
			if failing := printDoctor(cmd.OutOrStdout(), items); failing > 0 {
				return fmt.Errorf("effects doctor found %d failing plugin(s)", failing)
			}
			return nil
		},
	})
	return effects
}
