package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fundraiser-display/internal/display"
	"fundraiser-display/internal/logging"
)

type options struct {
	BackendURL     string
	APIPrefix      string
	Interval       time.Duration
	SlideDuration  time.Duration
	RequestTimeout time.Duration
	Width          int
	FPS            int
	NoColor        bool
	LogLevel       string
	LogFormat      string
	LogFile        string
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Fundraiser progress kiosk",
		Long: `display loads the goals and the current percentage from the data
service and rotates the call-to-action, percentage bar and goal list screens
until it is interrupted.

Every flag can also be set in the environment as KIOSK_<FLAG>, for example
KIOSK_INTERVAL=10s. Logs go to stderr at warn level by default so they do not
scribble over the display; use --log-file to keep a full log elsewhere.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("backend-url", "", "data service base URL (env BACKEND_URL or VITE_BACKEND_URL)")
	flags.String("api-prefix", "/api", "route prefix of the data service")
	flags.Duration("interval", display.DefaultInterval, "time between screen changes")
	flags.Duration("slide-duration", display.DefaultSlideDuration, "duration of the slide between screens")
	flags.Duration("request-timeout", 10*time.Second, "timeout of each bootstrap request")
	flags.Int("width", display.DefaultWidth, "terminal width in columns")
	flags.Int("fps", display.DefaultFPS, "animation frame rate")
	flags.Bool("no-color", false, "disable colors")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "auto", "log format (json, console, auto)")
	flags.String("log-file", "", "append logs to this file instead of stderr")

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}
	return cmd
}

func loadOptions(v *viper.Viper) (options, error) {
	// .env.local overrides .env
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v.SetEnvPrefix("KIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend-url", "BACKEND_URL", "VITE_BACKEND_URL"); err != nil {
		return options{}, err
	}

	opts := options{
		BackendURL:     strings.TrimSpace(v.GetString("backend-url")),
		APIPrefix:      v.GetString("api-prefix"),
		Interval:       v.GetDuration("interval"),
		SlideDuration:  v.GetDuration("slide-duration"),
		RequestTimeout: v.GetDuration("request-timeout"),
		Width:          v.GetInt("width"),
		FPS:            v.GetInt("fps"),
		NoColor:        v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		LogLevel:       v.GetString("log-level"),
		LogFormat:      v.GetString("log-format"),
		LogFile:        v.GetString("log-file"),
	}
	if opts.BackendURL == "" {
		return options{}, errors.New("backend url is required: set --backend-url or BACKEND_URL")
	}
	if opts.Interval <= opts.SlideDuration {
		return options{}, fmt.Errorf("interval %s must be longer than the slide duration %s", opts.Interval, opts.SlideDuration)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	logCfg := logging.Config{
		Level:   opts.LogLevel,
		Format:  opts.LogFormat,
		NoColor: opts.NoColor,
	}
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logCfg.Output = f
	}
	logger := logging.New(logCfg)

	api := display.NewClient(opts.BackendURL, opts.APIPrefix, opts.RequestTimeout)
	surface := display.NewTerminal(out, display.TerminalOptions{Width: opts.Width, NoColor: opts.NoColor})
	ctrl := display.NewController(api, surface, display.Config{
		Interval:      opts.Interval,
		SlideDuration: opts.SlideDuration,
		FPS:           opts.FPS,
	}, &logger)

	logger.Info().Str("backend", opts.BackendURL).Msg("starting display")

	err := ctrl.Run(ctx)
	if errors.Is(err, display.ErrLoadFailed) {
		// The error screen stays up until the kiosk is stopped.
		<-ctx.Done()
	}
	return err
}
