package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Veraticus/what-have-i-done/internal/common"
	"github.com/Veraticus/what-have-i-done/internal/config"
	"github.com/Veraticus/what-have-i-done/internal/probe"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries everything a command needs, so tests can swap the outside world.
type app struct {
	fs       afero.Fs
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	v        *viper.Viper
	probe    probe.WindowProbe
	now      func() time.Time
	settings *config.Settings
	logFile  io.Closer
	cfgFile  string
	flags    flags
}

type flags struct {
	all     bool
	copy    bool
	details bool
	plain   bool
}

func newApp() *app {
	return &app{
		fs:     afero.NewOsFs(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		v:      viper.New(),
		now:    time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whad [flags] [date|ledger-file]",
		Short: "⏱️  What have I done? Foreground window time tracker",
		Long: `whad records how long each window stays in the foreground, grouped by
application and window title, into one ledger file per day.

Without arguments it starts tracking. With a date (2025-03-14, today, yesterday, ...)
or a ledger file name it prints the summary of that day and exits.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: a.initConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.runSummary(cmd.Context(), args[0])
			}
			if a.flags.all || a.flags.copy {
				return common.NewUserError("--all and --copy only apply to a summary", common.ErrInvalidInput)
			}
			return a.runLive(cmd.Context())
		},
	}

	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: settings.yaml in . or $HOME/.config/whad)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file")

	_ = a.v.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, cmd.PersistentFlags().Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyLogFile, cmd.PersistentFlags().Lookup("log-file"))

	cmd.Flags().BoolVarP(&a.flags.all, "all", "a", false, "show all entries, including micro periods")
	cmd.Flags().BoolVarP(&a.flags.copy, "copy", "c", false, "copy the summary to the clipboard")
	cmd.Flags().BoolVarP(&a.flags.details, "details", "d", false, "list the window titles under each application")
	cmd.Flags().BoolVar(&a.flags.plain, "plain", false, "print plain lines instead of the live view")

	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received termination signal, shutting down gracefully...")
		cancel()
	}()

	err := newRootCmd(newApp()).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// Arguments and flags are valid by now; later errors are not usage errors.
	cmd.SilenceUsage = true

	a.v.SetFs(a.fs)

	if a.cfgFile != "" {
		a.v.SetConfigFile(config.ExpandPath(a.cfgFile))
	} else {
		a.v.SetConfigName("settings")
		for _, path := range config.SearchPaths() {
			a.v.AddConfigPath(path)
		}
	}

	a.v.SetEnvPrefix("WHAD")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	settings, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	if err := a.setupLogging(settings.LogFile); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	if used := a.v.ConfigFileUsed(); used != "" {
		slog.Debug("Loaded settings", "file", used)
	} else {
		slog.Debug("No settings file found, using default settings")
	}

	return nil
}

// setupLogging points the default logger at path, or at stderr when path is empty.
func (a *app) setupLogging(path string) error {
	level, err := common.ParseLevel(a.settings.LogLevel)
	if err != nil {
		return err
	}

	var w io.Writer = a.errOut
	if path != "" {
		f, err := a.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w = f
	}

	if err := common.SetupLogger(level, a.settings.LogFormat, w); err != nil {
		return err
	}

	a.closeLog()
	if f, ok := w.(io.Closer); ok && path != "" {
		a.logFile = f
	}
	return nil
}

func (a *app) closeLog() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) windowProbe() probe.WindowProbe {
	if a.probe == nil {
		a.probe = probe.New()
	}
	return a.probe
}

// interactive reports whether both ends of the terminal are a TTY.
func (a *app) interactive() bool {
	return isTerminal(a.in) && isTerminal(a.out)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("whad version %s\n", version)
		},
	}
}
