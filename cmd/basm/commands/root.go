// Package commands implements the CLI commands for basm.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/basm/cmd"
	"github.com/thoreinstein/basm/cmd/basm/commands/cmdutil"
	"github.com/thoreinstein/basm/internal/config"
	"github.com/thoreinstein/basm/internal/errors"
	"github.com/thoreinstein/basm/internal/logging"
	"github.com/thoreinstein/basm/internal/sudoers"
)

// cfgFile holds the value of the --config flag.
var cfgFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: $XDG_CONFIG_HOME/basm/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	// Add version flag
	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("basm version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	var c *config.Config
	c, configLoadErr = config.Load(cfgFile)
	if configLoadErr == nil {
		cmdutil.SetConfig(c)
	}
}

var rootCmd = &cobra.Command{
	Use:   "basm",
	Short: "Safely manage shell aliases, exports, and sudoers entries",
	Long: `basm edits your shell startup file and the system sudoers file with
a safety net: every mutation snapshots the previous state, writes are
atomic, and sudoers changes are validated with visudo against a staging
copy before the live file is ever touched.

Untouched lines round-trip byte for byte, so your comments and
hand-written configuration are preserved exactly.

Paths are resolved from a config file and environment overrides
(BASM_RC_FILE, BASM_SUDOERS_PATH, BASM_BACKUP_DIR, BASM_VISUDO).`,
	Example: `  # Add an alias to your rc file
  basm alias add ll "ls -la"

  # Add a sudoers rule (validated before install)
  sudo basm sudoers add "alice ALL=(ALL) NOPASSWD: /usr/bin/systemctl"

  # Undo the last change
  basm restore

  See Also: basm doctor, basm config, basm backup`,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		// Initialize logging first
		if err := setupLogging(c); err != nil {
			return err
		}
		return checkConfig(c, args)
	},
	Run: func(c *cobra.Command, _ []string) {
		_ = c.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("BASM_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 1 // Debug
				case "2":
					v = 2 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	primaryHandler := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: c.ErrOrStderr(),
	}).Handler()

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config load and validation problems before any
// subcommand touches a file.
func checkConfig(c *cobra.Command, _ []string) error {
	// Skip validation for help and version commands
	if c.Name() == "help" || c.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewUserError(
			errors.Wrap(configLoadErr, "loading config"),
			"check the config file or run 'basm config init'")
	}

	if errs := config.Validate(cmdutil.Config()); len(errs) > 0 {
		err := errors.Wrap(errs[0], errors.ErrInvalidConfig.Error())
		return errors.NewUserError(err, "check BASM_* overrides and the config file")
	}

	return nil
}

// Execute runs the root command and maps the resulting error to a
// process exit code. Validation and usage problems exit 1, I/O and
// other system failures exit 2.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitSuccess
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
		return exitErr.Code
	}

	// Rejected sudoers content and bad keys/values are user errors.
	var valErr *sudoers.ValidationError
	if errors.As(err, &valErr) ||
		errors.Is(err, errors.ErrInvalidKey) ||
		errors.Is(err, errors.ErrInvalidValue) {
		return errors.ExitUser
	}

	// Filesystem failures are system errors.
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.ExitSystem
	}

	return errors.ExitUser
}
