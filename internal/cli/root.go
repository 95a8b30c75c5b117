// Package cli implements the littlelemon command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ksindesign/little-lemon-rn/internal/logging"
	"github.com/ksindesign/little-lemon-rn/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps a command error to a process exit code. Errors that did not
// come from a command (flag parsing, unknown commands) are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by one command tree.
type app struct {
	flags  rootFlags
	fs     afero.Fs
	cfg    *viper.Viper
	logger *slog.Logger
	closer io.Closer

	configDir string
	dataDir   string
}

// NewRootCmd creates the top-level "littlelemon" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs())
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "littlelemon",
		Short: "Little Lemon local menu and profile store",
		Long: "littlelemon keeps the restaurant menu and the signed-in user's profile\n" +
			"in a local SQLite store, fetching the menu once from the remote source.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(a.newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newDoctorCmd())
	root.AddCommand(a.newMenuCmd())
	root.AddCommand(a.newProfileCmd())

	return root
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(a.fs, configDir)
	if err != nil {
		return sysError("load config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError("resolve data dir: %w", err)
	}

	logger, closer, err := logging.New(logging.Options{
		Format: cfg.GetString(cfgKeyLogFormat),
		Level:  cfg.GetString(cfgKeyLogLevel),
		File:   cfg.GetString(cfgKeyLogFile),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return userError("configure logging: %w", err)
	}

	a.configDir, a.dataDir = configDir, dataDir
	a.cfg, a.logger, a.closer = cfg, logger, closer
	a.logger.Debug("cli.setup", "command", cmd.CommandPath(), "config_dir", configDir, "data_dir", dataDir)
	return nil
}

func (a *app) teardown() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "littlelemon:", err)
	}
	os.Exit(exitCode(err))
}
