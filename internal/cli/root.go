// Package cli implements the orgchart command-line interface. The root
// command starts the interactive menu; subcommands expose each repository
// operation for scripting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/orgchart/internal/config"
	"github.com/mesh-intelligence/orgchart/internal/logging"
	"github.com/mesh-intelligence/orgchart/internal/menu"
	"github.com/mesh-intelligence/orgchart/internal/paths"
	"github.com/mesh-intelligence/orgchart/internal/render"
	"github.com/mesh-intelligence/orgchart/internal/store"
	"github.com/mesh-intelligence/orgchart/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// skipSetup marks commands that run without loading configuration.
const skipSetup = "orgchart/skip-setup"

// rootFlags holds global flag values.
type rootFlags struct {
	configDir string
	dataDir   string
	output    string
	logLevel  string
	envFile   string
}

// app is the state shared by one command invocation.
type app struct {
	flags  rootFlags
	cfg    *config.Config
	log    zerolog.Logger
	format render.Format
	repo   *store.Repository
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "orgchart",
		Short: "Manage departments, roles and employees",
		Long: "orgchart keeps an organization chart of departments, roles and employees\n" +
			"in a relational store. Run without a subcommand for the interactive menu.",
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error { return a.close() },
		RunE:               a.runMenu,
	}
	root.Args = func(_ *cobra.Command, args []string) error {
		if len(args) > 0 {
			return usageError{fmt.Errorf("unknown command %q", args[0])}
		}
		return nil
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the sqlite database (env "+paths.EnvDataDir+")")
	pf.StringVarP(&a.flags.output, "output", "o", "", "output format: table, json or yaml")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newDepartmentCmd(a),
		newRoleCmd(a),
		newEmployeeCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "orgchart:", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// run executes one invocation. The store is closed even when the command
// fails, which cobra's post-run hooks do not guarantee.
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := &app{log: zerolog.Nop()}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

// exitCode maps an error onto the process exit status: bad input and
// missing rows are the user's to fix, anything else is a system failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case isUsageError(err),
		errors.Is(err, types.ErrInvalidArgument),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrConstraintViolation):
		return exitUserError
	default:
		return exitSysError
	}
}

// usageError wraps cobra argument and flag errors.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func isUsageError(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

// setup loads configuration and builds the logger. It does not touch the
// store; commands that need it call a.open.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if _, ok := cmd.Annotations[skipSetup]; ok {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, v, err := config.Load(configDir, a.flags.envFile)
	if err != nil {
		return err
	}
	if a.flags.output != "" {
		cfg.Output = a.flags.output
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}

	format, err := render.ParseFormat(cfg.Output)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidArgument, err)
	}

	a.cfg = cfg
	a.format = format
	a.log = logger.With().Str("session", uuid.NewString()).Str("command", cmd.CommandPath()).Logger()
	a.log.Debug().
		Str("config_file", v.ConfigFileUsed()).
		Str("driver", cfg.Store.Driver).
		Msg("configuration loaded")
	return nil
}

// storeConfig turns the loaded configuration into store settings. A
// sqlite store without an explicit path lives in the data directory.
func (a *app) storeConfig() (store.Config, error) {
	s := a.cfg.Store
	sc := store.Config{
		Driver:   s.Driver,
		Host:     s.Host,
		Port:     s.Port,
		User:     s.User,
		Password: s.Password,
		Database: s.Database,
		SSLMode:  s.SSLMode,
		Path:     s.Path,
	}
	if sc.Driver != store.DriverSQLite || sc.Path != "" {
		return sc, nil
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
	if err != nil {
		return store.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return store.Config{}, fmt.Errorf("create data dir: %w", err)
	}
	sc.Path = paths.DatabasePath(dataDir)
	return sc, nil
}

// open connects to the store once per invocation. The local sqlite file
// is owned by orgchart, so its tables are created on first use.
func (a *app) open(ctx context.Context) (*store.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	sc, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	repo, err := store.Open(ctx, sc, a.log)
	if err != nil {
		return nil, err
	}
	if sc.Driver == store.DriverSQLite {
		if err := repo.Bootstrap(ctx); err != nil {
			repo.Close()
			return nil, err
		}
	}
	a.repo = repo
	return repo, nil
}

func (a *app) close() error {
	if a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	return err
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	repo, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	p := menu.NewSurveyPrompter(os.Stdin, os.Stdout, cmd.ErrOrStderr())
	return menu.New(repo, p, cmd.OutOrStdout(), a.log).Run(cmd.Context())
}
