package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"taskboard/internal/config"
	"taskboard/internal/kanban/fs"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/store"
	"taskboard/internal/logs"
	"taskboard/internal/storage"
	"taskboard/internal/tui"

	"github.com/spf13/cobra"
)

// version is overridden at build time
var version = "dev"

// app is the state shared by every command of one invocation.
type app struct {
	flags   config.CLIFlags
	cfg     *config.Config
	backend storage.Store
	store   *store.Store
	unsub   func()
}

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string) int {
	return execute(args, os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskboard",
		Short: "A kanban board of columns and tasks",
		Long: `taskboard keeps a single kanban board of ordered columns holding ordered tasks.

Run without a command to open the interactive board. Every other command
changes or prints the board and saves it right away.

Examples:
  # Open the interactive board
  taskboard

  # Add a task to the column titled Work
  taskboard add work "Review the design doc"

  # Move a task by ID prefix to the top of Home
  taskboard move 3f2a9c Home --position 1`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.flags.ConfigPath, "config", "c", "", "config file (default ~/.config/taskboard/config.yaml)")
	flags.StringVarP(&a.flags.DataDir, "data-dir", "d", "", "directory holding the board")
	flags.StringVar(&a.flags.Driver, "driver", "", "storage driver: file, bolt, redis, sqlite, memory")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newTUICmd(a),
		newListCmd(a),
		newAddColumnCmd(a),
		newRenameColumnCmd(a),
		newDeleteColumnCmd(a),
		newMoveColumnCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newToggleCmd(a),
		newDeleteCmd(a),
		newMoveCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
}

// open loads config, starts logging and opens the board.
func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.flags.ConfigPath == "" {
		if err := config.EnsureConfigFile(""); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file: %v\n", err)
		}
	}
	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := logs.Initialize(cfg.Log.Dir, logs.Options{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}

	backend, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	a.backend = backend

	adapter := fs.NewAdapter(backend, cfg.Storage.Key)
	a.store = store.Open(ctx, adapter, store.WithPersister(adapter))
	a.unsub = a.store.Subscribe(func(b models.Board) {
		logs.Logger.Debugw("board changed", "columns", len(b.Columns), "tasks", b.TaskCount())
	})

	logs.Logger.Infow("board opened", "driver", cfg.Storage.Driver, "key", cfg.Storage.Key)
	return nil
}

func (a *app) close() {
	if a.unsub != nil {
		a.unsub()
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			logs.Logger.Warnw("closing storage", "error", err)
		}
	}
	_ = logs.Close()
}

func (a *app) runTUI() error {
	logs.Logger.Info("starting interactive board")
	return tui.Run(a.store, tui.Options{
		Name: a.cfg.Storage.Key,
		BoardConfig: tui.BoardSettings{
			Geometry: a.cfg.Geometry(),
			Filter:   a.cfg.FilterMode(),
		},
	})
}

// shortID is the prefix printed for IDs; any unique prefix is accepted back.
func shortID(id string) string {
	if utf8.RuneCountInString(id) <= 8 {
		return id
	}
	return string([]rune(id)[:8])
}
