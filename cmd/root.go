// Package cmd wires the command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/jig/internal/app"
	"github.com/zjrosen/jig/internal/config"
	"github.com/zjrosen/jig/internal/log"
	"github.com/zjrosen/jig/internal/telemetry"
	"github.com/zjrosen/jig/internal/ui"
	"github.com/zjrosen/jig/internal/ui/styles"
	"github.com/zjrosen/jig/internal/vcs"
	jjvcs "github.com/zjrosen/jig/internal/vcs/jj"
	"github.com/zjrosen/jig/internal/watcher"
)

var (
	cfg      config.Config
	cfgPath  string
	repoPath string
	revset   string
)

var rootCmd = &cobra.Command{
	Use:   "jig",
	Short: "An interactive terminal client for jj repositories",
	Long: `jig shows the commit graph of a jj (Jujutsu) repository and lets you
describe, squash, rebase and push without leaving the terminal.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/jig/config.yaml)")
	rootCmd.Flags().StringVarP(&repoPath, "repository", "R", "", "operate on the repository at this path")
	rootCmd.Flags().StringVarP(&revset, "revset", "r", "", "initial revset filter for the graph")
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(cfgPath)
	return err
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logPath := cfg.Log.Path
	if logPath == "" {
		logPath = filepath.Join(config.Dir(), "jig.log")
	}
	if err := log.Init(logPath, cfg.Log.Level); err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer log.Close()

	if cfg.Trace.Enabled {
		tracePath := cfg.Trace.Path
		if tracePath == "" {
			tracePath = filepath.Join(config.Dir(), "trace.jsonl")
		}
		shutdown, err := telemetry.Init(tracePath)
		if err != nil {
			log.Warn(log.CatConfig, "trace init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	dir := repoPath
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}

	facade, err := jjvcs.New(dir)
	if err != nil && !errors.Is(err, vcs.ErrNoRepo) {
		return err
	}
	var fac vcs.Facade = facade
	if facade == nil {
		fac = jjvcs.NewDetached(dir)
	}

	theme, err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var watch <-chan app.Action
	if cfg.AutoRefresh && facade != nil {
		w, werr := watcher.New(facade.WorkspaceRoot())
		if werr != nil {
			log.Warn(log.CatWatch, "auto refresh unavailable", "error", werr)
		} else {
			go w.Run(ctx)
			watch = w.Actions()
		}
	}

	exec := app.NewExecutor(fac, cfg.GraphPageSize)
	model := ui.New(ctx, exec, cfg, theme, watch, revset)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
