package cli

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"chosenoffset.com/pong/internal/app"
	"chosenoffset.com/pong/internal/config"
	"chosenoffset.com/pong/internal/render"
)

// Backends maps a backend name to its engine constructor.
type Backends map[string]func() render.Engine

// Names returns the registered backend names, sorted.
func (b Backends) Names() []string {
	return slices.Sorted(maps.Keys(b))
}

type rootOptions struct {
	configPath string
	envFile    string
	backend    string
	title      string
	fontPath   string
	fontSize   float64
}

// NewRootCmd creates the root command
func NewRootCmd(backends Backends) *cobra.Command {
	opts := &rootOptions{}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "pong",
		Short: "Two-player paddle and ball game",
		Long: `pong opens a window and starts a two-player game.

Left paddle: W / S. Right paddle: Up / Down. Close the window or press
Escape to quit. Scores are kept until the game is closed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}

			newEngine, ok := backends[cfg.Backend]
			if !ok {
				return fmt.Errorf("unknown backend %q (available: %s)", cfg.Backend, strings.Join(backends.Names(), ", "))
			}

			log.Printf("Using %s backend", cfg.Backend)
			return app.Run(cfg, newEngine())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "pong.json", "JSON config file (optional)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file with PONG_* overrides (optional)")
	flags.StringVar(&opts.backend, "backend", defaults.Backend, "Rendering backend (env: "+config.EnvBackend+")")
	flags.StringVar(&opts.title, "title", defaults.Window.Title, "Window title (env: "+config.EnvWindowTitle+")")
	flags.StringVar(&opts.fontPath, "font", defaults.Font.Path, "TrueType font for the score (env: "+config.EnvFontPath+")")
	flags.Float64Var(&opts.fontSize, "font-size", defaults.Font.Size, "Score font size in pixels (env: "+config.EnvFontSize+")")

	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

// load builds the config: defaults, then the JSON file, then the
// environment, then explicitly set flags.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(o.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = o.backend
	}
	if flags.Changed("title") {
		cfg.Window.Title = o.title
	}
	if flags.Changed("font") {
		cfg.Font.Path = o.fontPath
	}
	if flags.Changed("font-size") {
		cfg.Font.Size = o.fontSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command and returns the process exit code.
func Execute(backends Backends, args []string) int {
	cmd := NewRootCmd(backends)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		log.Printf("Failed to start the game: %v", err)
		return app.ExitCode(err)
	}
	return 0
}
