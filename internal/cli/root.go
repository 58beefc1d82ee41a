// Package cli implements the draftctl command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sompylasar/draft-js/internal/config"
	"github.com/sompylasar/draft-js/internal/engine/decorator"
	"github.com/sompylasar/draft-js/internal/plugin/lua"
)

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// app holds what every command needs once flags are parsed.
type app struct {
	build      BuildInfo
	configPath string
	verbose    bool

	cfg config.Config
	log *slog.Logger
}

// ErrInvalid marks a document that failed validation; it maps to exit
// status 2.
var ErrInvalid = errors.New("document is invalid")

// NewRootCommand builds the draftctl command tree.
func NewRootCommand(build BuildInfo) *cobra.Command {
	a := &app{build: build}

	root := &cobra.Command{
		Use:           "draftctl",
		Short:         "Inspect and edit rich text documents",
		Long:          `draftctl reads documents in their raw JSON or YAML form (or plain .txt), reports their structure, validates tree documents and applies edits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.inspectCommand(),
		a.validateCommand(),
		a.editCommand(),
		a.watchCommand(),
		a.versionCommand(),
	)
	return root
}

// setup loads the configuration and builds the logger. An explicit
// --config file must exist; the per-user default may be absent.
func (a *app) setup(stderr io.Writer) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadOptional(config.DefaultPath())
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.log = a.cfg.NewLogger(stderr, a.verbose)
	a.log.Debug("config loaded", "path", a.configPath, "scripts", len(a.cfg.Decorators.Scripts))
	return nil
}

// decorator loads the configured strategy scripts plus extra. The returned
// function closes them; it is never nil.
func (a *app) decorator(extra []string) (decorator.Decorator, func(), error) {
	scripts := append(append([]string(nil), a.cfg.Decorators.Scripts...), extra...)
	if len(scripts) == 0 {
		return nil, func() {}, nil
	}
	dec, strategies, err := lua.NewDecorator(scripts, lua.WithLogger(a.log))
	if err != nil {
		return nil, nil, err
	}
	return dec, func() {
		for _, s := range strategies {
			s.Close()
		}
	}, nil
}

// Execute runs draftctl with args and returns the process exit status:
// 0 on success, 2 for an invalid document, 1 for any other failure.
func Execute(build BuildInfo, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(build)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, ErrInvalid) {
			return 2
		}
		return 1
	}
	return 0
}
