// SPDX-License-Identifier: MIT

// Package cli implements the constellation command line: compile,
// combine and simplify design expressions.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/constellation/compiler"
)

// app carries per-invocation state shared by the subcommands.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *Config
	logger     *log.Logger
}

// NewRootCommand builds the command tree. Each call returns an
// independent tree with its own configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:   "constellation",
		Short: "Compile genetic design expressions into automata and enumerate designs",
		Long: `constellation compiles design expressions such as
"promoter then (one-or-more cds) then terminator" against a table of part
categories, enumerates the accepted part sequences and samples concrete
designs from them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, cmd, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			a.logger.Debug("configuration loaded", "config", a.v.ConfigFileUsed(),
				"max_cycles", cfg.MaxCycles, "format", cfg.Format)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./constellation.yaml)")
	pf.StringP("categories", "c", "", "category table (.json or .yaml)")
	pf.IntP("max-cycles", "k", 0, fmt.Sprintf("loop unrolling depth, 0..%d", compiler.MaxCycleDepth))
	pf.IntP("num-designs", "n", 100, "number of designs to sample")
	pf.IntP("tolerance", "t", 0, "default tolerance for a bare 'and' (0, 1 or 2)")
	pf.String("representation", compiler.EdgeRepresentation.String(), "graph representation: edge or node")
	pf.StringP("format", "o", string(FormatText), "output format: text, json or yaml")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.Uint64("seed", 0, "design sampling seed, 0 for time-based")

	root.AddCommand(newCompileCommand(a), newCombineCommand(a), newSimplifyCommand(a))
	return root
}

func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "constellation",
	})
}

// Execute runs the command tree with args and reports a failure, hints
// included, on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(stderr, FormatError(err))
	}
	return err
}

// FormatError renders err and its hints for the terminal.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error: %s\n", err)
	for _, h := range errors.GetAllHints(err) {
		fmt.Fprintf(&sb, "  hint: %s\n", h)
	}
	return sb.String()
}
