// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/compiler"
	"github.com/katalvlaran/constellation/design"
	"github.com/katalvlaran/constellation/expr"
)

func newCompileCommand(a *app) *cobra.Command {
	var (
		file      string
		minimized bool
	)
	cmd := &cobra.Command{
		Use:   "compile [expression]",
		Short: "Compile an expression and enumerate its designs",
		Example: `  constellation compile -c parts.json "promoter then (zero-or-one cds)"
  constellation compile -c parts.yaml -f design.txt -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := expressionText(args, file)
			if err != nil {
				return err
			}
			table, err := loadCategories(a.cfg.Categories)
			if err != nil {
				return err
			}
			repr, err := compiler.ParseRepresentation(a.cfg.Representation)
			if err != nil {
				return err
			}
			e, res, err := a.compile(cmd.Context(), text, table, repr)
			if err != nil {
				return err
			}
			designs, err := design.Enumerate(res.Paths, a.cfg.NumDesigns, design.WithSeed(a.cfg.Seed))
			if err != nil {
				return err
			}
			g := res.Graph
			if minimized {
				g = res.Minimized
			}
			return render(cmd.OutOrStdout(), a.cfg.Format, &Report{
				Expression: e.String(),
				Graph:      viewGraph(g),
				Paths:      pathTexts(res.Paths),
				Designs:    designs,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the expression from a file")
	cmd.Flags().BoolVar(&minimized, "minimized", false, "show the minimized graph")
	return cmd
}

// compile parses text under the configured tolerance and compiles it.
func (a *app) compile(ctx context.Context, text string, table category.Table, repr compiler.Representation) (expr.Expr, *compiler.Result, error) {
	e, err := expr.Parse(text, expr.WithAndTolerance(category.Tolerance(a.cfg.Tolerance)))
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("parsed", "expression", e.String())
	res, err := compiler.Compile(e, table,
		compiler.WithContext(ctx),
		compiler.WithMaxCycles(a.cfg.MaxCycles),
		compiler.WithRepresentation(repr),
		compiler.WithLogger(a.logger),
	)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Info("compiled", "expression", e.String(),
		"nodes", res.Graph.NumNodes(), "paths", len(res.Paths))
	return e, res, nil
}

func expressionText(args []string, file string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", errors.WithHint(
			errors.New("cli: expression given twice"),
			"pass the expression as an argument or with --file, not both")
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", errors.Wrap(err, "read expression")
		}
		return strings.TrimSpace(string(b)), nil
	case len(args) == 0:
		return "", errors.WithHint(
			errors.New("cli: no expression"),
			`pass an expression such as "promoter then cds"`)
	default:
		return strings.Join(args, " "), nil
	}
}
