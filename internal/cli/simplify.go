// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/constellation/category"
	"github.com/katalvlaran/constellation/expr"
)

// SimplifyReport pairs an expression with its simplified form.
type SimplifyReport struct {
	Expression string   `json:"expression" yaml:"expression"`
	Simplified string   `json:"simplified" yaml:"simplified"`
	Atoms      []string `json:"atoms" yaml:"atoms"`
}

func (r *SimplifyReport) String() string { return r.Simplified }

func newSimplifyCommand(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "simplify [expression]",
		Short:   "Rewrite an expression into an equivalent, smaller one",
		Example: `  constellation simplify "zero-or-more a then a"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := expressionText(args, file)
			if err != nil {
				return err
			}
			e, err := expr.Parse(text, expr.WithAndTolerance(category.Tolerance(a.cfg.Tolerance)))
			if err != nil {
				return err
			}
			s := expr.Simplify(e)
			a.logger.Debug("simplified", "from", e.String(), "to", s.String())
			return render(cmd.OutOrStdout(), a.cfg.Format, &SimplifyReport{
				Expression: e.String(),
				Simplified: s.String(),
				Atoms:      expr.Atoms(s),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the expression from a file")
	return cmd
}
