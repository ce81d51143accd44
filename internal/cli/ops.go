package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/hostersuite/wfclient/internal/schema"
)

// catalogInstance returns the shared operation catalog, compiled once.
var catalogInstance = sync.OnceValue(schema.MustLoad)

// OpSummary is one catalog entry in `ops` output.
type OpSummary struct {
	Name    string   `json:"name"`
	Params  []string `json:"params,omitempty"`
	Guarded bool     `json:"guarded,omitempty"`
}

// NewOpsCommand creates the ops command, which prints the operation catalog.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "Print the operation catalog",
		Long: `Print every operation the client can dispatch, with its keyword
parameters. Guarded operations are suppressed client-side when their
existence precondition fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			}

			catalog := catalogInstance()
			summaries := make([]OpSummary, 0, catalog.Len())
			for _, op := range catalog.Operations() {
				summaries = append(summaries, OpSummary{
					Name:    op.Name,
					Params:  op.ParamNames(),
					Guarded: op.Guarded(),
				})
			}

			if rootOpts.Format == "json" {
				return formatter.Success(summaries)
			}

			var b strings.Builder
			for _, s := range summaries {
				fmt.Fprintf(&b, "%s(%s)", s.Name, strings.Join(s.Params, ", "))
				if s.Guarded {
					b.WriteString("  [guarded]")
				}
				b.WriteString("\n")
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}
