package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hostersuite/wfclient/internal/journal"
	"github.com/hostersuite/wfclient/internal/report"
)

// JournalOptions holds flags for the journal commands.
type JournalOptions struct {
	*RootOptions
	Database string
}

// NewJournalCommand creates the journal command group.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect persisted runs",
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "journal", "", "path to the run journal database (required)")
	_ = cmd.MarkPersistentFlagRequired("journal")

	cmd.AddCommand(newJournalListCommand(opts))
	cmd.AddCommand(newJournalRenderCommand(opts))

	return cmd
}

func newJournalListCommand(opts *JournalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted runs",
		Long: `List every run in the journal, oldest first, with its run ID, account,
home server, start time and record count.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open journal", err)
			}
			defer j.Close()

			runs, err := j.ListRuns(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list runs", err)
			}

			formatter := &OutputFormatter{
				Format:  opts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: opts.Verbose,
			}
			if opts.Format == "json" {
				return formatter.Success(runs)
			}

			var b strings.Builder
			for _, run := range runs {
				fmt.Fprintf(&b, "%s  %s@%s  %s  %d records\n",
					run.ID, run.Username, run.Server,
					run.StartedAt.Format("2006-01-02 15:04:05"), run.Records)
			}
			if b.Len() == 0 {
				b.WriteString("no runs\n")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}

func newJournalRenderCommand(opts *JournalOptions) *cobra.Command {
	var reportFile string

	cmd := &cobra.Command{
		Use:           "render <run-id>",
		Short:         "Re-render a persisted run to HTML",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]

			j, err := journal.Open(opts.Database)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open journal", err)
			}
			defer j.Close()

			records, err := j.RunRecords(cmd.Context(), runID)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to read run", err)
			}
			if len(records) == 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("no records for run %s", runID))
			}

			if reportFile == "" {
				doc, err := report.Render(records)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to render run", err)
				}
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}

			if err := report.WriteFile(reportFile, records, false); err != nil {
				return WrapExitError(ExitCommandError, "failed to write report", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportFile, "reportfile", "", "write HTML here instead of stdout")
	return cmd
}
