package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hostersuite/wfclient/internal/config"
	"github.com/hostersuite/wfclient/internal/journal"
	"github.com/hostersuite/wfclient/internal/plan"
	"github.com/hostersuite/wfclient/internal/report"
	"github.com/hostersuite/wfclient/internal/rpc"
	"github.com/hostersuite/wfclient/internal/runlog"
	"github.com/hostersuite/wfclient/internal/script"
	"github.com/hostersuite/wfclient/internal/session"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ScriptFile string
	ReportFile string
	Journal    string
	APIURL     string
	Append     bool

	// Caller overrides the transport (for testing). If nil, an XML-RPC
	// client is dialed against the resolved API URL.
	Caller rpc.Caller
}

// DefaultReportFile is where the HTML report lands when neither the
// --reportfile flag nor the config file names one.
const DefaultReportFile = "wfclient-report.html"

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <username> <password>",
		Short: "Run a script or plan against an account",
		Long: `Log in, execute the given script (JavaScript) or plan (YAML) against the
account, and render every attempted call to an HTML report.

Individual call failures and guard skips land in the report without stopping
the run; the command exits 0 once the script completes. An unreadable script
or unwritable report exits 2.

Example:
  wfclient run alice s3cret --scriptfile setup.js --reportfile run.html
  wfclient run alice s3cret --scriptfile site.yaml --journal runs.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ScriptFile, "scriptfile", "", "script (*.js) or plan (*.yaml) to execute (required)")
	cmd.Flags().StringVar(&opts.ReportFile, "reportfile", "", "HTML report output path")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "SQLite run journal path (off when empty)")
	cmd.Flags().StringVar(&opts.APIURL, "api-url", "", "provider API endpoint override")
	cmd.Flags().BoolVar(&opts.Append, "append", false, "append rows to an existing report")
	_ = cmd.MarkFlagRequired("scriptfile")

	return cmd
}

func runScript(opts *RunOptions, username, password string, cmd *cobra.Command) error {
	cfgPath := opts.Config
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	reportPath := config.Resolve(opts.ReportFile, cfg.ReportFile, DefaultReportFile)
	journalPath := config.Resolve(opts.Journal, cfg.JournalFile, "")
	apiURL := config.Resolve(opts.APIURL, cfg.APIURL, rpc.DefaultURL)

	// Fail on an unreadable script before dialing anything.
	if _, err := os.Stat(opts.ScriptFile); err != nil {
		return WrapExitError(ExitCommandError, "cannot read script file", err)
	}

	caller := opts.Caller
	if caller == nil {
		client, err := rpc.Dial(apiURL, nil)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to dial provider", err)
		}
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				slog.Error("error closing transport", "error", closeErr)
			}
		}()
		caller = client
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	log := runlog.New()
	s := session.New(caller, catalogInstance(), log)

	slog.Info("logging in", "user", username, "url", apiURL)
	runErr := s.Login(ctx, username, password)
	if runErr != nil {
		// A rejected login is the run's only record; the report still
		// tells the operator what happened.
		log.Record("login", runlog.StatusFailure, runErr.Error())
	} else {
		runErr = execute(ctx, opts.ScriptFile, s, cmd)
	}

	if err := report.WriteFile(reportPath, log.Snapshot(), opts.Append); err != nil {
		return WrapExitError(ExitCommandError, "failed to write report", err)
	}
	slog.Info("report written", "path", reportPath, "records", log.Len(), "failures", len(log.Failures()))

	if journalPath != "" {
		if err := persistRun(ctx, journalPath, username, s); err != nil {
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
	}

	if runErr != nil {
		var authErr *session.AuthError
		if errors.As(runErr, &authErr) {
			return WrapExitError(ExitFailure, "login rejected", runErr)
		}
		return WrapExitError(ExitFailure, "script aborted", runErr)
	}
	return nil
}

// execute picks the script form by extension: YAML is a declarative plan,
// everything else runs as JavaScript.
func execute(ctx context.Context, path string, s *session.Session, cmd *cobra.Command) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err := plan.Load(path)
		if err != nil {
			return err
		}
		slog.Info("running plan", "name", p.Name, "steps", len(p.Steps))
		return p.Run(ctx, s)
	default:
		engine := script.New(ctx, s, cmd.OutOrStdout())
		return engine.RunFile(path)
	}
}

// persistRun stores the run's records in the journal, keyed by a fresh
// time-ordered run ID.
func persistRun(ctx context.Context, path, username string, s *session.Session) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			slog.Error("error closing journal", "error", closeErr)
		}
	}()

	runID, err := j.BeginRun(ctx, username, s.WebServer())
	if err != nil {
		return err
	}
	if err := j.AppendSnapshot(ctx, runID, s.Snapshot()); err != nil {
		return err
	}
	slog.Info("run journaled", "path", path, "run", runID)
	return nil
}
