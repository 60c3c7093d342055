package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/locvowork/company_reporting/internal/bootstrap"
	"github.com/locvowork/company_reporting/internal/logger"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "company_reporting",
		Short:         "Load the company CSV files, run the reports and export them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd)
		},
	}

	cmd.AddCommand(newServeCmd())
	return cmd
}

func runPipeline(cmd *cobra.Command) error {
	if err := bootstrap.Environment(cmd.Context()); err != nil {
		return err
	}
	// the run logger must be derived after logging is configured
	ctx := logger.WithLogger(cmd.Context(), map[string]interface{}{"run_id": uuid.NewString()})

	db, dialect, err := bootstrap.OpenDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, _, err := bootstrap.NewReportService(db, dialect)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}
