package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"ygo-pipelines/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkJSON bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database schema, the bucket and pending images",
	Long:  `Compares the pipeline tables with the models, verifies the image prefixes exist in the bucket and counts the cards still waiting for an image. Outputs metrics by default or the full report with --json.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		p, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer p.close()

		svc := integrity.NewService(p.objects, p.cfg.Storage.Bucket, p.db, p.store, p.log)
		report, checkErr := svc.CheckAll(cmd.Context())

		if checkJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
		} else {
			printCheckReport(report)
		}

		p.log.Info("Integrity check completed",
			zap.Bool("healthy", report.Healthy),
			zap.Duration("execution_time", time.Since(startTime)),
		)

		if checkErr != nil {
			return fmt.Errorf("integrity check failed: %w", checkErr)
		}
		if !report.Healthy {
			return fmt.Errorf("integrity check found problems")
		}
		return nil
	},
}

func printCheckReport(report *integrity.Report) {
	fmt.Println("\n=== Integrity Report ===")
	fmt.Printf("Healthy: %t\n", report.Healthy)

	if report.Schema != nil {
		fmt.Printf("\nSchema (%s): matched=%t\n", report.Schema.Driver, report.Schema.Matched)
		tables := make([]string, 0, len(report.Schema.Tables))
		for name := range report.Schema.Tables {
			tables = append(tables, name)
		}
		sort.Strings(tables)
		for _, name := range tables {
			t := report.Schema.Tables[name]
			fmt.Printf("  %-22s %s", name, t.Status)
			if len(t.MissingColumns) > 0 {
				fmt.Printf("  missing=%v", t.MissingColumns)
			}
			if len(t.TypeMismatches) > 0 {
				fmt.Printf("  mismatched=%v", t.TypeMismatches)
			}
			fmt.Println()
		}
	}

	if report.Storage != nil {
		fmt.Printf("\nBucket %s\n", report.Storage.Bucket)
		for _, prefix := range report.Storage.Missing {
			fmt.Printf("  missing prefix: %s\n", prefix)
		}
	}

	if report.Images != nil {
		fmt.Println("\nPending images")
		for variant, n := range report.Images.Pending {
			fmt.Printf("  %-8s %d\n", variant, n)
		}
	}

	for _, e := range report.Errors {
		fmt.Printf("\nerror: %s\n", e)
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the full report as JSON")

	RootCmd.AddCommand(checkCmd)
}
