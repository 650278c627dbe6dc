// Package main provides the CLI entry point for pivotkit-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pivotkit/pivotkit-go/pkg/pivotkit"
	"github.com/pivotkit/pivotkit-go/pkg/pivotkit/output"
)

var (
	outputPath   string
	workbookPath string
	pretty       bool
	removeFields string
	relations    int
	dashboard    bool
	description  string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pivotkit [input file or upload directory]",
		Short: "Summarize a tabular dataset into pivot tables, charts and a workbook",
		Long: `pivotkit-go cleans a spreadsheet or CSV file, derives pivot-table
summaries between its columns, renders each summary as a chart and bundles
everything into a JSON result with an embedded workbook.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Bundle JSON output path (default: stdout)")
	rootCmd.Flags().StringVar(&workbookPath, "workbook", "", "Also write the assembled workbook to this path")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&removeFields, "remove", "", "Comma-separated column names to drop")
	rootCmd.Flags().IntVar(&relations, "relations", 3, "Number of relationships to summarize")
	rootCmd.Flags().BoolVar(&dashboard, "dashboard", true, "Render charts and build the dashboard sheet")
	rootCmd.Flags().StringVar(&description, "description", "", "Free-text description stored in the bundle")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline progress to stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts := pivotkit.DefaultOptions()
	opts.RemoveFields = removeFields
	opts.Relations = relations
	opts.RequireDashboard = &dashboard
	opts.Description = description
	if workbookPath != "" {
		opts.OutputName = filepath.Base(workbookPath)
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		defer logger.Sync()
		opts.Logger = logger
	}

	bundle, err := pivotkit.Process(args[0], opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	jsonData, err := output.ToJSON(bundle, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Println(string(jsonData))
	}

	if workbookPath != "" {
		wb, err := output.DecodeWorkbook(bundle)
		if err != nil {
			return fmt.Errorf("failed to decode workbook: %w", err)
		}
		if err := os.WriteFile(workbookPath, wb, 0644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}

	return nil
}
