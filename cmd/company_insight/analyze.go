package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/company-insight/internal/config"
	"github.com/jonathan/company-insight/internal/report"
)

var analyzeShowRaw bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <company name>",
	Short: "Run one analysis from the command line",
	Long:  `Look up a company's registration record and print the generated analysis report to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeShowRaw, "raw", false, "Also print the raw registry record")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logger.Sync() }()

	analyzer := newAnalyzer(cfg, logger)

	result, err := analyzer.Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if analyzeShowRaw {
		raw, err := report.MarshalRecord(result.Record)
		if err != nil {
			return err
		}
		fmt.Println(raw)
		fmt.Println("---")
	}

	fmt.Println(result.Report)
	return nil
}
