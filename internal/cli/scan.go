package cli

import (
	"fmt"

	"resumescan/internal/common"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [resume-file]",
	Short: "Scan a resume and score it",
	Long: `Scan a resume document and produce an analysis report.

With --job the resume is scored against the job description (keyword match,
experience, education, format). Without it the resume is scored on standalone
quality (completeness, writing, length, readability).`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scanConfig.OutputFormat == "" {
			scanConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scanConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScan,
}

var scanConfig common.CommandConfig
var scanJobFile string

func init() {
	scanCmd.Flags().StringVarP(&scanConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scanCmd.Flags().StringVar(&scanConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	scanCmd.Flags().StringVarP(&scanJobFile, "job", "j", "", "Job description file to score against (optional)")

	// Add completion for format flag
	_ = scanCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	err := common.RunScanCommand(
		cmd.Context(),
		logger,
		scanConfig,
		args[0],
		scanJobFile,
	)
	if err != nil {
		return fmt.Errorf("failed to scan resume: %w", err)
	}

	logger.Info("Resume scan completed successfully")
	return nil
}
