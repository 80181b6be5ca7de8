package cli

import (
	"errors"
	"fmt"
	"sort"

	"resumescan/internal/common"
	scanerrors "resumescan/internal/errors"
	"resumescan/internal/types"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [resume-files...]",
	Short: "Scan multiple resumes and rank them",
	Long: `Scan multiple resume documents in one run and produce a ranked report.

Each file is scanned independently: a corrupt or rejected file never fails
the batch. Results are sorted by overall score descending with failed files
listed after all successes.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if len(args) > cfg.Scan.MaxBatchFiles {
			return fmt.Errorf("too many files: %d exceeds the maximum of %d", len(args), cfg.Scan.MaxBatchFiles)
		}
		if batchConfig.OutputFormat == "" {
			batchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(batchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runBatch,
}

var batchConfig common.CommandConfig
var batchJobFile string

func init() {
	batchCmd.Flags().StringVarP(&batchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	batchCmd.Flags().StringVar(&batchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	batchCmd.Flags().StringVarP(&batchJobFile, "job", "j", "", "Job description file to score against (optional)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	runner := common.NewScanRunner(logger)
	outputHandler := common.NewOutputHandler(logger)

	jobDescription, err := runner.ReadJobDescription(batchJobFile)
	if err != nil {
		return err
	}

	logger.Info("Starting batch scan",
		"files", len(args),
		"job_description", batchJobFile != "")

	batch := &types.BatchResponse{
		Success:       true,
		SchemaVersion: types.SchemaVersion,
		Results:       make([]types.BatchFileResult, 0, len(args)),
	}
	batch.Summary.TotalProcessed = len(args)

	for _, path := range args {
		result := types.BatchFileResult{
			Filename: path,
			AnalysisResponse: types.AnalysisResponse{
				SchemaVersion: types.SchemaVersion,
			},
		}

		response, err := runner.ScanFile(cmd.Context(), path, jobDescription)
		if err != nil {
			result.Error = batchErrorCode(err)
			result.Message = err.Error()
			logger.Warn("Batch file scan failed", "filename", path, "code", result.Error)
		} else {
			result.AnalysisResponse = *response
		}

		switch {
		case result.Success:
			batch.Summary.Successful++
		case result.ValidationError:
			batch.Summary.ValidationFailed++
			batch.Summary.Failed++
		default:
			batch.Summary.ProcessingFailed++
			batch.Summary.Failed++
		}
		batch.Results = append(batch.Results, result)
	}

	// Successes first by overall score descending, failures keep input order
	sort.SliceStable(batch.Results, func(i, j int) bool {
		si, sj := batch.Results[i].Success, batch.Results[j].Success
		if si != sj {
			return si
		}
		if !si {
			return false
		}
		return batch.Results[i].Result.OverallScore > batch.Results[j].Result.OverallScore
	})

	if err := outputHandler.HandleOutput(batch, batchConfig); err != nil {
		return err
	}

	logger.Info("Batch scan completed",
		"successful", batch.Summary.Successful,
		"failed", batch.Summary.Failed)
	return nil
}

// batchErrorCode extracts a stable error code for the batch report
func batchErrorCode(err error) string {
	var appErr *scanerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "SCAN_FAILED"
}
