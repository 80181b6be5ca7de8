package common

import (
	"context"
	"fmt"

	"resumescan/internal/analysis"
	"resumescan/internal/errors"
	"resumescan/internal/extract"
	"resumescan/internal/types"
	"resumescan/internal/utils"
)

// ScanRunner drives the extraction and analysis pipeline for CLI commands.
type ScanRunner struct {
	engine        *analysis.Engine
	extractor     *extract.Extractor
	fileProcessor *FileProcessor
	logger        *errors.Logger
}

// NewScanRunner creates a scan runner with the default vocabulary.
func NewScanRunner(logger *errors.Logger) *ScanRunner {
	return &ScanRunner{
		engine:        analysis.NewEngine(analysis.DefaultVocabulary(), logger),
		extractor:     extract.New(logger),
		fileProcessor: NewFileProcessor(logger),
		logger:        logger,
	}
}

// ScanFile reads a resume file from disk and runs it through the pipeline.
func (sr *ScanRunner) ScanFile(ctx context.Context, path, jobDescription string) (*types.AnalysisResponse, error) {
	if err := utils.ValidateInputFile(path); err != nil {
		return nil, errors.NewValidationError("INVALID_INPUT_FILE",
			fmt.Sprintf("Invalid file %s", path), err)
	}

	if !utils.IsSupportedResumeFile(path) {
		sr.logger.Warn("File extension is not a supported resume format",
			"filename", path)
	}

	data, err := sr.fileProcessor.ReadFileBytes(path)
	if err != nil {
		return nil, err
	}

	doc := &types.Document{
		Filename: path,
		Size:     int64(len(data)),
		Data:     data,
	}

	extracted, err := sr.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	return sr.engine.Analyze(ctx, extracted, jobDescription)
}

// ReadJobDescription loads an optional job description file. An empty path
// means quality scoring, so it returns an empty string without error.
func (sr *ScanRunner) ReadJobDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	contents, err := sr.fileProcessor.ValidateAndReadFiles(path)
	if err != nil {
		return "", err
	}
	return contents[0], nil
}

// RunScanCommand encapsulates the common logic for file-based scan commands.
func RunScanCommand(
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	resumePath string,
	jobDescriptionPath string,
) error {
	runner := NewScanRunner(logger)
	outputHandler := NewOutputHandler(logger)

	jobDescription, err := runner.ReadJobDescription(jobDescriptionPath)
	if err != nil {
		return err
	}

	logger.Info("Scanning resume",
		"filename", resumePath,
		"job_description", jobDescriptionPath != "")

	response, err := runner.ScanFile(ctx, resumePath, jobDescription)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(response, cmdConfig)
}
