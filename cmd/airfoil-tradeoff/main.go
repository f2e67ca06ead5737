package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/airfoil-tradeoff/internal/analysis"
	"github.com/iwvelando/airfoil-tradeoff/internal/config"
	"github.com/iwvelando/airfoil-tradeoff/internal/export"
	"github.com/iwvelando/airfoil-tradeoff/internal/logging"
	"github.com/iwvelando/airfoil-tradeoff/internal/source"
	"github.com/iwvelando/airfoil-tradeoff/pkg/constants"
	"github.com/iwvelando/airfoil-tradeoff/pkg/output"
	"github.com/iwvelando/airfoil-tradeoff/pkg/validation"
	"go.uber.org/zap"
)

// sourceDirectory resolves the directory polar files are read from. Relative
// directories are taken relative to the configuration file.
func sourceDirectory(configLocation string, conf *config.Configuration) string {
	if filepath.IsAbs(conf.SourceDirectory) {
		return conf.SourceDirectory
	}
	return filepath.Join(filepath.Dir(configLocation), conf.SourceDirectory)
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	outputDirFlag := flag.String("output-dir", "", "artifact directory override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	outputDir := conf.Output.Directory
	if *outputDirFlag != "" {
		outputDir = *outputDirFlag
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	var reporter analysis.Reporter = analysis.NewLogReporter(logger)
	var console *output.Console
	if outputFormat == constants.OutputFormatPretty {
		console = output.NewConsole(os.Stdout)
		reporter = analysis.MultiReporter{reporter, console}
	}

	src := source.NewFileSource(sourceDirectory(*configLocation, conf))
	report, err := analysis.Run(logger, *conf, src, reporter)
	if report == nil {
		logger.Fatal("analysis failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err != nil {
		// The comparison is still exported when the wing study fails.
		logger.Error("wing study failed",
			zap.String("op", "main"),
			zap.String("runId", report.RunID),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		fmt.Println()
		output.PrettyFormat(report)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(report); err != nil {
			logger.Error("failed to write csv output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	dir := export.NewDirectory(outputDir, logger)
	artifacts, err := dir.WriteReport(report, export.Options{
		Charts:   conf.Output.ChartsEnabled(),
		Workbook: conf.Output.WorkbookEnabled(),
	})
	if console != nil {
		fmt.Println()
		for _, artifact := range artifacts {
			console.Saved(artifact.Kind, artifact.Path)
		}
	}
	if err != nil {
		logger.Fatal("failed to write artifacts",
			zap.String("op", "main"),
			zap.String("directory", outputDir),
			zap.Error(err),
		)
	}
}
