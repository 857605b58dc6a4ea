// record-gen generates immutable record types for Go.
//
// Usage:
//
//	//go:generate record-gen record
//	type PersonSchema struct { ... }
//
//	//go:generate record-gen record -schema=records.yaml
//
//	//go:generate record-gen equals
//	type Config struct { ... }
//
// Subcommands:
//
//	record   Generate an immutable record type with Derive, Equals and Is
//	equals   Generate Equals and Is methods for an existing struct
//
// Flags:
//
//	-type       The name of the struct type (inferred if directive is above the type)
//	-name       For record: name of the generated record (default: type name without "Schema")
//	-schema     For record: YAML schema file to read instead of a Go struct
//	-output     Output directory for generated files (default: same as source)
//	-package    Package name for generated files (default: same as source)
//	-runtime    Import path prefix of the is and record runtime packages
//	-method     For equals: name of the generated equality method (default: Equals)
//	-config     Configuration file (default: .record-gen.yaml in the source directory)
//	-log-level  Log level: debug, info, warn or error
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bobcob7/record-gen/internal/codegen"
	"github.com/bobcob7/record-gen/internal/codegen/equals"
	"github.com/bobcob7/record-gen/internal/codegen/record"
	"github.com/bobcob7/record-gen/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	subcommand := os.Args[1]
	if subcommand == "-h" || subcommand == "-help" || subcommand == "--help" {
		printUsage()
		os.Exit(0)
	}
	os.Args = append(os.Args[:1], os.Args[2:]...)
	var (
		typeName   string
		recordName string
		schemaFile string
		configFile string
		flags      config.Config
	)
	flag.StringVar(&typeName, "type", "", "Name of the struct type (inferred if directive is above the type)")
	flag.StringVar(&recordName, "name", "", "For record: name of the generated record")
	flag.StringVar(&schemaFile, "schema", "", "For record: YAML schema file to read instead of a Go struct")
	flag.StringVar(&flags.Output, "output", "", "Output directory for generated files (default: same as source)")
	flag.StringVar(&flags.Package, "package", "", "Package name for generated files (default: same as source)")
	flag.StringVar(&flags.Runtime, "runtime", "", "Import path prefix of the is and record runtime packages")
	flag.StringVar(&flags.Method, "method", "", "For equals: name of the generated equality method (default: Equals)")
	flag.StringVar(&configFile, "config", "", "Configuration file (default: "+config.FileName+" in the source directory)")
	flag.StringVar(&flags.Logging.Level, "log-level", "", "Log level: debug, info, warn or error")
	flag.Parse()
	sourceDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting working directory: %v\n", err)
		os.Exit(1)
	}
	path, required := config.Find(sourceDir, configFile)
	fileCfg, err := config.Load(path, required)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Merge(fileCfg, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Logging)
	sourceFile := os.Getenv("GOFILE")
	if sourceFile == "" && schemaFile == "" {
		logger.Error().Msg("GOFILE environment variable not set (are you running via go generate?)")
		os.Exit(1)
	}
	if typeName == "" && schemaFile == "" {
		typeName, err = detectTypeName(subcommand, sourceDir, sourceFile)
		if err != nil {
			logger.Error().Err(err).Msg("hint: use -type=TypeName or place the directive directly above the struct")
			os.Exit(1)
		}
	}
	outputDir := cfg.Output
	if outputDir == "" {
		outputDir = sourceDir
	} else if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(sourceDir, outputDir)
	}
	genCfg := codegen.GeneratorConfig{
		TypeName:    typeName,
		RecordName:  recordName,
		SchemaFile:  schemaFile,
		SourceFile:  sourceFile,
		SourceDir:   sourceDir,
		SourcePkg:   os.Getenv("GOPACKAGE"),
		OutputDir:   outputDir,
		OutputPkg:   cfg.Package,
		RuntimePath: cfg.Runtime,
	}
	if err := runSubcommand(subcommand, genCfg, cfg.Method, logger); err != nil {
		logger.Error().Err(err).Str("subcommand", subcommand).Msg("generation failed")
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func detectTypeName(subcommand, sourceDir, sourceFile string) (string, error) {
	generatorName := "record-gen " + subcommand
	typeName, err := codegen.FindTypeAfterGenerateDirective(sourceDir, sourceFile, generatorName)
	if err == nil {
		return typeName, nil
	}
	goLine := os.Getenv("GOLINE")
	if goLine != "" {
		lineNum, lineErr := strconv.Atoi(goLine)
		if lineErr == nil {
			return codegen.FindTypeAfterLine(filepath.Join(sourceDir, sourceFile), lineNum)
		}
	}
	return "", err
}

func runSubcommand(name string, cfg codegen.GeneratorConfig, methodName string, logger zerolog.Logger) error {
	var subtool codegen.Subtool
	switch name {
	case "record":
		subtool = &record.Subtool{Logger: logger}
	case "equals":
		if cfg.SchemaFile != "" {
			return fmt.Errorf("equals does not read schema files")
		}
		subtool = &equals.Subtool{MethodName: methodName, Logger: logger}
	default:
		return fmt.Errorf("unknown subcommand: %s", name)
	}
	logger.Debug().Str("subcommand", subtool.Name()).Str("type", cfg.TypeName).Str("schema", cfg.SchemaFile).Msg(subtool.Description())
	return subtool.Run(cfg)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `record-gen - Immutable record generation for Go

Usage:
  //go:generate record-gen <subcommand> [flags]
  type PersonSchema struct { ... }

Subcommands:
  record   Generate an immutable record type with Derive, Equals and Is
  equals   Generate Equals and Is methods for an existing struct

Examples:
  //go:generate record-gen record
  //go:generate record-gen record -name=Person
  //go:generate record-gen record -schema=records.yaml
  //go:generate record-gen equals -method=Equal

Flags:
  -type string
        Name of the struct type (inferred if directive is above the type)
  -name string
        For record: name of the generated record (default: type name without "Schema")
  -schema string
        For record: YAML schema file to read instead of a Go struct
  -output string
        Output directory for generated files (default: same as source)
  -package string
        Package name for generated files (default: same as source)
  -runtime string
        Import path prefix of the is and record runtime packages
  -method string
        For equals: name of the generated equality method (default: Equals)
  -config string
        Configuration file (default: .record-gen.yaml in the source directory)
  -log-level string
        Log level: debug, info, warn or error
  -help
        Show this help message

Generated Files:
  record:
    {record}_record.go   - Record type from a Go struct
    {schema}_record.go   - Record types from a YAML schema file
  equals:
    {source}_equals.go   - Equals and Is methods for the struct

`)
}
