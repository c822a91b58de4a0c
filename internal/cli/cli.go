// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/pathtree/internal/commands"
	"github.com/temirov/pathtree/internal/config"
	"github.com/temirov/pathtree/internal/output"
	"github.com/temirov/pathtree/internal/services/clipboard"
	"github.com/temirov/pathtree/internal/types"
	"github.com/temirov/pathtree/internal/utils"
	"github.com/temirov/pathtree/internal/walk"
)

const (
	rootPathFlagName       = "root-path"
	rootPathFlagShorthand  = "r"
	patternFlagName        = "pattern"
	patternFlagShorthand   = "p"
	excludeFlagName        = "exclude"
	excludeFlagShorthand   = "e"
	formatFlagName         = "format"
	syntaxFlagName         = "syntax"
	skipUnreadableFlagName = "skip-unreadable"
	statsFlagName          = "stats"
	copyFlagName           = "copy"
	configFlagName         = "config"
	verboseFlagName        = "verbose"
	verboseFlagShorthand   = "v"
	versionFlagName        = "version"
	globalFlagName         = "global"
	forceFlagName          = "force"

	defaultRootPath = "."
	versionTemplate = "pathtree version: %s\n"

	rootUse              = "pathtree"
	rootShortDescription = "display a filtered directory tree"
	rootLongDescription  = `pathtree prints the hierarchy below a root path.
Use --pattern to keep only matching paths and the directories leading to them,
and --exclude to drop matching paths. Both patterns are matched against the
full path of each entry, starting with the root's own name.`
	rootUsageExample = `  # Print the current directory
  pathtree

  # Show only Go files below ./internal
  pathtree -r ./internal -p '*.go'

  # Hide test files and render JSON
  pathtree -e '*_test.go' --format json`

	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default configuration file into the working directory,
or into ~/.pathtree with --global.`

	rootPathFlagDescription       = "traversal root"
	patternFlagDescription        = "inclusion glob matched against full paths"
	excludeFlagDescription        = "exclusion glob matched against full paths"
	formatFlagDescription         = "output format (raw, json, xml)"
	syntaxFlagDescription         = "pattern syntax (glob: '*' crosses '/', path: only '**' does)"
	skipUnreadableFlagDescription = "skip entries whose metadata cannot be read"
	statsFlagDescription          = "print insertion statistics to stderr"
	copyFlagDescription           = "copy the rendered tree to the clipboard"
	configFlagDescription         = "configuration file path"
	verboseFlagDescription        = "enable debug logging"
	versionFlagDescription        = "display application version"
	globalFlagDescription         = "write the global configuration file"
	forceFlagDescription          = "overwrite an existing configuration file"

	statsTemplate           = "entries: %d, inserted: %d, replaced: %d, filtered: %d, excluded: %d, orphaned: %d, rejected: %d\n"
	configurationWritten    = "configuration written to %s\n"
	errorLoadConfiguration  = "loading configuration: %w"
	errorRenderOutput       = "rendering output: %w"
	errorCopyOutput         = "copying output: %w"
	errorPrintStats         = "printing statistics: %w"
	logMessageConfiguration = "effective options"
)

// Options carries the collaborators the command line needs.
type Options struct {
	Logger           *zap.Logger
	Level            *zap.AtomicLevel
	Copier           clipboard.Copier
	WorkingDirectory string
	HomeDirectory    string
	// Stream overrides the directory traversal; nil walks the filesystem.
	Stream walk.StreamFunc
}

// Execute runs the pathtree application with the process arguments.
func Execute(options Options) error {
	rootCommand := NewRootCommand(options)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// treeOptions stores the values of the tree flags.
type treeOptions struct {
	rootPath       string
	pattern        string
	exclude        string
	format         string
	syntax         string
	skipUnreadable bool
	stats          bool
	copy           bool
	configPath     string
	verbose        bool
	showVersion    bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(options Options) *cobra.Command {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Copier == nil {
		options.Copier = clipboard.NewService()
	}

	var flagValues treeOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if flagValues.verbose && options.Level != nil {
				options.Level.SetLevel(zapcore.DebugLevel)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if flagValues.showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			return runTree(command, options, flagValues)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVarP(&flagValues.rootPath, rootPathFlagName, rootPathFlagShorthand, defaultRootPath, rootPathFlagDescription)
	flags.StringVarP(&flagValues.pattern, patternFlagName, patternFlagShorthand, utils.EmptyString, patternFlagDescription)
	flags.StringVarP(&flagValues.exclude, excludeFlagName, excludeFlagShorthand, utils.EmptyString, excludeFlagDescription)
	flags.StringVar(&flagValues.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flags.StringVar(&flagValues.syntax, syntaxFlagName, types.SyntaxGlob, syntaxFlagDescription)
	registerBooleanFlag(flags, &flagValues.skipUnreadable, skipUnreadableFlagName, false, skipUnreadableFlagDescription)
	registerBooleanFlag(flags, &flagValues.stats, statsFlagName, false, statsFlagDescription)
	registerBooleanFlag(flags, &flagValues.copy, copyFlagName, false, copyFlagDescription)
	flags.StringVar(&flagValues.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	flags.BoolVar(&flagValues.showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().BoolVarP(&flagValues.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagDescription)

	rootCommand.AddCommand(createInitCommand(options))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(options Options) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: options.WorkingDirectory,
				HomeDirectory:    options.HomeDirectory,
			})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), configurationWritten, writtenPath)
			return printError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveTreeOptions overlays configuration file values onto flags the user
// did not set explicitly.
func resolveTreeOptions(command *cobra.Command, options Options, flagValues treeOptions) (treeOptions, error) {
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: options.WorkingDirectory,
		ExplicitFilePath: flagValues.configPath,
		HomeDirectory:    options.HomeDirectory,
	})
	if loadError != nil {
		return treeOptions{}, fmt.Errorf(errorLoadConfiguration, loadError)
	}

	resolved := flagValues
	flags := command.Flags()
	if !flags.Changed(patternFlagName) && loaded.Pattern != "" {
		resolved.pattern = loaded.Pattern
	}
	if !flags.Changed(excludeFlagName) && loaded.Exclude != "" {
		resolved.exclude = loaded.Exclude
	}
	if !flags.Changed(formatFlagName) && loaded.Format != "" {
		resolved.format = loaded.Format
	}
	if !flags.Changed(syntaxFlagName) && loaded.Syntax != "" {
		resolved.syntax = loaded.Syntax
	}
	if !flags.Changed(skipUnreadableFlagName) {
		resolved.skipUnreadable = config.BoolOrDefault(loaded.SkipUnreadable, resolved.skipUnreadable)
	}
	if !flags.Changed(statsFlagName) {
		resolved.stats = config.BoolOrDefault(loaded.Stats, resolved.stats)
	}
	if !flags.Changed(copyFlagName) {
		resolved.copy = config.BoolOrDefault(loaded.Copy, resolved.copy)
	}
	resolved.format = strings.ToLower(resolved.format)
	return resolved, nil
}

// runTree builds the tree for the resolved options and renders it.
func runTree(command *cobra.Command, options Options, flagValues treeOptions) error {
	resolved, resolveError := resolveTreeOptions(command, options, flagValues)
	if resolveError != nil {
		return resolveError
	}
	renderer, rendererError := output.NewRenderer(resolved.format)
	if rendererError != nil {
		return rendererError
	}
	options.Logger.Debug(logMessageConfiguration,
		zap.String(rootPathFlagName, resolved.rootPath),
		zap.String(patternFlagName, resolved.pattern),
		zap.String(excludeFlagName, resolved.exclude),
		zap.String(formatFlagName, resolved.format),
		zap.String(syntaxFlagName, resolved.syntax),
	)

	treeBuilder := &commands.TreeBuilder{
		Pattern:        resolved.pattern,
		Exclude:        resolved.exclude,
		Syntax:         resolved.syntax,
		SkipUnreadable: resolved.skipUnreadable,
		Logger:         options.Logger,
		Stream:         options.Stream,
	}
	builtTree, stats, buildError := treeBuilder.GetTreeData(resolved.rootPath)
	if buildError != nil {
		return buildError
	}

	var rendered bytes.Buffer
	if renderError := renderer.Render(&rendered, builtTree); renderError != nil {
		return fmt.Errorf(errorRenderOutput, renderError)
	}
	renderedText := rendered.String()
	if _, writeError := io.WriteString(command.OutOrStdout(), renderedText); writeError != nil {
		return fmt.Errorf(errorRenderOutput, writeError)
	}

	if resolved.stats {
		if _, printError := fmt.Fprintf(command.ErrOrStderr(), statsTemplate, stats.Entries, stats.Inserted, stats.Replaced, stats.Filtered, stats.Excluded, stats.Orphaned, stats.Rejected); printError != nil {
			return fmt.Errorf(errorPrintStats, printError)
		}
	}
	if resolved.copy {
		if copyError := options.Copier.Copy(renderedText); copyError != nil {
			return fmt.Errorf(errorCopyOutput, copyError)
		}
	}
	return nil
}
