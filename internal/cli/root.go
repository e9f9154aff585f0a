/*
 * root.go, part of gostoich.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package cli implements the stoich command: a cobra command tree over the
// goStoich operations, with configuration, logging and output formatting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	stoich "github.com/rmera/gostoich"
	"github.com/rmera/gostoich/internal/config"
	"github.com/rmera/gostoich/stoichjson"
	"github.com/rmera/gostoich/tables"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type cliContextKey struct{}

// RootOptions holds the global flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// CLIContext carries what every command needs.
type CLIContext struct {
	Config       *config.Config
	Logger       *zap.Logger
	Masses       *stoich.MassTable
	Rules        stoich.OxidationTable
	Evaluator    *stoichjson.Evaluator
	OutputFormat string
}

// NewRootCommand creates the root command with its global flags and all the subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "stoich",
		Short: "Chemical formula and stoichiometry calculations",
		Long: `stoich parses chemical formulas and computes molar masses, percent composition,
empirical and molecular formulas, oxidation states, ionic compound formulas
and limiting reagents.`,
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c, err := GetCLIContext(cmd); err == nil {
				_ = c.Logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./stoich.yaml, then ~/.config/gostoich/stoich.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", config.DefaultOutput, "output format (text, json, table)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "same as --log-level debug")

	cmd.AddCommand(
		newParseCmd(),
		newMassCmd(),
		newEmpiricalCmd(),
		newOxidationCmd(),
		newIonicCmd(),
		newIonsCmd(),
		newLimitingCmd(),
		newYieldCmd(),
		newBatchCmd(),
		newTablesCmd(),
	)
	return cmd
}

// persistentPreRun loads config, logger and data tables, and stores them in a CLIContext.
// Flags given explicitly take precedence over the configuration.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output = opts.OutputFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	masses, rules, err := loadTables(cfg, logger)
	if err != nil {
		return err
	}
	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Masses:       masses,
		Rules:        rules,
		Evaluator:    stoichjson.NewEvaluator(masses, rules),
		OutputFormat: cfg.Output,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// newLogger returns a console logger writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func loadTables(cfg *config.Config, log *zap.Logger) (*stoich.MassTable, stoich.OxidationTable, error) {
	masses := stoich.DefaultMassTable()
	rules := stoich.DefaultOxidationTable()
	var err error
	if cfg.MassTable != "" {
		if masses, err = tables.LoadMassTable(cfg.MassTable); err != nil {
			return nil, rules, err
		}
		log.Debug("mass table loaded", zap.String("file", cfg.MassTable), zap.Int("elements", masses.Len()))
	}
	if cfg.OxidationTable != "" {
		if rules, err = tables.LoadOxidationTable(cfg.OxidationTable); err != nil {
			return nil, rules, err
		}
		log.Debug("oxidation rules loaded", zap.String("file", cfg.OxidationTable), zap.Int("rules", len(rules.Rules())))
	}
	return masses, rules, nil
}

// GetCLIContext extracts the CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute runs the command line. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// ExitCode maps an error to the exit status of the command: 2 for bad input,
// 3 for unknown elements or ions, 4 for insufficient or inconsistent data, 1 otherwise.
func ExitCode(err error) int {
	var serr *stoich.Error
	var jerr *stoichjson.Error
	kind := ""
	switch {
	case err == nil:
		return 0
	case errors.As(err, &serr):
		kind = serr.Kind().String()
	case errors.As(err, &jerr):
		kind = jerr.Kind
	}
	switch kind {
	case stoich.MalformedInput.String(), stoich.InvalidMagnitude.String():
		return 2
	case stoich.UnknownEntity.String():
		return 3
	case stoich.InsufficientData.String(), stoich.Inconsistent.String():
		return 4
	}
	return 1
}
