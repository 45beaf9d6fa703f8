package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maud-build/maudtest/framework"
)

type commandParams struct {
	filters    framework.Filters
	debug      bool
	debugAll   bool
	list       bool
	configPath string
}

func (c *commandParams) bind(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.Var(&c.filters.Regex.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.Regex.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.filters.Globs, "match", "glob pattern(s) to select tests to run, e.g. 'arith/**'")
	fs.Var(&c.filters.SkipGlobs, "exclude", "glob pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.list, "list", false, "list the selected tests instead of running them, when no subcommand is given")
	fs.StringVar(&c.configPath, "config", "", "YAML file with default values for these flags")
}

// resolve fills in options from the config file that were not given as flags.
func (c *commandParams) resolve(cmd *cobra.Command) error {
	cfg, err := framework.LoadRunConfig(c.configPath)
	if err != nil {
		return err
	}
	fromFile, err := cfg.Filters()
	if err != nil {
		return fmt.Errorf("config %s: %w", c.configPath, err)
	}
	flags := cmd.Flags()
	if !flags.Changed("run") {
		c.filters.Regex.MustMatch = fromFile.Regex.MustMatch
	}
	if !flags.Changed("skip") {
		c.filters.Regex.MustNotMatch = fromFile.Regex.MustNotMatch
	}
	if !flags.Changed("match") {
		c.filters.Globs = fromFile.Globs
	}
	if !flags.Changed("exclude") {
		c.filters.SkipGlobs = fromFile.SkipGlobs
	}
	if !flags.Changed("debug") {
		c.debug = cfg.Debug
	}
	if !flags.Changed("debug-all") {
		c.debugAll = cfg.DebugAll
	}
	if !flags.Changed("list") {
		c.list = cfg.List
	}
	return nil
}
