// Command maudtest runs the tests registered with the default registry: the example suites
// of this package, or those of any program that links it in.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maud-build/maudtest/framework"
)

var errTestsFailed = errors.New("some tests failed")

func main() {
	cmd := newRootCmd(framework.Default, os.Stdout)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(registry *framework.Registry, out io.Writer) *cobra.Command {
	var params commandParams

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registered tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := params.resolve(cmd); err != nil {
				return err
			}
			return runTests(registry, params, cmd.OutOrStdout(), cmd.Root().Name())
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered tests without running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := params.resolve(cmd); err != nil {
				return err
			}
			listTests(registry, params.filters, cmd.OutOrStdout())
			return nil
		},
	}

	root := &cobra.Command{
		Use:           "maudtest",
		Short:         "Run parameterized tests outside of go test",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := params.resolve(cmd); err != nil {
				return err
			}
			if params.list {
				listTests(registry, params.filters, cmd.OutOrStdout())
				return nil
			}
			return runTests(registry, params, cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
	params.bind(root)
	root.AddCommand(runCmd, listCmd)
	root.SetOut(out)
	return root
}

func runTests(registry *framework.Registry, params commandParams, out io.Writer, program string) error {
	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
		Program:              program,
	}

	results := registry.RunAll(params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if !results.OK() {
		return errTestsFailed
	}
	return nil
}

func listTests(registry *framework.Registry, filters framework.Filters, out io.Writer) {
	for _, info := range registry.Tests() {
		if !filters.AsFilter(info.ID()) {
			continue
		}
		fmt.Fprintf(out, "%s\t%s:%d\n", info.ID(), filepath.Base(info.File), info.Line)
	}
}
