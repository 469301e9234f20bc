package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/deploy"
)

// newCleanCmd creates the "clean" subcommand that removes generated files.
func newCleanCmd() *cobra.Command {
	var opts hookOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated wrappers and the staged SDK",
		Long: `Clean removes every file the last "wetwire-sls wrap" wrote for the service,
as recorded in its run state file, and then removes the state file.

Running clean twice, or without a prior wrap, is not an error.

Examples:
    wetwire-sls clean
    wetwire-sls clean --service services/api/serverless.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	opts.register(cmd)

	return cmd
}

// runClean removes the generated files recorded in the run state.
func runClean(ctx context.Context, out io.Writer, opts hookOptions) error {
	env, err := newRuntimeEnv()
	if err != nil {
		return err
	}
	defer env.close()

	statePath, err := opts.statePath(env.cfg)
	if err != nil {
		return err
	}

	d := &deploy.Deployment{
		StatePath: statePath,
		Logger:    env.logger,
	}

	removed, cleanErr := d.Clean(ctx)
	cleanResult := wetwire.CleanResult{
		Success: cleanErr == nil,
		Removed: removed,
	}
	if cleanErr != nil {
		cleanResult.Errors = append(cleanResult.Errors, cleanErr.Error())
	}

	if err := outputCleanResult(out, cleanResult, opts.format); err != nil {
		return err
	}
	return cleanErr
}

func outputCleanResult(w io.Writer, result wetwire.CleanResult, format string) error {
	switch format {
	case "json":
		return printJSON(w, result)

	case "text":
		if !result.Success {
			fmt.Fprintln(w, "Clean FAILED:")
			for _, errMsg := range result.Errors {
				fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
			}
			return nil
		}
		if len(result.Removed) == 0 {
			fmt.Fprintln(w, "Nothing to clean")
			return nil
		}
		fmt.Fprintf(w, "Removed %d files\n", len(result.Removed))
		for _, path := range result.Removed {
			fmt.Fprintf(w, "  - %s\n", path)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
