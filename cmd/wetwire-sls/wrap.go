package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-sls-go"
)

// newWrapCmd creates the "wrap" subcommand that generates handler wrappers.
func newWrapCmd() *cobra.Command {
	var opts hookOptions
	var output, sdkDir string
	var verify bool

	cmd := &cobra.Command{
		Use:   "wrap",
		Short: "Generate handler wrappers for every supported function",
		Long: `Wrap rewrites each function's handler to a generated wrapper that runs the
user's handler through the monitoring SDK.

Wrappers are written next to the service declaration (s_<function>.js or .py), the
SDK is staged into serverless_sdk/, and the updated declaration is written to
--output. A run state file records what was written so "wetwire-sls clean" can
remove it.

Examples:
    wetwire-sls wrap
    wetwire-sls wrap --service serverless.yml --stage prod --sdk-dir ./sdk
    wetwire-sls wrap --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrap(cmd.Context(), cmd.OutOrStdout(), opts, output, sdkDir, verify)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Updated service declaration (default: .serverless/serverless.wrapped.yml)")
	cmd.Flags().StringVar(&sdkDir, "sdk-dir", "", "Directory holding the monitoring SDK (default: WETWIRE_SLS_SDK_DIR)")
	cmd.Flags().BoolVar(&verify, "verify-handlers", false, "Generate failing wrappers for handler modules that do not exist")

	return cmd
}

// runWrap generates the wrappers and reports the records.
func runWrap(ctx context.Context, out io.Writer, opts hookOptions, output, sdkDir string, verify bool) error {
	env, err := newRuntimeEnv()
	if err != nil {
		return err
	}
	defer env.close()

	d, err := newDeployment(ctx, env, opts, sdkDir, false)
	if err != nil {
		return err
	}
	d.VerifyHandlers = verify
	d.Output = output
	if d.Output == "" {
		d.Output = filepath.Join(d.ServiceDir, ".serverless", "serverless.wrapped.yml")
	}

	result, wrapErr := d.Wrap(ctx)

	wrapResult := wetwire.WrapResult{Success: wrapErr == nil}
	if wrapErr != nil {
		wrapResult.Errors = append(wrapResult.Errors, wrapErr.Error())
	} else if result != nil {
		wrapResult.Functions = result.Records
		wrapResult.Skipped = result.Skipped
		wrapResult.Written = result.Written
	}

	if err := outputWrapResult(out, wrapResult, opts.format); err != nil {
		return err
	}
	return wrapErr
}

func outputWrapResult(w io.Writer, result wetwire.WrapResult, format string) error {
	switch format {
	case "json":
		return printJSON(w, result)

	case "text":
		if !result.Success {
			fmt.Fprintln(w, "Wrap FAILED:")
			for _, errMsg := range result.Errors {
				fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
			}
			return nil
		}

		keys := make([]string, 0, len(result.Functions))
		for key := range result.Functions {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Fprintf(w, "Wrapped %d functions\n", len(keys))
		for _, key := range keys {
			record := result.Functions[key]
			fmt.Fprintf(w, "  %s: %s.%s -> %s (%s)\n", key, record.EntryOrig, record.HandlerOrig, record.Handler(), record.Runtime)
		}
		for _, key := range result.Skipped {
			fmt.Fprintf(w, "  %s: skipped\n", key)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
