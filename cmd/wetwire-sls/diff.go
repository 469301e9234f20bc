package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/differ"
)

// newDiffCmd creates the "diff" subcommand for comparing templates.
func newDiffCmd() *cobra.Command {
	var outputFormat string
	var ignoreOrder bool

	cmd := &cobra.Command{
		Use:   "diff <template1> <template2>",
		Short: "Compare two CloudFormation templates",
		Long: `Diff compares two templates resource by resource and reports what was added,
removed or modified. Templates may be JSON or YAML.

Examples:
    wetwire-sls diff before.json .serverless/cloudformation-template-update-stack.json
    wetwire-sls diff a.yaml b.yaml --ignore-order --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.OutOrStdout(), args[0], args[1], outputFormat, ignoreOrder)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order")

	return cmd
}

func runDiff(out io.Writer, file1, file2, format string, ignoreOrder bool) error {
	result, err := differ.CompareFiles(file1, file2, differ.Options{IgnoreOrder: ignoreOrder})
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return printJSON(out, struct {
			wetwire.TemplateDiff
			Summary wetwire.DiffSummary `json:"summary"`
			Outputs []string            `json:"outputs,omitempty"`
		}{result.Diff, result.Summary, result.Outputs})

	case "text":
		if result.Summary.Total == 0 && len(result.Outputs) == 0 {
			fmt.Fprintln(out, "Templates are identical")
			return nil
		}
		for _, entry := range result.Diff.Added {
			fmt.Fprintf(out, "+ %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Removed {
			fmt.Fprintf(out, "- %s (%s)\n", entry.Resource, entry.Type)
		}
		for _, entry := range result.Diff.Modified {
			fmt.Fprintf(out, "~ %s (%s)\n", entry.Resource, entry.Type)
			for _, change := range entry.Changes {
				fmt.Fprintf(out, "    %s\n", change)
			}
		}
		for _, change := range result.Outputs {
			fmt.Fprintf(out, "~ output %s\n", change)
		}
		fmt.Fprintf(out, "\nSummary: %d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
