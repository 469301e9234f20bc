package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/differ"
	"github.com/lex00/wetwire-sls-go/internal/template"
	"github.com/lex00/wetwire-sls-go/internal/validation"
)

// defaultTemplate is where the framework writes the compiled update template.
const defaultTemplate = ".serverless/cloudformation-template-update-stack.json"

// newInjectCmd creates the "inject" subcommand that patches the compiled template.
func newInjectCmd() *cobra.Command {
	var opts hookOptions
	var templatePath, output string
	var lint bool

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Add log forwarding resources to the compiled template",
		Long: `Inject adds a subscription filter for every function and API Gateway log group,
forwarding them to the Serverless Dashboard log destination. Unless the service
sets custom.enterprise.logAccessIamRole to its own role, an IAM role granting the
platform read access to the log groups is added too.

The template is updated in place unless --output is given.

Examples:
    wetwire-sls inject
    wetwire-sls inject --template .serverless/cloudformation-template-update-stack.json --lint
    wetwire-sls inject --output patched.json --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd.Context(), cmd.OutOrStdout(), opts, templatePath, output, lint)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Compiled template (default: "+defaultTemplate+" next to the service)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the patched template here instead of in place")
	cmd.Flags().BoolVar(&lint, "lint", false, "Run cfn-lint on the patched template")

	return cmd
}

// runInject patches the template and reports the added resources.
func runInject(ctx context.Context, out io.Writer, opts hookOptions, templatePath, output string, lint bool) error {
	env, err := newRuntimeEnv()
	if err != nil {
		return err
	}
	defer env.close()

	d, err := newDeployment(ctx, env, opts, "", true)
	if err != nil {
		return err
	}

	if templatePath == "" {
		templatePath = filepath.Join(d.ServiceDir, defaultTemplate)
	}
	if output == "" {
		output = templatePath
	}

	t, err := template.Load(templatePath)
	if err != nil {
		return err
	}
	before, err := template.Clone(t)
	if err != nil {
		return err
	}

	injectResult := wetwire.InjectResult{Success: true}
	if _, err := d.Inject(ctx, t); err != nil {
		injectResult.Success = false
		injectResult.Errors = append(injectResult.Errors, err.Error())
		if outErr := outputInjectResult(out, injectResult, opts.format); outErr != nil {
			return outErr
		}
		return err
	}

	if err := template.Save(output, t); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}

	diff, err := differ.Compare(before, t, differ.Options{})
	if err != nil {
		return err
	}
	injectResult.Summary = diff.Summary
	injectResult.Added = diff.Diff.Added

	if lint {
		lintResult, err := validation.LintTemplate(t)
		if err != nil {
			return err
		}
		injectResult.Lint = lintResult.Issues()
	}

	return outputInjectResult(out, injectResult, opts.format)
}

func outputInjectResult(w io.Writer, result wetwire.InjectResult, format string) error {
	switch format {
	case "json":
		return printJSON(w, result)

	case "text":
		if !result.Success {
			fmt.Fprintln(w, "Inject FAILED:")
			for _, errMsg := range result.Errors {
				fmt.Fprintf(w, "  ERROR: %s\n", errMsg)
			}
			return nil
		}

		if len(result.Added) == 0 {
			fmt.Fprintln(w, "No resources added")
		} else {
			fmt.Fprintf(w, "Added %d resources:\n", len(result.Added))
			for _, entry := range result.Added {
				fmt.Fprintf(w, "  + %s (%s)\n", entry.Resource, entry.Type)
			}
		}
		if result.Summary.Modified > 0 {
			fmt.Fprintf(w, "Modified %d resources\n", result.Summary.Modified)
		}
		for _, issue := range result.Lint {
			fmt.Fprintf(w, "  LINT: %s\n", issue)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}
