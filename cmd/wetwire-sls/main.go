// Command wetwire-sls instruments Serverless Framework services for the Serverless
// Dashboard.
//
// Usage:
//
//	wetwire-sls wrap                 Generate handler wrappers before packaging
//	wetwire-sls inject               Add log forwarding resources to the compiled template
//	wetwire-sls clean                Remove generated wrappers and the staged SDK
//	wetwire-sls diff a.json b.json   Compare two templates
//	wetwire-sls version              Show version
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-sls-go/internal/service"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var cfgErr *service.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Serverless Dashboard: %s\n", cfgErr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wetwire-sls",
		Short: "Instrument Serverless Framework services for the Serverless Dashboard",
		Long: `wetwire-sls instruments Serverless Framework services for the Serverless Dashboard.

Run it from the framework's deploy hooks:

    wetwire-sls wrap     before package:createDeploymentArtifacts
    wetwire-sls inject   after package:compileEvents
    wetwire-sls clean    after deploy, or when the deploy failed

Settings are read from the environment (SERVERLESS_ACCESS_KEY, SERVERLESS_PLATFORM_URL,
WETWIRE_SLS_SDK_DIR, WETWIRE_SLS_LOG_LEVEL, ...); flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newWrapCmd(),
		newInjectCmd(),
		newCleanCmd(),
		newDiffCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wetwire-sls %s\n", getVersion())
		},
	}
}
