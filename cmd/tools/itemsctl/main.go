// Command itemsctl is a command-line client for the items API.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// .env is optional for the client.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	addr     string
	jsonMode bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "itemsctl",
		Short: "itemsctl - manage items through the items API",
		Long: `itemsctl talks to a running items API server.

The server address defaults to $ITEMS_ADDR, then http://localhost:8080.

Examples:
  itemsctl list
  itemsctl add popsicle 1.45
  itemsctl update popsicle --name "new popsicle"
  itemsctl delete "new popsicle"`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetVersionTemplate("itemsctl version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.addr, "addr", defaultAddr(), "items API base URL")
	cmd.PersistentFlags().BoolVar(&opts.jsonMode, "json", false, "print raw JSON even on a terminal")

	cmd.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newAddCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

func defaultAddr() string {
	if addr := strings.TrimSpace(os.Getenv("ITEMS_ADDR")); addr != "" {
		return addr
	}
	return "http://localhost:8080"
}
