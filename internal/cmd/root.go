// Package cmd holds the portal command line: the web server and the backend
// connectivity check.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the portal command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "portal",
		Short: "Cinema ticketing web portal",
		Long: `portal serves the cinema ticketing front end. It keeps one session per
browser, gates the checkout and back-office pages, and forwards catalog and
payment calls to the platform backends with the session's bearer token.`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newCheckBackendsCommand())
	return root
}

// ExecuteContext runs the command tree with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
