package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/cineticket/portal/internal/infrastructure/probe"
	"github.com/cineticket/portal/internal/pkg/config"
)

var errBackendsUnreachable = errors.New("one or more backends are unreachable")

func newCheckBackendsCommand() *cobra.Command {
	var (
		authURL string
		apiURL  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check-backends",
		Short: "Probe the auth backend and the cinema API",
		Long: `Probe the health and test routes of the auth backend and the cinema API
concurrently. Any HTTP answer counts as reachable; the command fails when a
target cannot be reached at all.

Example:
  portal check-backends --auth-url http://localhost:8080/auth --api-url http://localhost:8081/api`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(cmd.Context(), envconfig.OsLookuper())
			if err != nil {
				return err
			}
			if authURL == "" {
				authURL = cfg.Backend.AuthURL
			}
			if apiURL == "" {
				apiURL = cfg.Backend.APIURL
			}

			targets, err := probe.DefaultTargets(authURL, apiURL)
			if err != nil {
				return err
			}

			results := probe.Run(cmd.Context(), &http.Client{Timeout: timeout}, targets)
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintln(out, r.String())
			}
			if !probe.AllReachable(results) {
				return errBackendsUnreachable
			}
			fmt.Fprintln(out, "all backends reachable")
			return nil
		},
	}
	cmd.Flags().StringVar(&authURL, "auth-url", "", "Auth backend base URL (default $AUTH_URL)")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Cinema API base URL (default $API_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Per-target timeout")
	return cmd
}
