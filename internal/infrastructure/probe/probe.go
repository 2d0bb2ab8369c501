// Package probe checks that the platform backends answer HTTP at all.
// Any response, whatever its status, counts as reachable.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 5 * time.Second

// Target is one URL to probe.
type Target struct {
	Name string
	URL  string
}

// Result is the outcome of probing a Target.
type Result struct {
	Target  Target
	Status  int
	Err     error
	Elapsed time.Duration
}

// Reachable reports whether the target answered.
func (r Result) Reachable() bool {
	return r.Err == nil
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("FAIL %s: %v", r.Target.Name, r.Err)
	}
	return fmt.Sprintf("OK   %s: status %d %s (%s)", r.Target.Name, r.Status, http.StatusText(r.Status), r.Elapsed.Round(time.Millisecond))
}

// DefaultTargets returns the health and route probes for the auth backend
// and the cinema API.
func DefaultTargets(authURL, apiURL string) ([]Target, error) {
	authRoot, err := origin(authURL)
	if err != nil {
		return nil, fmt.Errorf("auth url: %w", err)
	}
	apiRoot, err := origin(apiURL)
	if err != nil {
		return nil, fmt.Errorf("api url: %w", err)
	}
	return []Target{
		{Name: "auth backend health", URL: authRoot + "/actuator/health"},
		{Name: "cinema api health", URL: apiRoot + "/actuator/health"},
		{Name: "auth route", URL: strings.TrimRight(authURL, "/") + "/test"},
		{Name: "api route", URL: strings.TrimRight(apiURL, "/") + "/test"},
	}, nil
}

func origin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute url", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Run probes all targets concurrently. Results keep the order of targets.
func Run(ctx context.Context, client *http.Client, targets []Target) []Result {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	results := make([]Result, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			results[i] = probeOne(ctx, client, target)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func probeOne(ctx context.Context, client *http.Client, target Target) Result {
	res := Result{Target: target}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	resp.Body.Close()
	res.Status = resp.StatusCode
	return res
}

// AllReachable reports whether every result answered.
func AllReachable(results []Result) bool {
	for _, r := range results {
		if !r.Reachable() {
			return false
		}
	}
	return true
}
