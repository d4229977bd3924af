// audit_providers calls every provider once and prints a Markdown status table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dixieflatline76/Nekofetch/config"
	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/all"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

type result struct {
	ID      provider.ID
	URL     string
	Err     error
	Elapsed time.Duration
}

// audit fetches once from each id in parallel. Results keep the order of ids.
func audit(ctx context.Context, f imagefetch.Fetcher, ids []provider.ID, explicit bool, limit int) []result {
	results := make([]result, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range ids {
		g.Go(func() error {
			start := time.Now()
			img, err := f.FetchImage(ctx, id, explicit)
			results[i] = result{ID: id, URL: img.URL, Err: err, Elapsed: time.Since(start)}
			// One provider failing must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// checkParallel rejects limits errgroup would treat as blocking or unbounded.
func checkParallel(n int) error {
	if n < 1 {
		return fmt.Errorf("-parallel must be at least 1, got %d", n)
	}
	return nil
}

func printTable(w io.Writer, results []result) (failed int) {
	fmt.Fprintln(w, "Provider | Status | Time | URL / Error")
	fmt.Fprintln(w, "---|---|---|---")
	for _, r := range results {
		status, detail := "OK", r.URL
		if r.Err != nil {
			status, detail = "FAIL", r.Err.Error()
			failed++
		}
		fmt.Fprintf(w, "%s | %s | %s | %s\n", r.ID, status, r.Elapsed.Round(time.Millisecond), detail)
	}
	return failed
}

func main() {
	explicit := flag.Bool("explicit", false, "audit explicit endpoints")
	limit := flag.Int("parallel", 4, "maximum concurrent requests")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()
	if err := checkParallel(*limit); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	settings, err := config.NewSettingsLoader(config.SettingsPath()).Load()
	if err != nil {
		fmt.Printf("Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	client, err := imagefetch.NewDefaultClient(settings)
	if err != nil {
		fmt.Printf("Failed to build client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ids := client.Registry().ListProviders()
	fmt.Printf("Auditing %d providers (explicit=%t)...\n\n", len(ids), *explicit)
	results := audit(ctx, client, ids, *explicit, *limit)
	if failed := printTable(os.Stdout, results); failed > 0 {
		fmt.Printf("\n%d of %d providers failed\n", failed, len(results))
		os.Exit(1)
	}
}
