package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/bind/pkg/bind"
)

// benchProfile sizes the composed graph and the update load.
type benchProfile struct {
	Name      string
	Sources   int
	Watchers  int
	Updates   int
	BatchSize int
}

var benchProfiles = map[string]benchProfile{
	"fast": {
		Name:      "fast",
		Sources:   64,
		Watchers:  16,
		Updates:   100_000,
		BatchSize: 1,
	},
	"standard": {
		Name:      "standard",
		Sources:   256,
		Watchers:  64,
		Updates:   500_000,
		BatchSize: 8,
	},
	"stress": {
		Name:      "stress",
		Sources:   1024,
		Watchers:  256,
		Updates:   2_000_000,
		BatchSize: 32,
	},
}

type benchResult struct {
	Profile       string  `json:"profile"`
	Sources       int     `json:"sources"`
	Watchers      int     `json:"watchers"`
	Updates       int     `json:"updates"`
	BatchSize     int     `json:"batch_size"`
	TotalFires    int     `json:"total_fires"`
	WatcherFires  int     `json:"watcher_fires"`
	DurationMS    float64 `json:"duration_ms"`
	UpdatesPerSec float64 `json:"updates_per_sec"`
}

func benchCmd() *cobra.Command {
	var (
		profileName string
		updates     int
		jsonOutput  string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark propagation throughput",
		Long: `Benchmark update propagation through a composed graph.

Builds N sources joined pairwise into sums and composed into one
grand total, attaches watchers, then drives updates through it and
reports throughput. Batched profiles group updates so the total
recomputes once per group.

Profiles:
  fast      64 sources, 100k updates, unbatched
  standard  256 sources, 500k updates, batches of 8
  stress    1024 sources, 2M updates, batches of 32

Examples:
  bindctl bench
  bindctl bench --profile=stress
  bindctl bench --updates=50000 --json=result.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := benchProfiles[profileName]
			if !ok {
				names := make([]string, 0, len(benchProfiles))
				for name := range benchProfiles {
					names = append(names, name)
				}
				sort.Strings(names)
				return fmt.Errorf("unknown profile %q (have: %s)", profileName, strings.Join(names, ", "))
			}
			if updates > 0 {
				p.Updates = updates
			}
			return runBench(p, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "fast", "Load profile: fast, standard, stress")
	cmd.Flags().IntVarP(&updates, "updates", "n", 0, "Override the profile's update count")
	cmd.Flags().StringVar(&jsonOutput, "json", "", "Write results to a JSON file")

	return cmd
}

func runBench(p benchProfile, jsonOutput string) error {
	printBanner()
	fmt.Println("  bench")
	fmt.Println()
	info("profile %s: %d sources, %d watchers, %d updates, batch %d",
		p.Name, p.Sources, p.Watchers, p.Updates, p.BatchSize)

	sources := make([]*bind.Source[int], p.Sources)
	for i := range sources {
		sources[i] = bind.NewSource(i)
	}

	// Pairwise sums, then one grand total over all of them.
	mids := make([]any, 0, p.Sources/2)
	for i := 0; i+1 < p.Sources; i += 2 {
		mids = append(mids, bind.Compose2(sources[i], sources[i+1], func(a, b int) int {
			return a + b
		}))
	}
	total := bind.Compose(func(vals []any) int {
		sum := 0
		for _, v := range vals {
			sum += v.(int)
		}
		return sum
	}, mids...)

	totalFires := 0
	stopTotal := total.Watch(func(int) { totalFires++ })
	defer stopTotal()

	watcherFires := 0
	for i := 0; i < p.Watchers; i++ {
		mid := mids[i%len(mids)].(bind.Container[int])
		stop := mid.Watch(func(int) { watcherFires++ })
		defer stop()
	}

	start := time.Now()
	next := p.Sources // distinct from every initial value
	if p.BatchSize <= 1 {
		for i := 0; i < p.Updates; i++ {
			sources[i%p.Sources].Set(next)
			next++
		}
	} else {
		for done := 0; done < p.Updates; {
			n := p.BatchSize
			if rem := p.Updates - done; rem < n {
				n = rem
			}
			base := done
			bind.Batch(func() {
				for j := 0; j < n; j++ {
					sources[(base+j)%p.Sources].Set(next)
					next++
				}
			})
			done += n
		}
	}
	elapsed := time.Since(start)

	result := benchResult{
		Profile:       p.Name,
		Sources:       p.Sources,
		Watchers:      p.Watchers,
		Updates:       p.Updates,
		BatchSize:     p.BatchSize,
		TotalFires:    totalFires,
		WatcherFires:  watcherFires,
		DurationMS:    float64(elapsed.Microseconds()) / 1000,
		UpdatesPerSec: float64(p.Updates) / elapsed.Seconds(),
	}

	fmt.Println()
	success("%d updates in %s", result.Updates, elapsed.Round(time.Millisecond))
	info("throughput   %.0f updates/sec", result.UpdatesPerSec)
	info("total fired  %d times", result.TotalFires)
	info("watchers     %d fires", result.WatcherFires)

	if jsonOutput != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonOutput, data, 0o644); err != nil {
			return err
		}
		success("Results written to %s", jsonOutput)
	}
	return nil
}
