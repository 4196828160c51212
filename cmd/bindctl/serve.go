package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/bind/internal/demo"
	"github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/debounce"
	"github.com/vango-dev/bind/pkg/inspect"
	"github.com/vango-dev/bind/pkg/metrics"
	"github.com/vango-dev/bind/pkg/snapshot"
	"github.com/vango-dev/bind/pkg/tracing"
)

func serveCmd() *cobra.Command {
	var (
		addr     string
		interval time.Duration
		stateDir string
		drive    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live inspector for the demo graph",
		Long: `Serve the demo graph with a live inspector.

Routes:
  GET /         live value table (WebSocket push)
  GET /values   current values as JSON
  GET /ws       value frames for your own tooling
  GET /metrics  Prometheus metrics

Changes are pushed to connected browsers, coalesced through the
configured window. State is autosaved and restored across runs.

Examples:
  bindctl serve
  bindctl serve --addr=:9000 --interval=250ms
  bindctl serve --drive=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, interval, stateDir, drive)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8090", "Address to listen on")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "Push coalescing window")
	cmd.Flags().StringVar(&stateDir, "state", ".bindctl", "Directory for persisted state")
	cmd.Flags().BoolVar(&drive, "drive", true, "Mutate the graph periodically so the page moves")

	return cmd
}

func runServe(addr string, interval time.Duration, stateDir string, drive bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	m := metrics.New()
	o := demo.NewOrder(debounce.WithObserver(m.DebounceObserver("demo.search")))
	defer o.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	disk, err := snapshot.NewDiskStore(stateDir)
	if err != nil {
		return err
	}
	store := tracing.Store(m.Store("disk", disk))

	if err := o.Registry.Load(ctx, store, "order"); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		warn("Could not restore state: %s", err)
	}
	stopSave := o.Registry.AutoSave(ctx, store, "order", 2*time.Second, snapshot.WithLogger(logger))
	defer stopSave()

	ins := inspect.New(inspect.WithLogger(logger), inspect.WithDebounce(interval))
	defer ins.Close()
	o.RegisterInspect(ins)

	m.Gauge("demo_order_total", "Current order total in dollars.", o.Total)
	m.Gauge("demo_order_fill", "Stock gauge fill fraction.", o.Fill)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", ins.Handler())

	srv := &http.Server{Addr: addr, Handler: r}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		shutCtx, done := context.WithTimeout(context.Background(), 3*time.Second)
		defer done()
		srv.Shutdown(shutCtx)
	}()

	if drive {
		go driveGraph(ctx, o)
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("Listening on %s", addr)
	info("inspector /   values /values   metrics /metrics")
	fmt.Println()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// driveGraph mutates the order periodically so connected inspectors
// have something to watch.
func driveGraph(ctx context.Context, o *demo.Order) {
	ticker := time.NewTicker(700 * time.Millisecond)
	defer ticker.Stop()

	coupons := []string{"", "SAVE10", "SAVE25"}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bind.Batch(func() {
				o.Quantity.Set(1 + rand.IntN(demo.Capacity))
				if rand.IntN(4) == 0 {
					o.Coupon.Set(coupons[rand.IntN(len(coupons))])
				}
			})
		}
	}
}
