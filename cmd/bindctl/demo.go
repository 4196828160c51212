package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/bind/internal/demo"
	"github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/snapshot"
)

func demoCmd() *cobra.Command {
	var (
		stateDir string
		fresh    bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of the binding graph",
		Long: `Run a scripted walkthrough of the order-pricing graph.

Each step mutates an input and shows how the composed total
recomputes: single updates fire once, batched updates coalesce,
and the debounced search field settles after its quiet window.
State is persisted and restored across runs.

Examples:
  bindctl demo
  bindctl demo --fresh
  bindctl demo --state=/tmp/bindctl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(stateDir, fresh)
		},
	}

	cmd.Flags().StringVar(&stateDir, "state", ".bindctl", "Directory for persisted state")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore previously saved state")

	return cmd
}

func runDemo(stateDir string, fresh bool) error {
	printBanner()
	fmt.Println("  demo")
	fmt.Println()

	o := demo.NewOrder()
	defer o.Close()

	ctx := context.Background()
	store, err := snapshot.NewDiskStore(stateDir)
	if err != nil {
		return err
	}

	if !fresh {
		switch err := o.Registry.Load(ctx, store, "order"); {
		case err == nil:
			success("Restored saved state")
		case errors.Is(err, snapshot.ErrNotFound):
			info("No saved state, starting with defaults")
		default:
			warn("Could not restore state: %s", err)
		}
	}

	stopSummary := o.Summary.Watch(func(s string) {
		info("recomputed: %s", s)
	})
	defer stopSummary()
	stopSearch := o.Search.Watch(func(q string) {
		info("search settled: %q", q)
	})
	defer stopSearch()

	info("current: %s", o.Summary.Get())
	fmt.Println()

	qty := o.Quantity.Get() + 2
	info("Setting quantity to %d (one input, one recompute)", qty)
	o.Quantity.Set(qty)
	fmt.Println()

	coupon := "SAVE10"
	if o.Coupon.Get() == "SAVE10" {
		coupon = "SAVE25"
	}
	price := o.UnitPrice.Get() + 1.25
	info("Applying price %.2f and coupon %s in one batch (one recompute)", price, coupon)
	bind.Batch(func() {
		o.UnitPrice.Set(price)
		o.Coupon.Set(coupon)
	})
	fmt.Println()

	info("Typing into search, settle window %s", demo.SearchWait)
	for _, q := range []string{"w", "wi", "widget"} {
		o.Search.Set(q)
		time.Sleep(demo.SearchWait / 3)
	}
	time.Sleep(demo.SearchWait + 100*time.Millisecond)
	fmt.Println()

	info("Flushing an edit without waiting")
	o.Search.Set("widgets")
	o.Search.Flush()
	fmt.Println()

	if err := o.Registry.Save(ctx, store, "order"); err != nil {
		return err
	}
	success("State saved under %s", stateDir)
	return nil
}
