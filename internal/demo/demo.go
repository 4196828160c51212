// Package demo wires a small order-pricing graph used by the bindctl
// commands. It exists so the demo, serve, and bench commands exercise
// one shared shape instead of three ad-hoc ones.
package demo

import (
	"fmt"
	"time"

	"github.com/vango-dev/bind/pkg/bind"
	"github.com/vango-dev/bind/pkg/debounce"
	"github.com/vango-dev/bind/pkg/inspect"
	"github.com/vango-dev/bind/pkg/interp"
	"github.com/vango-dev/bind/pkg/snapshot"
)

// Capacity is the stock limit the fill gauge is measured against.
const Capacity = 10

// SearchWait is the settle window for the debounced search field.
const SearchWait = 300 * time.Millisecond

// Order is a reactive pricing graph: four writable inputs, derived
// money values, a fill gauge with a color ramp, and a debounced search
// field. All inputs carry persist keys and are tracked in Registry.
type Order struct {
	Quantity  *bind.Source[int]
	UnitPrice *bind.Source[float64]
	TaxRate   *bind.Source[float64]
	Coupon    *bind.Source[string]

	Subtotal bind.Container[float64]
	Discount bind.Container[float64]
	Total    bind.Container[float64]
	Summary  bind.Container[string]

	Fill      bind.Container[float64]
	FillColor bind.Container[interp.Color]

	Search *debounce.State[string]

	Registry *snapshot.Registry
}

// NewOrder builds the graph with one widget in the cart.
func NewOrder(opts ...debounce.Option) *Order {
	o := &Order{
		Quantity:  bind.NewSource(1, bind.PersistKey("order.quantity")),
		UnitPrice: bind.NewSource(9.99, bind.PersistKey("order.unit_price")),
		TaxRate:   bind.NewSource(0.08, bind.PersistKey("order.tax_rate")),
		Coupon:    bind.NewSource("", bind.PersistKey("order.coupon")),
	}

	o.Subtotal = bind.Compose2(o.Quantity, o.UnitPrice, func(q int, p float64) float64 {
		return float64(q) * p
	})
	o.Discount = bind.Map(o.Coupon, discountFor)
	o.Total = bind.Compose3(o.Subtotal, o.Discount, o.TaxRate, func(sub, disc, tax float64) float64 {
		return sub * (1 - disc) * (1 + tax)
	})
	o.Summary = bind.Compose2(o.Quantity, o.Total, func(q int, t float64) string {
		return fmt.Sprintf("%d units, $%.2f total", q, t)
	})

	o.Fill = bind.Map(o.Quantity, func(q int) float64 {
		return interp.Clamp01(float64(q) / Capacity)
	})
	o.FillColor = interp.BindColor(o.Fill, interp.Green, interp.Red)

	o.Search = debounce.NewState("", SearchWait, opts...)

	o.Registry = snapshot.NewRegistry()
	_ = snapshot.Track(o.Registry, o.Quantity)
	_ = snapshot.Track(o.Registry, o.UnitPrice)
	_ = snapshot.Track(o.Registry, o.TaxRate)
	_ = snapshot.Track(o.Registry, o.Coupon)

	return o
}

// discountFor maps a coupon code to a discount fraction.
func discountFor(code string) float64 {
	switch code {
	case "SAVE10":
		return 0.10
	case "SAVE25":
		return 0.25
	default:
		return 0
	}
}

// RegisterInspect exposes the graph's values on an inspector.
func (o *Order) RegisterInspect(ins *inspect.Inspector) {
	inspect.Register(ins, "order.quantity", o.Quantity)
	inspect.Register(ins, "order.unit_price", o.UnitPrice)
	inspect.Register(ins, "order.tax_rate", o.TaxRate)
	inspect.Register(ins, "order.coupon", o.Coupon)
	inspect.Register(ins, "order.subtotal", o.Subtotal)
	inspect.Register(ins, "order.discount", o.Discount)
	inspect.Register(ins, "order.total", o.Total)
	inspect.Register(ins, "order.summary", o.Summary)
	inspect.Register(ins, "order.fill", o.Fill)
	inspect.Register(ins, "order.fill_color", bind.Map(o.FillColor, interp.Color.String))
	inspect.Register(ins, "order.search", o.Search.Container())
	inspect.Register(ins, "order.capacity", bind.Const(Capacity))
}

// Close cancels the pending search settle, if any.
func (o *Order) Close() {
	o.Search.Cancel()
}
