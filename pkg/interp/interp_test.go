package interp

import (
	"testing"

	"github.com/vango-dev/bind/pkg/bind"
)

func TestLerp(t *testing.T) {
	cases := []struct {
		from, to, alpha, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{0, 10, 1.5, 15}, // unclamped extrapolation
		{10, 0, 0.25, 7.5},
		{-10, 10, 0.5, 0},
	}
	for _, tc := range cases {
		if got := Lerp(tc.from, tc.to, tc.alpha); got != tc.want {
			t.Errorf("Lerp(%v, %v, %v): expected %v, got %v",
				tc.from, tc.to, tc.alpha, tc.want, got)
		}
	}
}

func TestInverseLerp(t *testing.T) {
	if got := InverseLerp(0, 10, 5); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := InverseLerp(10, 20, 10); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := InverseLerp(5, 5, 99); got != 0 {
		t.Errorf("expected degenerate range to map to 0, got %v", got)
	}
}

func TestMapRange(t *testing.T) {
	if got := MapRange(5, 0, 10, 100, 200); got != 150 {
		t.Errorf("expected 150, got %v", got)
	}
	// Unclamped: input outside the range extrapolates.
	if got := MapRange(15, 0, 10, 0, 100); got != 150 {
		t.Errorf("expected 150, got %v", got)
	}
	if got := MapRange(5, 10, 0, 0, 100); got != 50 {
		t.Errorf("expected reversed input range to work, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if got := Clamp01(0.5); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
}

func TestColorChannels(t *testing.T) {
	c := ARGB(0xFF, 0x80, 0x40, 0x20)
	if c != 0xFF804020 {
		t.Fatalf("expected packed 0xFF804020, got %08X", uint32(c))
	}
	if c.A() != 0xFF || c.R() != 0x80 || c.G() != 0x40 || c.B() != 0x20 {
		t.Errorf("expected channels FF/80/40/20, got %02X/%02X/%02X/%02X",
			c.A(), c.R(), c.G(), c.B())
	}
	if c.String() != "#FF804020" {
		t.Errorf("expected #FF804020, got %s", c.String())
	}
}

func TestLerpColor(t *testing.T) {
	mid := LerpColor(Black, White, 0.5)
	if mid != 0xFF808080 {
		t.Errorf("expected mid grey FF808080, got %08X", uint32(mid))
	}
	if got := LerpColor(Red, Blue, 0); got != Red {
		t.Errorf("expected endpoint from at alpha 0, got %08X", uint32(got))
	}
	if got := LerpColor(Red, Blue, 1); got != Blue {
		t.Errorf("expected endpoint to at alpha 1, got %08X", uint32(got))
	}
	// Extrapolation clamps per channel instead of wrapping.
	if got := LerpColor(Black, White, 2); got != White {
		t.Errorf("expected channel clamp at white, got %08X", uint32(got))
	}
	if got := Black.Lerp(White, 0.5); got != mid {
		t.Errorf("expected method form to match LerpColor, got %08X", uint32(got))
	}
}

func TestFade(t *testing.T) {
	half := Fade(White, 0.5)
	if half != 0x80FFFFFF {
		t.Errorf("expected 80FFFFFF, got %08X", uint32(half))
	}
	// Fading twice composes.
	if got := Fade(half, 0.5); got != 0x40FFFFFF {
		t.Errorf("expected 40FFFFFF, got %08X", uint32(got))
	}
	if got := Fade(White, 2); got != White {
		t.Errorf("expected opacity clamp to leave color unchanged, got %08X", uint32(got))
	}
	if got := White.WithAlpha(0); got != 0x00FFFFFF {
		t.Errorf("expected 00FFFFFF, got %08X", uint32(got))
	}
}

func TestBindTracksAlpha(t *testing.T) {
	alpha := bind.NewSource(0.0)
	c := Bind(alpha, 0, 100)

	if c.Get() != 0 {
		t.Errorf("expected initial 0, got %v", c.Get())
	}
	alpha.Set(0.25)
	if c.Get() != 25 {
		t.Errorf("expected 25, got %v", c.Get())
	}
	alpha.Set(1)
	if c.Get() != 100 {
		t.Errorf("expected 100, got %v", c.Get())
	}
}

func TestBindPlainAlphaIsConstant(t *testing.T) {
	c := Bind(0.5, 0, 10)
	if c.Get() != 5 {
		t.Errorf("expected 5, got %v", c.Get())
	}
	if !bind.IsConstant(c) {
		t.Error("expected plain alpha to produce a constant container")
	}
}

func TestBindColorAndFade(t *testing.T) {
	alpha := bind.NewSource(0.0)
	c := BindColor(alpha, Black, White)
	if c.Get() != Black {
		t.Errorf("expected black, got %v", c.Get())
	}
	alpha.Set(1)
	if c.Get() != White {
		t.Errorf("expected white, got %v", c.Get())
	}

	opacity := bind.NewSource(1.0)
	f := BindFade(opacity, White)
	opacity.Set(0.5)
	if f.Get() != 0x80FFFFFF {
		t.Errorf("expected 80FFFFFF, got %08X", uint32(f.Get()))
	}
}

func TestBindLerper(t *testing.T) {
	alpha := bind.NewSource(0.5)
	c := BindLerper(alpha, Black, White)
	if c.Get() != 0xFF808080 {
		t.Errorf("expected mid grey, got %08X", uint32(c.Get()))
	}
}
