package bind

// IntSource wraps Source[int] with convenience methods for integer operations.
type IntSource struct {
	*Source[int]
}

// NewIntSource creates a new IntSource with the given initial value.
func NewIntSource(initial int, opts ...SourceOption) *IntSource {
	return &IntSource{NewSource(initial, opts...)}
}

// Inc increments the value by 1.
func (s *IntSource) Inc() {
	s.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (s *IntSource) Dec() {
	s.Update(func(n int) int { return n - 1 })
}

// Add adds the given value.
func (s *IntSource) Add(n int) {
	s.Update(func(v int) int { return v + n })
}

// Sub subtracts the given value.
func (s *IntSource) Sub(n int) {
	s.Update(func(v int) int { return v - n })
}

// Float64Source wraps Source[float64] with convenience methods.
type Float64Source struct {
	*Source[float64]
}

// NewFloat64Source creates a new Float64Source with the given initial value.
func NewFloat64Source(initial float64, opts ...SourceOption) *Float64Source {
	return &Float64Source{NewSource(initial, opts...)}
}

// Add adds the given value.
func (s *Float64Source) Add(n float64) {
	s.Update(func(v float64) float64 { return v + n })
}

// Scale multiplies by the given factor.
func (s *Float64Source) Scale(f float64) {
	s.Update(func(v float64) float64 { return v * f })
}

// BoolSource wraps Source[bool] with convenience methods.
type BoolSource struct {
	*Source[bool]
}

// NewBoolSource creates a new BoolSource with the given initial value.
func NewBoolSource(initial bool, opts ...SourceOption) *BoolSource {
	return &BoolSource{NewSource(initial, opts...)}
}

// Toggle flips the value.
func (s *BoolSource) Toggle() {
	s.Update(func(v bool) bool { return !v })
}

// StringSource wraps Source[string] with convenience methods.
type StringSource struct {
	*Source[string]
}

// NewStringSource creates a new StringSource with the given initial value.
func NewStringSource(initial string, opts ...SourceOption) *StringSource {
	return &StringSource{NewSource(initial, opts...)}
}

// Append concatenates suffix onto the current value.
func (s *StringSource) Append(suffix string) {
	s.Update(func(v string) string { return v + suffix })
}

// Clear resets the value to the empty string.
func (s *StringSource) Clear() {
	s.Set("")
}
