package bind

// Join lifts every input and produces a single container whose value is the
// ordered tuple of all input values. The tuple is rebuilt whenever any
// reactive input updates; inputs updated together in one Batch produce a
// single rebuild that observes all of them fully updated. With no reactive
// inputs the result is a constant tuple.
//
// The returned slice is freshly allocated per computation; callers may keep
// it without copying.
func Join(inputs ...any) Container[[]any] {
	sources := make([]anyContainer, len(inputs))
	for i, in := range inputs {
		sources[i] = liftAny(in)
	}

	return newDerived(sources, func() []any {
		tuple := make([]any, len(sources))
		for i, src := range sources {
			tuple[i] = src.getAny()
		}
		return tuple
	})
}

// Compose combines an arbitrary arity of possibly-reactive inputs through
// combiner, which receives the unwrapped values positionally in input
// order. The result recomputes whenever any reactive input updates; all
// constants yield a constant computed once. A panic in combiner unwinds to
// the update that triggered it and the previously published value stays in
// place.
//
// For fixed small arities the typed variants Compose2, Compose3, and
// Compose4 avoid the []any unwrapping.
func Compose[R any](combiner func(vals []any) R, inputs ...any) Container[R] {
	joined := Join(inputs...)
	return Derive(joined, combiner)
}

// Compose2 combines two possibly-reactive inputs through a typed combiner.
//
//	total := bind.Compose2(price, quantity, func(p float64, q int) float64 {
//	    return p * float64(q)
//	})
func Compose2[A, B, R any](a, b any, combiner func(A, B) R) Container[R] {
	joined := Join(Lift[A](a), Lift[B](b))
	return Derive(joined, func(vals []any) R {
		return combiner(vals[0].(A), vals[1].(B))
	})
}

// Compose3 combines three possibly-reactive inputs through a typed combiner.
func Compose3[A, B, C, R any](a, b, c any, combiner func(A, B, C) R) Container[R] {
	joined := Join(Lift[A](a), Lift[B](b), Lift[C](c))
	return Derive(joined, func(vals []any) R {
		return combiner(vals[0].(A), vals[1].(B), vals[2].(C))
	})
}

// Compose4 combines four possibly-reactive inputs through a typed combiner.
func Compose4[A, B, C, D, R any](a, b, c, d any, combiner func(A, B, C, D) R) Container[R] {
	joined := Join(Lift[A](a), Lift[B](b), Lift[C](c), Lift[D](d))
	return Derive(joined, func(vals []any) R {
		return combiner(vals[0].(A), vals[1].(B), vals[2].(C), vals[3].(D))
	})
}
