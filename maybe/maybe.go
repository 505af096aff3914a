/*
Package maybe provides an option type for measurements that a producer may
or may not have taken. A Maybe[T] is either Just(v) or Nothing; the
distinction between "measured as zero" and "not measured" is load-bearing
for the statistics aggregates built on top of this package and must never
collapse into a zero default.
*/
package maybe

// Maybe holds an optional value of type T.
// The zero value is Nothing.
type Maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps a present value.
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, tag: true}
}

// Nothing is the absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns the contained value and whether it is present.
func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.tag
}

// IsJust reports presence.
func (m Maybe[T]) IsJust() bool {
	return m.tag
}

// WithDefault returns the contained value, or def if absent.
func (m Maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

// Map applies f to a present value; Nothing stays Nothing.
func Map[T, S any](f func(T) S, m Maybe[T]) Maybe[S] {
	if v, ok := m.Get(); ok {
		return Just(f(v))
	}
	return Nothing[S]()
}

// Map2 combines two optional values. If either side is Nothing the result
// is Nothing: combining a measurement with a non-measurement yields a
// non-measurement, never a fabricated value.
func Map2[A, B, C any](f func(A, B) C, a Maybe[A], b Maybe[B]) Maybe[C] {
	va, ok := a.Get()
	if !ok {
		return Nothing[C]()
	}
	vb, ok := b.Get()
	if !ok {
		return Nothing[C]()
	}
	return Just(f(va, vb))
}

// AndThen chains a computation that may itself fail to produce a value.
func AndThen[T, S any](f func(T) Maybe[S], m Maybe[T]) Maybe[S] {
	if v, ok := m.Get(); ok {
		return f(v)
	}
	return Nothing[S]()
}

// Ptr converts to a nil-able pointer, e.g. for serialization layers that
// render absence as null.
func Ptr[T any](m Maybe[T]) *T {
	if v, ok := m.Get(); ok {
		v := v
		return &v
	}
	return nil
}
