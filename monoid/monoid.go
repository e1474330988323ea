// Package monoid defines the lifting commutative monoid contract used to
// aggregate per-subtree summaries in trizip trees.
//
// A summary is computed by lifting each element into the monoid's universe
// and combining the results. Because subtree summaries are recombined in
// whatever order construction visits elements, Combine must be commutative
// as well as associative; a non-commutative Combine silently corrupts
// summaries with no detectable error. This is a caller obligation the engine
// cannot check.
package monoid

// Monoid is a commutative monoid over M, together with a function lifting
// elements of type E into M.
//
// Laws:
//   - Combine is associative and commutative.
//   - Neutral is an identity on both sides of Combine.
type Monoid[E, M any] interface {
	// Neutral returns the neutral element of the monoid.
	Neutral() M

	// Lift maps an element into the monoid.
	Lift(e E) M

	// Combine merges two monoidal values.
	Combine(a, b M) M
}

// Trivial is the monoid that performs no computation. Use it when a monoid
// must be supplied but no aggregate is needed.
type Trivial[E any] struct{}

var _ Monoid[int, struct{}] = Trivial[int]{}

func (Trivial[E]) Neutral() struct{} { return struct{}{} }

func (Trivial[E]) Lift(E) struct{} { return struct{}{} }

func (Trivial[E]) Combine(struct{}, struct{}) struct{} { return struct{}{} }

// Count is the counting monoid: every element lifts to 1 and Combine is
// addition, so a subtree's summary is its element count.
type Count[E any] struct{}

var _ Monoid[int, uint64] = Count[int]{}

func (Count[E]) Neutral() uint64 { return 0 }

func (Count[E]) Lift(E) uint64 { return 1 }

func (Count[E]) Combine(a, b uint64) uint64 { return a + b }
