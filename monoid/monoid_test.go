package monoid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	m := Count[string]{}

	require.Equal(t, uint64(0), m.Neutral())
	require.Equal(t, uint64(1), m.Lift("anything"))
	require.Equal(t, uint64(5), m.Combine(2, 3))

	// Identity and commutativity.
	require.Equal(t, uint64(7), m.Combine(m.Neutral(), 7))
	require.Equal(t, uint64(7), m.Combine(7, m.Neutral()))
	require.Equal(t, m.Combine(3, 4), m.Combine(4, 3))
}

func TestTrivial(t *testing.T) {
	m := Trivial[string]{}

	require.Equal(t, struct{}{}, m.Neutral())
	require.Equal(t, struct{}{}, m.Lift("anything"))
	require.Equal(t, struct{}{}, m.Combine(struct{}{}, struct{}{}))
}
