package point

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderForRank(t *testing.T) {
	require.Equal(t, OrderZXY, OrderForRank(0))
	require.Equal(t, OrderYZX, OrderForRank(1))
	require.Equal(t, OrderXYZ, OrderForRank(2))
	require.Equal(t, OrderZXY, OrderForRank(3))
	require.Equal(t, OrderYZX, OrderForRank(4))
	require.Equal(t, OrderXYZ, OrderForRank(254))
}

func TestOrdering_String(t *testing.T) {
	require.Equal(t, "xyz", OrderXYZ.String())
	require.Equal(t, "yzx", OrderYZX.String())
	require.Equal(t, "zxy", OrderZXY.String())
	require.Equal(t, "invalid", Ordering(9).String())
}
