package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	level int
	name  string
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}
	err := Apply(cfg,
		NoError(func(c *testConfig) { c.level = 3 }),
		NoError(func(c *testConfig) { c.name = "index" }),
	)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.level)
	require.Equal(t, "index", cfg.name)
}

func TestApply_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	cfg := &testConfig{}

	err := Apply(cfg,
		New(func(c *testConfig) error { c.level = 1; return boom }),
		NoError(func(c *testConfig) { c.level = 2 }),
	)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, cfg.level)
}

func TestApply_NoOptions(t *testing.T) {
	require.NoError(t, Apply(&testConfig{}))
}
