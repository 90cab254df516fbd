// Package integration runs the mapping engine against the baseline kernel
// and cycle finders on reaction documents loaded from disk.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/internal/application/matching"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/intelligence/cycles"
	"github.com/turtacn/ReactionMapper/internal/intelligence/mcs"
	"github.com/turtacn/ReactionMapper/internal/testutil"
)

// NewEngine builds a GraphMatcher with the baseline kernel and strategy.
func NewEngine(t *testing.T, strategy string, opts ...matching.Option) (*matching.GraphMatcher, *testutil.MockLogger) {
	t.Helper()
	finder, err := cycles.New(strategy, cycles.DefaultLimit)
	require.NoError(t, err)
	logger := testutil.NewMockLogger()
	m, err := matching.NewGraphMatcher(mcs.NewKernel(0), finder, append([]matching.Option{matching.WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return m, logger
}

// LoadReaction writes content to a temp file named name and loads it.
func LoadReaction(t *testing.T, name, content string, opts reaction.DecodeOptions) *reaction.Container {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	c, err := reaction.LoadFile(path, opts)
	require.NoError(t, err)
	return c
}
