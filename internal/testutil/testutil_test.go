package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ReactionMapper/internal/domain/mapping"
	"github.com/turtacn/ReactionMapper/internal/domain/reaction"
	"github.com/turtacn/ReactionMapper/internal/infrastructure/monitoring/logging"
)

func TestMockLogger_CapturesInheritedFields(t *testing.T) {
	l := NewMockLogger()
	child := l.Named("matching").With(logging.String("run_id", "r1"))
	child.Warn("pair dropped", logging.Int("n", 2))
	l.Info("plain")

	msgs := l.GetMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "matching", msgs[0].Logger)
	v, ok := msgs[0].Field("run_id")
	assert.True(t, ok)
	assert.Equal(t, "r1", v)
	_, ok = msgs[1].Field("run_id")
	assert.False(t, ok)

	assert.True(t, l.HasMessage("warn", "pair dropped"))
	assert.Equal(t, 1, l.Count("info", "plain"))
	assert.Len(t, l.MessagesAt("warn"), 1)
	assert.NoError(t, l.Sync())

	l.Clear()
	assert.Empty(t, l.GetMessages())
}

func TestFakeKernel_MapsByPosition(t *testing.T) {
	k := NewFakeKernel()
	r, p := Chain("r", "C", "O"), Chain("p", "C", "O", "N")
	raw, err := k.Match(context.Background(), mapping.KernelRequest{Reactant: r, Product: p, ReactantIndex: 0, ProductIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"r.1", "p.1"}, {"r.2", "p.2"}}, raw.Mapping.IDPairs())
	assert.NotSame(t, r, raw.Query)
	assert.Equal(t, 1, k.Calls())
	assert.Equal(t, 1, k.PeakConcurrency())
	k.AssertNumberOfCalls(t, "Match", 1)
	k.AssertCalled(t, "Match", mock.Anything, mock.MatchedBy(func(req mapping.KernelRequest) bool {
		return req.Reactant == r && req.ProductIndex == 1
	}))
	require.Len(t, k.Requests(), 1)
	assert.Same(t, p, k.Requests()[0].Product)
}

func TestFakeKernel_Scripted(t *testing.T) {
	boom := errors.New("boom")
	k := NewFakeKernel().FailOn(reaction.NewCombination(0, 0), boom).PanicOn(reaction.NewCombination(1, 0))
	r := Chain("r", "C")

	_, err := k.Match(context.Background(), mapping.KernelRequest{Reactant: r, Product: r})
	assert.ErrorIs(t, err, boom)
	assert.Panics(t, func() {
		_, _ = k.Match(context.Background(), mapping.KernelRequest{Reactant: r, Product: r, ReactantIndex: 1})
	})

	blocking := NewFakeKernel()
	blocking.Block = true
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = blocking.Match(ctx, mapping.KernelRequest{Reactant: r, Product: r})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFakeCycleFinder(t *testing.T) {
	f := NewFakeCycleFinder(map[string]int{"ring": 1}).FailOn("bad", errors.New("x"))
	res, err := f.Find(Ring("ring", 6))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	res, err = f.Find(Chain("chain", "C"))
	require.NoError(t, err)
	assert.Zero(t, res.Count)

	_, err = f.Find(Chain("bad", "C"))
	assert.Error(t, err)
	assert.Equal(t, 3, f.Calls())
}

func TestFixtures(t *testing.T) {
	g := Chain("x", "C", "C", "O")
	assert.Equal(t, 2, g.BondCount())
	assert.NoError(t, g.Validate())
	assert.Equal(t, 6, Ring("r", 6).BondCount())
}
