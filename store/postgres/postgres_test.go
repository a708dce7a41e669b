package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/store"
	"sadt/store/postgres"
)

// openStore connects to SADT_TEST_DATABASE_URL or skips the test.
func openStore(t *testing.T) *postgres.PGStore {
	t.Helper()
	url := os.Getenv("SADT_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SADT_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, pool, err := postgres.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() {
		s.DropSchema(context.Background())
		pool.Close()
	})
	return s
}

func TestPGStoreRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	d := diagram.New()
	a := d.AddNode("Collect", geometry.Pt(0, 0))
	b := d.AddNode("Process", geometry.Pt(200, 10))
	c := d.AddNode("Rules", geometry.Pt(200, -150))
	d.SetAlgorithm(b, "divide")
	_, ok := d.AddArrow(
		diagram.ConnectionPoint{Node: a, Side: diagram.Right},
		diagram.ConnectionPoint{Node: b, Side: diagram.Left},
		diagram.Input, "raw")
	require.True(t, ok)
	_, ok = d.AddArrow(
		diagram.ConnectionPoint{Node: c, Side: diagram.Bottom},
		diagram.ConnectionPoint{Node: b, Side: diagram.Top},
		diagram.Control, "")
	require.True(t, ok)

	require.NoError(t, s.Save(ctx, "flow", d))
	got, err := s.Load(ctx, "flow")
	require.NoError(t, err)
	assert.Equal(t, d.Nodes(), got.Nodes())
	assert.Equal(t, d.Arrows(), got.Arrows())

	// Replace semantics: the removed node takes its arrows along.
	d.RemoveNode(c)
	require.NoError(t, s.Save(ctx, "flow", d))
	got, err = s.Load(ctx, "flow")
	require.NoError(t, err)
	assert.Equal(t, 2, got.NodeCount())
	assert.Equal(t, 1, got.ArrowCount())

	// The same ids may live in another diagram.
	require.NoError(t, s.Save(ctx, "copy", d))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"copy", "flow"}, names)

	require.NoError(t, s.Delete(ctx, "flow"))
	_, err = s.Load(ctx, "flow")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "flow"), store.ErrNotFound)
}

func TestPGStoreRejectsBadNames(t *testing.T) {
	s := openStore(t)
	assert.ErrorIs(t, s.Save(context.Background(), "no/slash", diagram.New()), store.ErrInvalidName)
}
