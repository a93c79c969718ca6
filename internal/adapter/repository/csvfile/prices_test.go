package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/networth/internal/domain"
)

func TestSnapshotStore(t *testing.T) {
	dir := t.TempDir()
	store := NewSnapshotStore(dir)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrMissingFile)

	require.NoError(t, store.Save(ctx, domain.PriceSnapshot{"A": d("70.25"), "EUR": d("1")}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.True(t, loaded.Price("A").Equal(d("70.25")))
}

func TestSnapshotStoreWritesNumbers(t *testing.T) {
	dir := t.TempDir()
	store := NewSnapshotStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.PriceSnapshot{"A": d("70.25")}))

	data, err := os.ReadFile(filepath.Join(dir, LatestPricesFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"A": 70.25`)
	assert.NotContains(t, string(data), `"70.25"`)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Price("A").Equal(d("70.25")))
}

func TestSnapshotStoreAcceptsBareNumbers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LatestPricesFile), []byte(`{"A": 12.5, "B": "3"}`), 0o644))

	loaded, err := NewSnapshotStore(dir).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.Price("A").Equal(d("12.5")))
	assert.True(t, loaded.Price("B").Equal(d("3")))
}

func TestSnapshotStoreCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, LatestPricesFile), []byte(`{"A": `), 0o644))

	_, err := NewSnapshotStore(dir).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestULIDGenerator(t *testing.T) {
	gen := NewULIDGenerator()

	first, second := gen.Generate(), gen.Generate()
	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
}
