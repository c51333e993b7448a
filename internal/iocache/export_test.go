package iocache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/athome/internal/contract"
	"github.com/huangsam/athome/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteStoreExport(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	require.NoError(t, store.Put(ctx, sampleClient("a", 72, schema.AfterWorkCategory)))
	require.NoError(t, store.Put(ctx, sampleClient("b", 38, schema.WeekendsOnlyCategory)))

	base := filepath.Join(t.TempDir(), "snapshot")
	var out bytes.Buffer
	require.NoError(t, ExecuteStoreExport(ctx, &out, store, base))

	for _, suffix := range []string{".profiles.parquet", ".presence.parquet"} {
		info, err := os.Stat(base + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, out.String(), "Exported 2 profiles")
	assert.Contains(t, out.String(), "Exported 4 presence records")
}

func TestExecuteStoreExport_Errors(t *testing.T) {
	ctx := context.Background()

	err := ExecuteStoreExport(ctx, &bytes.Buffer{}, newMemoryStore(t), "")
	assert.ErrorContains(t, err, "--output-file is required")

	err = ExecuteStoreExport(ctx, &bytes.Buffer{}, nil, "out")
	assert.ErrorIs(t, err, contract.ErrStoreUnavailable)

	err = ExecuteStoreExport(ctx, &bytes.Buffer{}, newMemoryStore(t), filepath.Join(t.TempDir(), "out"))
	assert.ErrorContains(t, err, "no profiles found")
}
