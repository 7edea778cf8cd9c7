package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bzerror "github.com/VDFOREVER/blaze/foundation/core/error"
	"github.com/VDFOREVER/blaze/pkg/core/version"
)

func newDatablaze(t *testing.T) *Datablaze {
	t.Helper()
	d, err := Create(filepath.Join(t.TempDir(), "groceries"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "groceries")

	d, err := Create(dir)
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, Exists(dir))
	assert.Len(t, d.ID(), 36)
	assert.Equal(t, dir, d.Dir())
	assert.Equal(t, version.DatablazeFormat, d.FormatVersion())
	assert.WithinDuration(t, time.Now(), d.CreatedAt(), time.Minute)
	assert.Contains(t, d.String(), d.ID())
}

func TestCreate_AlreadyExists(t *testing.T) {
	dir := t.TempDir()

	d, err := Create(dir)
	require.NoError(t, err)
	d.Close()

	_, err = Create(dir)
	require.Error(t, err)
	assert.True(t, bzerror.HasCode(err, bzerror.CodeAlreadyExists))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	created, err := Create(dir)
	require.NoError(t, err)
	id := created.ID()
	require.NoError(t, created.Close())

	opened, err := Open(dir)
	require.NoError(t, err)
	defer opened.Close()

	assert.Equal(t, id, opened.ID())
	assert.Equal(t, version.DatablazeFormat, opened.FormatVersion())
	assert.WithinDuration(t, created.CreatedAt(), opened.CreatedAt(), time.Second)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, bzerror.HasCode(err, bzerror.CodeNotFound))
}

func TestRecordParse_AndHistory(t *testing.T) {
	d := newDatablaze(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	records := []*Record{
		{SourceLabel: "Shell", Source: "mut x = 1;", Success: true, Statements: 1, CreatedAt: base},
		{SourceLabel: "Shell", Source: "fifn", Diagnostic: "Syntax Error: ';' is expected <-= Shell:1:5", CreatedAt: base.Add(time.Minute)},
		{SourceLabel: "ws", Source: "f(a=1);", Success: true, Statements: 1, RequestID: "req-1", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, d.RecordParse(ctx, rec))
		assert.NotEmpty(t, rec.ID)
	}

	history, err := d.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, records[2].ID, history[0].ID)
	assert.Equal(t, "req-1", history[0].RequestID)
	assert.Equal(t, records[1].ID, history[1].ID)
	assert.False(t, history[1].Success)
	assert.Equal(t, records[1].Diagnostic, history[1].Diagnostic)
	assert.Equal(t, "mut x = 1;", history[2].Source)
	assert.Empty(t, history[2].Diagnostic)

	limited, err := d.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStats(t *testing.T) {
	d := newDatablaze(t)
	ctx := context.Background()

	empty, err := d.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty)

	require.NoError(t, d.RecordParse(ctx, &Record{SourceLabel: "Shell", Source: "a;", Success: true, Statements: 1}))
	require.NoError(t, d.RecordParse(ctx, &Record{SourceLabel: "Shell", Source: "@", Diagnostic: "Lexical Error"}))

	stats, err := d.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 2, Succeeded: 1, Failed: 1}, stats)
}

func TestPrune(t *testing.T) {
	d := newDatablaze(t)
	ctx := context.Background()

	require.NoError(t, d.RecordParse(ctx, &Record{SourceLabel: "Shell", Source: "old;", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}))
	require.NoError(t, d.RecordParse(ctx, &Record{SourceLabel: "Shell", Source: "new;"}))

	removed, err := d.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	history, err := d.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "new;", history[0].Source)
}

func TestPing(t *testing.T) {
	d := newDatablaze(t)
	assert.NoError(t, d.Ping(context.Background()))
}

func TestRecordParse_Concurrent(t *testing.T) {
	d := newDatablaze(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, d.RecordParse(ctx, &Record{SourceLabel: "Shell", Source: fmt.Sprintf("x%d;", i), Success: true}))
		}(i)
	}
	wg.Wait()

	stats, err := d.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Total)
}
