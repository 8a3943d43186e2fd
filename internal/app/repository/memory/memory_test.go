package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

func record(id, name, text string) model.TranscriptionRecord {
	return model.TranscriptionRecord{ID: id, Name: name, Filename: name + ".mp3", Text: text}
}

func TestStoreAddAndGetAll(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, r := range []model.TranscriptionRecord{
		record("1", "first", "alpha"),
		record("2", "second", "bravo"),
		record("3", "third", "charlie"),
	} {
		id, err := store.Add(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, r.ID, id)
	}

	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	assert.Equal(t, "3", records[0].ID)
	assert.Equal(t, "2", records[1].ID)
	assert.Equal(t, "1", records[2].ID)
}

func TestStoreGetAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_, err := store.Add(ctx, record("1", "first", "alpha"))
	require.NoError(t, err)

	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	records[0].Name = "mutated"

	again, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", again[0].Name)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_, err := store.Add(ctx, record("1", "first", "alpha"))
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(ctx, "1")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = store.Delete(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStoreClearAll(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	for i, name := range []string{"a", "b", "c"} {
		_, err := store.Add(ctx, record(string(rune('1'+i)), name, ""))
		require.NoError(t, err)
	}

	count, err := store.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	records, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	count, err = store.ClearAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStoreSearch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_, err := store.Add(ctx, record("1", "Weekly Standup", "we discussed the roadmap"))
	require.NoError(t, err)
	_, err = store.Add(ctx, record("2", "Interview", "candidate talked about Go"))
	require.NoError(t, err)

	t.Run("matches_name_case_insensitive", func(t *testing.T) {
		records, err := store.Search(ctx, "STANDUP")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "1", records[0].ID)
	})

	t.Run("matches_text", func(t *testing.T) {
		records, err := store.Search(ctx, "roadmap")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "1", records[0].ID)
	})

	t.Run("no_match", func(t *testing.T) {
		records, err := store.Search(ctx, "budget")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty_query_matches_everything", func(t *testing.T) {
		records, err := store.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
