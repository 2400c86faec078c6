package boltdb

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/storage"
)

func TestCreateAndListPYQs(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	first := testPYQ("Physics")
	second := testPYQ("Chemistry")
	third := testPYQ("Physics")

	for _, pyq := range []*models.PYQ{first, second, third} {
		require.NoError(t, s.CreatePYQ(ctx, pyq))
	}

	t.Run("empty filter returns all in insertion order", func(t *testing.T) {
		got, err := s.ListPYQs(ctx, models.PYQFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
		assert.Equal(t, third.ID, got[2].ID)
	})

	t.Run("subject filter exact match", func(t *testing.T) {
		got, err := s.ListPYQs(ctx, models.PYQFilter{Subject: "Physics"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, third.ID, got[1].ID)
	})

	t.Run("case sensitive filter", func(t *testing.T) {
		got, err := s.ListPYQs(ctx, models.PYQFilter{Subject: "physics"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-matching filter", func(t *testing.T) {
		got, err := s.ListPYQs(ctx, models.PYQFilter{Year: "1999"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestDeletePYQ(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	pyq := testPYQ("Physics")
	require.NoError(t, s.CreatePYQ(ctx, pyq))

	require.NoError(t, s.DeletePYQ(ctx, pyq.ID))

	got, err := s.ListPYQs(ctx, models.PYQFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeletePYQ_NotFound(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.CreatePYQ(ctx, testPYQ("Physics")))

	err := s.DeletePYQ(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrPYQNotFound)

	got, err := s.ListPYQs(ctx, models.PYQFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDeletePYQ_KeepsOrderOfRemaining(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	first := testPYQ("Physics")
	second := testPYQ("Chemistry")
	third := testPYQ("Maths")

	for _, pyq := range []*models.PYQ{first, second, third} {
		require.NoError(t, s.CreatePYQ(ctx, pyq))
	}

	require.NoError(t, s.DeletePYQ(ctx, second.ID))

	got, err := s.ListPYQs(ctx, models.PYQFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, third.ID, got[1].ID)
}

func TestCreatePYQ_Concurrent(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	const n = 20

	var wg sync.WaitGroup
	errC := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pyq := testPYQ(fmt.Sprintf("Subject-%d", i))
			errC <- s.CreatePYQ(ctx, pyq)
		}(i)
	}

	wg.Wait()
	close(errC)

	for err := range errC {
		require.NoError(t, err)
	}

	got, err := s.ListPYQs(ctx, models.PYQFilter{})
	require.NoError(t, err)
	require.Len(t, got, n)

	ids := make(map[string]bool)
	for _, pyq := range got {
		ids[pyq.ID] = true
	}
	assert.Len(t, ids, n)
}
