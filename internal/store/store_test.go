// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package store

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/dalzilio/cedd"
	"github.com/dalzilio/cedd/internal/problems"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	s, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewRun(t *testing.T) {
	res, err := problems.NQueens(4)
	require.NoError(t, err)
	run := NewRun(res, nil)
	assert.Equal(t, "nqueens", run.Problem)
	assert.Equal(t, 4, run.Size)
	assert.Equal(t, "2", run.Count)
	assert.Equal(t, "2", run.Expected)
	assert.True(t, run.Ok)
	assert.Empty(t, run.Error)
	assert.Equal(t, res.Nodes, run.Nodes)

	failed := NewRun(problems.Result{Name: "nqueens", Size: 8}, errors.Wrap(cedd.ErrOutOfMemory, "nqueens(8)"))
	assert.False(t, failed.Ok)
	assert.Empty(t, failed.Count)
	assert.Contains(t, failed.Error, "nqueens(8)")

	wrong := NewRun(problems.Result{Name: "chain", Size: 2, Count: big.NewInt(2), Expected: big.NewInt(1)}, nil)
	assert.False(t, wrong.Ok)
}

func TestStore(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		runs, err := s.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("Save", func(t *testing.T) {
		for _, n := range []int{4, 5, 4} {
			res, err := problems.NQueens(n)
			require.NoError(t, err)
			run := NewRun(res, nil)
			require.NoError(t, s.Save(ctx, run))
			assert.NotZero(t, run.ID)
		}
		require.NoError(t, s.Save(ctx, NewRun(problems.Result{Name: "milner", Size: 12}, cedd.ErrOutOfMemory)))
	})

	t.Run("Recent", func(t *testing.T) {
		runs, err := s.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "milner", runs[0].Problem)
		assert.Equal(t, 4, runs[1].Size)
		assert.False(t, runs[1].CreateTime.IsZero())
	})

	t.Run("History", func(t *testing.T) {
		runs, err := s.History(ctx, "nqueens", 4)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Less(t, runs[0].ID, runs[1].ID)
		assert.Equal(t, runs[0].Count, runs[1].Count)
		assert.Equal(t, runs[0].Nodes, runs[1].Nodes)
	})

	t.Run("Failures", func(t *testing.T) {
		n, err := s.Failures(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestOpen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(dsn, true)
	require.NoError(t, err)
	res, err := problems.Chain(10)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), NewRun(res, nil)))
	require.NoError(t, s.Close())

	s, err = Open(dsn, false)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.History(context.Background(), "chain", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "1", runs[0].Count)
}
