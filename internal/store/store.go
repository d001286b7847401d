// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package store keeps a history of benchmark runs in a SQLite database.
package store

import (
	"context"
	"time"

	"github.com/dalzilio/cedd/internal/problems"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Run is the record of one computation. We store solution counts as decimal
// strings since they may not fit in 64 bits.
type Run struct {
	ID          int64         `gorm:"column:id;primaryKey;autoIncrement"`
	Problem     string        `gorm:"column:problem;type:varchar(64);index:idx_problem_size"`
	Size        int           `gorm:"column:size;index:idx_problem_size"`
	Count       string        `gorm:"column:count;type:text"`
	Expected    string        `gorm:"column:expected;type:text"`
	Ok          bool          `gorm:"column:ok"`
	Error       string        `gorm:"column:error;type:text"`
	Nodes       uint64        `gorm:"column:nodes"`
	TableNodes  int           `gorm:"column:table_nodes"`
	LiveNodes   int           `gorm:"column:live_nodes"`
	Produced    int           `gorm:"column:produced"`
	GCCount     int           `gorm:"column:gc_count"`
	GCReclaimed int           `gorm:"column:gc_reclaimed"`
	CacheHits   int           `gorm:"column:cache_hits"`
	CacheMisses int           `gorm:"column:cache_misses"`
	Duration    time.Duration `gorm:"column:duration"`
	CreateTime  time.Time     `gorm:"column:create_time;autoCreateTime"`
}

// TableName specifies the table name for Run.
func (Run) TableName() string {
	return "cedd_runs"
}

// NewRun converts the outcome of a problem into a record. Parameter err is the
// error returned by the computation, if any.
func NewRun(r problems.Result, err error) *Run {
	run := &Run{
		Problem:     r.Name,
		Size:        r.Size,
		Ok:          err == nil && r.Ok(),
		Nodes:       r.Nodes,
		TableNodes:  r.Stats.Nodes,
		LiveNodes:   r.Stats.LiveNodes,
		Produced:    r.Stats.Produced,
		GCCount:     r.Stats.GCCount,
		GCReclaimed: r.Stats.GCReclaimed,
		CacheHits:   r.Stats.CacheHits,
		CacheMisses: r.Stats.CacheMisses,
		Duration:    r.Duration,
	}
	if r.Count != nil {
		run.Count = r.Count.String()
	}
	if r.Expected != nil {
		run.Expected = r.Expected.String()
	}
	if err != nil {
		run.Error = err.Error()
	}
	return run
}

// Store gives access to the history of runs.
type Store struct {
	db *gorm.DB
}

// Open opens (and creates if needed) the database at path dsn. We add
// OpenTelemetry spans to database calls when traced is true.
func Open(dsn string, traced bool) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %s", dsn)
	}
	if traced {
		if err := db.Use(tracing.NewPlugin()); err != nil {
			return nil, errors.Wrap(err, "failed to enable telemetry")
		}
	}
	// SQLite does not support concurrent writers
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)
	return New(db)
}

// New returns a Store using an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}

// Save inserts a new record and sets its ID.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return errors.Wrapf(err, "failed to save run %s(%d)", run.Problem, run.Size)
	}
	return nil
}

// Recent returns the last limit runs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	return runs, nil
}

// History returns all the runs of a problem with a given size, in the order
// they were saved.
func (s *Store) History(ctx context.Context, problem string, size int) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).
		Where("problem = ? AND size = ?", problem, size).
		Order("id ASC").
		Find(&runs).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query runs of %s(%d)", problem, size)
	}
	return runs, nil
}

// Failures returns the number of runs that did not return the expected result.
func (s *Store) Failures(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Run{}).
		Where("ok = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count failures")
	}
	return count, nil
}
