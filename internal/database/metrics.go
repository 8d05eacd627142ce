package database

import (
	"fmt"
	"time"

	"smashboard/internal/observability"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// instrumentQueries registers GORM callbacks that record query latency
// per operation and table.
func instrumentQueries(db *gorm.DB) error {
	steps := []struct {
		op       string
		register func(op string) error
	}{
		{"create", func(op string) error {
			if err := db.Callback().Create().Before("gorm:create").
				Register("metrics:before_"+op, startTimer); err != nil {
				return err
			}
			return db.Callback().Create().After("gorm:create").
				Register("metrics:after_"+op, observeQuery(op))
		}},
		{"query", func(op string) error {
			if err := db.Callback().Query().Before("gorm:query").
				Register("metrics:before_"+op, startTimer); err != nil {
				return err
			}
			return db.Callback().Query().After("gorm:query").
				Register("metrics:after_"+op, observeQuery(op))
		}},
		{"update", func(op string) error {
			if err := db.Callback().Update().Before("gorm:update").
				Register("metrics:before_"+op, startTimer); err != nil {
				return err
			}
			return db.Callback().Update().After("gorm:update").
				Register("metrics:after_"+op, observeQuery(op))
		}},
		{"delete", func(op string) error {
			if err := db.Callback().Delete().Before("gorm:delete").
				Register("metrics:before_"+op, startTimer); err != nil {
				return err
			}
			return db.Callback().Delete().After("gorm:delete").
				Register("metrics:after_"+op, observeQuery(op))
		}},
		{"raw", func(op string) error {
			if err := db.Callback().Raw().Before("gorm:raw").
				Register("metrics:before_"+op, startTimer); err != nil {
				return err
			}
			return db.Callback().Raw().After("gorm:raw").
				Register("metrics:after_"+op, observeQuery(op))
		}},
	}

	for _, step := range steps {
		if err := step.register(step.op); err != nil {
			return fmt.Errorf("register %s metrics callback: %w", step.op, err)
		}
	}
	return nil
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func observeQuery(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		observability.DatabaseQueryLatency.
			WithLabelValues(operation, db.Statement.Table).
			Observe(time.Since(start).Seconds())
	}
}
