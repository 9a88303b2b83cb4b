package metrics

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/domain"
)

// BusinessMetricsCollector collects business metrics periodically
type BusinessMetricsCollector struct {
	db      *gorm.DB
	metrics *Metrics
	logger  *zap.Logger
	ticker  *time.Ticker
	done    chan bool
}

// NewBusinessMetricsCollector creates a new collector
func NewBusinessMetricsCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		db:      db,
		metrics: metrics,
		logger:  logger,
		ticker:  time.NewTicker(60 * time.Second),
		done:    make(chan bool),
	}
}

// Start begins collecting metrics
func (c *BusinessMetricsCollector) Start() {
	go func() {
		c.collect()

		for {
			select {
			case <-c.ticker.C:
				c.collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *BusinessMetricsCollector) Stop() {
	c.ticker.Stop()
	c.done <- true
}

// collect gathers business metrics
func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection",
				zap.Any("panic", r),
			)
		}
	}()

	if c.db == nil {
		return
	}

	var workpanels, boards, tasks int64
	if err := c.db.Model(&domain.Workpanel{}).Count(&workpanels).Error; err == nil {
		c.metrics.SetWorkpanelsTotal(workpanels)
	}
	if err := c.db.Model(&domain.Board{}).Count(&boards).Error; err == nil {
		c.metrics.SetBoardsTotal(boards)
	}
	if err := c.db.Model(&domain.Task{}).Count(&tasks).Error; err == nil {
		c.metrics.SetTasksTotal(tasks)
	}

	if sqlDB, err := c.db.DB(); err == nil {
		c.metrics.UpdateDBStats(sqlDB.Stats())
	}
}
