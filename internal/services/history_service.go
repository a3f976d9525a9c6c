// Package services holds the application services built on the database.
package services

import (
	"context"
	"sync"
	"time"

	"opus-gate/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	historyBufferSize    = 1024
	historyFlushBatch    = 100
	historyFlushInterval = 5 * time.Second

	// DefaultHistoryLimit bounds history queries when no limit is given.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit is the hard cap for a single history query.
	MaxHistoryLimit = 500
)

// HistoryService persists translation logs asynchronously so request
// latency does not depend on database writes.
type HistoryService struct {
	db       *gorm.DB
	buffer   chan *models.TranslationLog
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewHistoryService creates a new HistoryService instance.
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{
		db:       db,
		buffer:   make(chan *models.TranslationLog, historyBufferSize),
		stopChan: make(chan struct{}),
	}
}

// Start launches the background writer.
func (s *HistoryService) Start() {
	s.wg.Add(1)
	go s.runLoop()
}

// Stop drains the buffer and stops the writer. The context bounds how long
// the shutdown may take.
func (s *HistoryService) Stop(ctx context.Context) {
	close(s.stopChan)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("HistoryService stopped gracefully.")
	case <-ctx.Done():
		logrus.Warn("HistoryService stop timed out, some logs may be lost.")
	}
}

// Record queues a translation log for persistence. When the buffer is full
// the log is dropped rather than blocking the request path.
func (s *HistoryService) Record(log *models.TranslationLog) {
	select {
	case s.buffer <- log:
	default:
		logrus.Warn("Translation history buffer full, dropping log entry")
	}
}

// Query returns the most recent translation logs, newest first. A limit of
// 0 or less falls back to DefaultHistoryLimit.
func (s *HistoryService) Query(limit int) ([]models.TranslationLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var logs []models.TranslationLog
	err := s.db.Order("id desc").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *HistoryService) runLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(historyFlushInterval)
	defer ticker.Stop()

	batch := make([]*models.TranslationLog, 0, historyFlushBatch)
	for {
		select {
		case log := <-s.buffer:
			batch = append(batch, log)
			if len(batch) >= historyFlushBatch {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-s.stopChan:
			batch = s.drain(batch)
			if len(batch) > 0 {
				s.flush(batch)
			}
			return
		}
	}
}

// drain empties whatever is left in the buffer after stop was requested.
func (s *HistoryService) drain(batch []*models.TranslationLog) []*models.TranslationLog {
	for {
		select {
		case log := <-s.buffer:
			batch = append(batch, log)
		default:
			return batch
		}
	}
}

func (s *HistoryService) flush(batch []*models.TranslationLog) {
	if err := s.db.CreateInBatches(batch, historyFlushBatch).Error; err != nil {
		logrus.WithError(err).Errorf("Failed to write %d translation logs", len(batch))
		return
	}
	logrus.Debugf("Flushed %d translation logs", len(batch))
}
