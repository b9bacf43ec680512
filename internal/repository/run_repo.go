package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizstage/quizstage-backend/internal/common"
	"github.com/quizstage/quizstage-backend/internal/domain"
	"gorm.io/gorm"
)

// RunRepository run data access interface
type RunRepository interface {
	Create(summary string) (*domain.Run, error)
	FindAll() ([]*domain.Run, error)
	FindByID(id string) (*domain.Run, error)
	Delete(id string) error
	TouchStagingChange(id string, at time.Time) error
	RecordSync(id string, at time.Time) error
	WithTx(tx *gorm.DB) RunRepository
}

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

// WithTx returns a RunRepository bound to the given transaction
func (r *runRepository) WithTx(tx *gorm.DB) RunRepository {
	return &runRepository{db: tx}
}

// Create inserts a run with a fresh id. The initial staging-change
// time is set so consumers see a never-synced run as stale.
func (r *runRepository) Create(summary string) (*domain.Run, error) {
	now := time.Now().UTC()
	run := &domain.Run{
		ID:                  uuid.New().String(),
		Summary:             summary,
		LastStagingChangeAt: &now,
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// FindAll returns all runs, newest first
func (r *runRepository) FindAll() ([]*domain.Run, error) {
	var runs []*domain.Run
	err := r.db.Order("created_at DESC").Find(&runs).Error
	return runs, err
}

// FindByID returns one run
func (r *runRepository) FindByID(id string) (*domain.Run, error) {
	var run domain.Run
	err := r.db.Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Delete removes a run and everything beneath it
func (r *runRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stagingIDs []uint64
		if err := tx.Model(&domain.StagingQuestion{}).Where("run_id = ?", id).
			Pluck("id", &stagingIDs).Error; err != nil {
			return err
		}
		if len(stagingIDs) > 0 {
			if err := tx.Exec("DELETE FROM staging_question_tags WHERE staging_question_id IN ?", stagingIDs).Error; err != nil {
				return err
			}
		}

		var publishedIDs []uint64
		if err := tx.Model(&domain.PublishedQuestion{}).Where("run_id = ?", id).
			Pluck("id", &publishedIDs).Error; err != nil {
			return err
		}
		if len(publishedIDs) > 0 {
			if err := tx.Exec("DELETE FROM published_question_tags WHERE published_question_id IN ?", publishedIDs).Error; err != nil {
				return err
			}
		}

		for _, model := range []interface{}{
			&domain.StagingAnswer{},
			&domain.StagingQuestion{},
			&domain.PublishedAnswer{},
			&domain.PublishedQuestion{},
		} {
			if err := tx.Where("run_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Where("id = ?", id).Delete(&domain.Run{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("run %s: %w", id, common.ErrRunNotFound)
		}
		return nil
	})
}

// TouchStagingChange bumps the run's staging-change marker
func (r *runRepository) TouchStagingChange(id string, at time.Time) error {
	return r.db.Model(&domain.Run{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_staging_change_at": at,
			"updated_at":             at,
		}).Error
}

// RecordSync sets the run's last sync time
func (r *runRepository) RecordSync(id string, at time.Time) error {
	return r.db.Model(&domain.Run{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_sync_at": at,
			"updated_at":   at,
		}).Error
}
