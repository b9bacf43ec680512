package repository

import (
	"errors"

	"github.com/quizstage/quizstage-backend/internal/domain"
	"gorm.io/gorm"
)

// TagRepository tag data access interface
type TagRepository interface {
	FindAll() ([]*domain.Tag, error)
	FindOrCreateByName(name string) (*domain.Tag, error)
	WithTx(tx *gorm.DB) TagRepository
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// WithTx returns a TagRepository bound to the given transaction
func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

// FindAll returns all tags ordered by name
func (r *tagRepository) FindAll() ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}

// FindOrCreateByName returns the tag with the given name, creating it
// when absent. Tag names are globally unique.
func (r *tagRepository) FindOrCreateByName(name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = domain.Tag{Name: name}
	if err := r.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
