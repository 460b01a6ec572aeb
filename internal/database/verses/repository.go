// Package verses provides database operations for the verse library.
//
// # Usage
//
//	repo := verses.NewRepository(db)
//	list, err := repo.ListByUser(userID)
package verses

import (
	"fmt"

	"gorm.io/gorm"

	"versekeeper/internal/database/dberr"
	"versekeeper/internal/entities"
)

// Repository handles all verse database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new verses repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateParams carries the caller-supplied attributes for a new verse.
// ID and both timestamps are generated here.
type CreateParams struct {
	Book        string
	Chapter     int
	Verse       int
	Content     string
	Reference   string
	Translation string
	UserID      string
	Notes       string
	Tags        []string
}

// Create inserts a new verse and returns the full record, with
// UpdatedAt == CreatedAt. The foreign-key constraint rejects a UserID that
// matches no user with dberr.ErrConstraintViolation.
func (r *Repository) Create(params CreateParams) (*entities.Verse, error) {
	tags := entities.StringList(params.Tags)
	if tags == nil {
		tags = entities.StringList{}
	}

	now := entities.Now()
	verse := &entities.Verse{
		ID:          entities.NewID(),
		Book:        params.Book,
		Chapter:     params.Chapter,
		Verse:       params.Verse,
		Content:     params.Content,
		Reference:   params.Reference,
		Translation: params.Translation,
		UserID:      params.UserID,
		Notes:       params.Notes,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.Create(verse).Error; err != nil {
		return nil, dberr.Wrap("create verse", err)
	}
	return verse, nil
}

// GetByID retrieves a verse by id. A missing row yields dberr.ErrNotFound.
func (r *Repository) GetByID(id string) (*entities.Verse, error) {
	var verse entities.Verse
	if err := r.db.Where("id = ?", id).First(&verse).Error; err != nil {
		return nil, dberr.Wrap("get verse", err)
	}
	return &verse, nil
}

// ListByUser returns all verses owned by the user, most recently created
// first. A user with no verses gets an empty slice, not an error.
func (r *Repository) ListByUser(userID string) ([]entities.Verse, error) {
	list := make([]entities.Verse, 0)
	if err := r.db.Where("userId = ?", userID).Order("createdAt DESC").Find(&list).Error; err != nil {
		return nil, dberr.Wrap("list verses by user", err)
	}
	return list, nil
}

// Update applies the supplied patch fields to the verse and returns the
// updated record. UpdatedAt is refreshed on every call regardless of which
// fields are present. A missing id yields dberr.ErrNotFound.
func (r *Repository) Update(id string, patch entities.VersePatch) (*entities.Verse, error) {
	updates := map[string]any{
		"updatedAt": entities.Now(),
	}
	if patch.Book.IsSet() {
		updates["book"] = patch.Book.Value()
	}
	if patch.Chapter.IsSet() {
		updates["chapter"] = patch.Chapter.Value()
	}
	if patch.Verse.IsSet() {
		updates["verse"] = patch.Verse.Value()
	}
	if patch.Content.IsSet() {
		updates["content"] = patch.Content.Value()
	}
	if patch.Reference.IsSet() {
		updates["reference"] = patch.Reference.Value()
	}
	if patch.Translation.IsSet() {
		updates["translation"] = patch.Translation.Value()
	}
	if patch.Notes.IsSet() {
		updates["notes"] = patch.Notes.Value()
	}
	if patch.Tags.IsSet() {
		updates["tags"] = entities.StringList(patch.Tags.Value())
	}

	result := r.db.Model(&entities.Verse{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, dberr.Wrap("update verse", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update verse: %w", dberr.ErrNotFound)
	}

	return r.GetByID(id)
}

// Delete removes the verse. Deleting an id that does not exist is a no-op,
// not an error.
func (r *Repository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&entities.Verse{}).Error; err != nil {
		return dberr.Wrap("delete verse", err)
	}
	return nil
}

// ListAll returns every verse across all users, most recently created first.
// Debug use only.
func (r *Repository) ListAll() ([]entities.Verse, error) {
	list := make([]entities.Verse, 0)
	if err := r.db.Order("createdAt DESC").Find(&list).Error; err != nil {
		return nil, dberr.Wrap("list all verses", err)
	}
	return list, nil
}

// ListOrphans returns verses whose owner no longer exists. With the
// foreign-key constraint enabled these should never appear; the integrity
// scan uses this to verify that holds for databases created before the
// constraint existed.
func (r *Repository) ListOrphans() ([]entities.Verse, error) {
	list := make([]entities.Verse, 0)
	err := r.db.Where("userId NOT IN (SELECT id FROM users)").Find(&list).Error
	if err != nil {
		return nil, dberr.Wrap("list orphaned verses", err)
	}
	return list, nil
}
