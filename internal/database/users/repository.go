// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByPhone(phone)
package users

import (
	"fmt"

	"gorm.io/gorm"

	"versekeeper/internal/database/dberr"
	"versekeeper/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateParams carries the caller-supplied attributes for a new user.
// ID and CreatedAt are generated here.
type CreateParams struct {
	Name                 string
	Phone                string
	Denomination         string
	PreferredTranslation string
}

// Create inserts a new user and returns the full record. A duplicate phone
// number fails with dberr.ErrConstraintViolation and inserts nothing.
func (r *Repository) Create(params CreateParams) (*entities.User, error) {
	if params.PreferredTranslation == "" {
		params.PreferredTranslation = entities.DefaultTranslation
	}

	user := &entities.User{
		ID:                   entities.NewID(),
		Name:                 params.Name,
		Phone:                params.Phone,
		Denomination:         params.Denomination,
		PreferredTranslation: params.PreferredTranslation,
		CreatedAt:            entities.Now(),
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, dberr.Wrap("create user", err)
	}
	return user, nil
}

// GetByPhone retrieves a user by phone number, the sole login mechanism.
// A missing row yields dberr.ErrNotFound.
func (r *Repository) GetByPhone(phone string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, dberr.Wrap("get user by phone", err)
	}
	return &user, nil
}

// GetByID retrieves a user by id. A missing row yields dberr.ErrNotFound.
func (r *Repository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, dberr.Wrap("get user by id", err)
	}
	return &user, nil
}

// Update applies the supplied patch fields to the user and returns the
// updated record. Absent fields are left untouched; an empty patch only
// verifies the row exists. A missing id yields dberr.ErrNotFound.
func (r *Repository) Update(id string, patch entities.UserPatch) (*entities.User, error) {
	updates := map[string]any{}
	if patch.Name.IsSet() {
		updates["name"] = patch.Name.Value()
	}
	if patch.Denomination.IsSet() {
		updates["denomination"] = patch.Denomination.Value()
	}
	if patch.PreferredTranslation.IsSet() {
		updates["preferredTranslation"] = patch.PreferredTranslation.Value()
	}

	if len(updates) == 0 {
		return r.GetByID(id)
	}

	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, dberr.Wrap("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update user: %w", dberr.ErrNotFound)
	}

	return r.GetByID(id)
}

// ListAll returns every user, most recently created first.
func (r *Repository) ListAll() ([]entities.User, error) {
	list := make([]entities.User, 0)
	if err := r.db.Order("createdAt DESC").Find(&list).Error; err != nil {
		return nil, dberr.Wrap("list users", err)
	}
	return list, nil
}

// DeleteAll removes every user row. It does not touch verses; with the
// foreign-key constraint enabled this fails with dberr.ErrConstraintViolation
// while any verses remain, so callers that want a full wipe should go through
// the facade's ResetAll instead.
func (r *Repository) DeleteAll() error {
	if err := r.db.Exec("DELETE FROM users").Error; err != nil {
		return dberr.Wrap("delete all users", err)
	}
	return nil
}
