package http

import (
	"versekeeper/internal/database/verses"
	"versekeeper/internal/entities"
)

// This file consolidates the store interface definitions used by HTTP
// controllers. Each controller depends only on the methods it actually uses;
// *database.Database satisfies all of them.

// VerseStore provides the verse operations the verses controller needs.
type VerseStore interface {
	AddVerse(params verses.CreateParams) (*entities.Verse, error)
	GetVerse(id string) (*entities.Verse, error)
	ListVersesByUser(userID string) ([]entities.Verse, error)
	UpdateVerse(id string, patch entities.VersePatch) (*entities.Verse, error)
	DeleteVerse(id string) error
}

// ProfileStore provides the user operations the profile controller needs.
type ProfileStore interface {
	GetUserByID(id string) (*entities.User, error)
	UpdateUser(id string, patch entities.UserPatch) (*entities.User, error)
}

// DebugStore provides the broad access the debug controller needs.
type DebugStore interface {
	ListUsers() ([]entities.User, error)
	ListAllVerses() ([]entities.Verse, error)
	ResetAll() error
}
