package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"versekeeper/internal/database/verses"
	"versekeeper/internal/entities"
)

// VerseAuditor records verse mutations. May be nil when auditing is not
// wired (tests).
type VerseAuditor interface {
	LogVerse(userID, action, verseID, reference string, err error)
}

// VersesController handles the /api/verses endpoints. Every operation is
// scoped to the authenticated user; a verse belonging to someone else is
// reported as missing rather than forbidden, so ids cannot be probed.
type VersesController struct {
	store   VerseStore
	auditor VerseAuditor
}

func NewVersesController(store VerseStore, auditor VerseAuditor) *VersesController {
	return &VersesController{store: store, auditor: auditor}
}

type createVerseRequest struct {
	Book        string   `json:"book"`
	Chapter     int      `json:"chapter"`
	Verse       int      `json:"verse"`
	Content     string   `json:"content"`
	Reference   string   `json:"reference"`
	Translation string   `json:"translation"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

// updateVerseRequest uses pointers so an absent field and an explicit empty
// value stay distinguishable.
type updateVerseRequest struct {
	Book        *string   `json:"book"`
	Chapter     *int      `json:"chapter"`
	Verse       *int      `json:"verse"`
	Content     *string   `json:"content"`
	Reference   *string   `json:"reference"`
	Translation *string   `json:"translation"`
	Notes       *string   `json:"notes"`
	Tags        *[]string `json:"tags"`
}

func (r *updateVerseRequest) toPatch() entities.VersePatch {
	var patch entities.VersePatch
	if r.Book != nil {
		patch.Book = entities.Set(*r.Book)
	}
	if r.Chapter != nil {
		patch.Chapter = entities.Set(*r.Chapter)
	}
	if r.Verse != nil {
		patch.Verse = entities.Set(*r.Verse)
	}
	if r.Content != nil {
		patch.Content = entities.Set(*r.Content)
	}
	if r.Reference != nil {
		patch.Reference = entities.Set(*r.Reference)
	}
	if r.Translation != nil {
		patch.Translation = entities.Set(*r.Translation)
	}
	if r.Notes != nil {
		patch.Notes = entities.Set(*r.Notes)
	}
	if r.Tags != nil {
		patch.Tags = entities.Set(*r.Tags)
	}
	return patch
}

// Create adds a verse to the authenticated user's collection.
func (vc *VersesController) Create(c *gin.Context) {
	userID := GetUserID(c)

	var req createVerseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		respondBadRequest(c, "content is required")
		return
	}
	if strings.TrimSpace(req.Reference) == "" {
		respondBadRequest(c, "reference is required")
		return
	}

	verse, err := vc.store.AddVerse(verses.CreateParams{
		UserID:      userID,
		Book:        req.Book,
		Chapter:     req.Chapter,
		Verse:       req.Verse,
		Content:     req.Content,
		Reference:   req.Reference,
		Translation: req.Translation,
		Notes:       req.Notes,
		Tags:        req.Tags,
	})
	if err != nil {
		vc.audit(userID, "verse_create", "", req.Reference, err)
		respondStorageError(c, err, "verse")
		return
	}

	vc.audit(userID, "verse_create", verse.ID, verse.Reference, nil)
	respondCreated(c, verse)
}

// List returns the authenticated user's verses, newest first.
func (vc *VersesController) List(c *gin.Context) {
	userID := GetUserID(c)

	userVerses, err := vc.store.ListVersesByUser(userID)
	if err != nil {
		respondStorageError(c, err, "verses")
		return
	}

	c.JSON(200, gin.H{"verses": userVerses})
}

// Get returns one verse if it belongs to the authenticated user.
func (vc *VersesController) Get(c *gin.Context) {
	verse, ok := vc.ownedVerse(c)
	if !ok {
		return
	}
	c.JSON(200, verse)
}

// Update applies a partial update to an owned verse.
func (vc *VersesController) Update(c *gin.Context) {
	verse, ok := vc.ownedVerse(c)
	if !ok {
		return
	}

	var req updateVerseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := vc.store.UpdateVerse(verse.ID, req.toPatch())
	if err != nil {
		vc.audit(verse.UserID, "verse_update", verse.ID, verse.Reference, err)
		respondStorageError(c, err, "verse")
		return
	}

	vc.audit(updated.UserID, "verse_update", updated.ID, updated.Reference, nil)
	c.JSON(200, updated)
}

// Delete removes an owned verse.
func (vc *VersesController) Delete(c *gin.Context) {
	verse, ok := vc.ownedVerse(c)
	if !ok {
		return
	}

	if err := vc.store.DeleteVerse(verse.ID); err != nil {
		vc.audit(verse.UserID, "verse_delete", verse.ID, verse.Reference, err)
		respondStorageError(c, err, "verse")
		return
	}

	vc.audit(verse.UserID, "verse_delete", verse.ID, verse.Reference, nil)
	respondSuccess(c, "verse deleted")
}

// ownedVerse loads the :id verse and checks it belongs to the authenticated
// user. Responds 404 and returns false otherwise.
func (vc *VersesController) ownedVerse(c *gin.Context) (*entities.Verse, bool) {
	userID := GetUserID(c)

	verse, err := vc.store.GetVerse(c.Param("id"))
	if err != nil {
		respondStorageError(c, err, "verse")
		return nil, false
	}

	if verse.UserID != userID {
		respondNotFound(c, "verse")
		return nil, false
	}

	return verse, true
}

func (vc *VersesController) audit(userID, action, verseID, reference string, err error) {
	if vc.auditor == nil {
		return
	}
	vc.auditor.LogVerse(userID, action, verseID, reference, err)
}
