package http

import (
	"github.com/gin-gonic/gin"

	"versekeeper/internal/entities"
)

// ProfileAuditor records profile changes. May be nil.
type ProfileAuditor interface {
	LogProfile(userID, description string, err error)
}

// ProfileController handles the authenticated user's own account record.
// Name and denomination are editable; phone number and creation time are
// not, since the phone number is the login identifier.
type ProfileController struct {
	store   ProfileStore
	auditor ProfileAuditor
}

func NewProfileController(store ProfileStore, auditor ProfileAuditor) *ProfileController {
	return &ProfileController{store: store, auditor: auditor}
}

type updateProfileRequest struct {
	Name                 *string `json:"name"`
	Denomination         *string `json:"denomination"`
	PreferredTranslation *string `json:"preferredTranslation"`
}

// Get returns the authenticated user's profile.
func (pc *ProfileController) Get(c *gin.Context) {
	user, err := pc.store.GetUserByID(GetUserID(c))
	if err != nil {
		respondStorageError(c, err, "user")
		return
	}
	c.JSON(200, user)
}

// Update applies a partial update to the authenticated user's profile.
func (pc *ProfileController) Update(c *gin.Context) {
	userID := GetUserID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var patch entities.UserPatch
	if req.Name != nil {
		patch.Name = entities.Set(*req.Name)
	}
	if req.Denomination != nil {
		patch.Denomination = entities.Set(*req.Denomination)
	}
	if req.PreferredTranslation != nil {
		patch.PreferredTranslation = entities.Set(*req.PreferredTranslation)
	}

	user, err := pc.store.UpdateUser(userID, patch)
	if err != nil {
		pc.audit(userID, "profile update failed", err)
		respondStorageError(c, err, "user")
		return
	}

	pc.audit(userID, "profile updated", nil)
	c.JSON(200, user)
}

func (pc *ProfileController) audit(userID, description string, err error) {
	if pc.auditor == nil {
		return
	}
	pc.auditor.LogProfile(userID, description, err)
}
