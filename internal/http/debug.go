package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"versekeeper/internal/audit"
	"versekeeper/internal/entities"
)

// DebugController exposes the development endpoints the mobile client's
// debug screen talks to: raw listings, a full reset and a JSON snapshot
// export. Only mounted when debug mode is enabled in the configuration.
type DebugController struct {
	store    DebugStore
	auditSvc *audit.Service
	exporter *audit.Exporter
}

func NewDebugController(store DebugStore, auditSvc *audit.Service, exporter *audit.Exporter) *DebugController {
	return &DebugController{
		store:    store,
		auditSvc: auditSvc,
		exporter: exporter,
	}
}

// RegisterRoutes mounts the debug endpoints on the router.
func (dc *DebugController) RegisterRoutes(router *gin.Engine) {
	router.GET("/debug/users", dc.ListUsers)
	router.GET("/debug/verses", dc.ListVerses)
	router.GET("/debug/audit", dc.ListAuditEvents)
	router.POST("/debug/reset", dc.Reset)
	router.POST("/debug/export", dc.Export)
}

// ListUsers dumps every user row.
func (dc *DebugController) ListUsers(c *gin.Context) {
	users, err := dc.store.ListUsers()
	if err != nil {
		respondStorageError(c, err, "users")
		return
	}
	c.IndentedJSON(200, gin.H{"count": len(users), "users": users})
}

// ListVerses dumps every verse row across all users.
func (dc *DebugController) ListVerses(c *gin.Context) {
	verses, err := dc.store.ListAllVerses()
	if err != nil {
		respondStorageError(c, err, "verses")
		return
	}
	c.IndentedJSON(200, gin.H{"count": len(verses), "verses": verses})
}

// ListAuditEvents returns a page of the activity log, newest first.
func (dc *DebugController) ListAuditEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	events, total, err := dc.auditSvc.GetEvents(c.Query("userId"), limit, offset)
	if err != nil {
		respondStorageError(c, err, "audit events")
		return
	}

	c.IndentedJSON(200, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

// Reset wipes all users and verses. The row counts are recorded in the
// audit log before the wipe so the event says what was destroyed.
func (dc *DebugController) Reset(c *gin.Context) {
	users, _ := dc.store.ListUsers()
	verses, _ := dc.store.ListAllVerses()

	err := dc.store.ResetAll()
	dc.auditSvc.LogReset(len(users), len(verses), err)
	if err != nil {
		respondStorageError(c, err, "database")
		return
	}

	respondSuccess(c, "database reset")
}

// Export writes a JSON snapshot of all data to the export directory and
// returns the generated filename.
func (dc *DebugController) Export(c *gin.Context) {
	users, err := dc.store.ListUsers()
	if err != nil {
		respondStorageError(c, err, "users")
		return
	}
	verses, err := dc.store.ListAllVerses()
	if err != nil {
		respondStorageError(c, err, "verses")
		return
	}

	filename, err := dc.exporter.SaveSnapshot(&audit.Snapshot{
		ExportedAt: entities.Now(),
		Users:      users,
		Verses:     verses,
	})
	if err != nil {
		respondInternalError(c, err, "snapshot export")
		return
	}

	c.JSON(200, gin.H{"filename": filename, "users": len(users), "verses": len(verses)})
}
