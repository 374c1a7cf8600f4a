package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/situgas/internal/domain"
	"github.com/KasumiMercury/situgas/internal/service/catalog"
)

type LookupHandler struct {
	lookups          domain.LookupRepository
	dashboardService *catalog.DashboardService
}

func NewLookupHandler(lookups domain.LookupRepository, dashboardService *catalog.DashboardService) *LookupHandler {
	return &LookupHandler{
		lookups:          lookups,
		dashboardService: dashboardService,
	}
}

func (h *LookupHandler) TaskStatuses(c *gin.Context) {
	statuses, err := h.lookups.ListStatuses(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, statuses)
}

func (h *LookupHandler) TaskPriorities(c *gin.Context) {
	priorities, err := h.lookups.ListPriorities(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, priorities)
}

func (h *LookupHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), currentUserID(c), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
