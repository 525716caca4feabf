package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/domain"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/moderation"
)

type ModerationHandler struct {
	moderationUseCase *moderation.ModerationUseCase
}

func NewModerationHandler(moderationUseCase *moderation.ModerationUseCase) *ModerationHandler {
	return &ModerationHandler{moderationUseCase: moderationUseCase}
}

type submitReportRequest struct {
	ReportedUserID int    `json:"reported_user_id" binding:"required"`
	Description    string `json:"description" binding:"required"`
}

// SubmitReport handles POST /api/v1/reports (any authenticated user).
func (h *ModerationHandler) SubmitReport(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	report, err := h.moderationUseCase.SubmitReport(c.Request.Context(), userID, req.ReportedUserID, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// ListReports handles GET /api/v1/moderation/reports (moderators only).
func (h *ModerationHandler) ListReports(c *gin.Context) {
	var status *domain.ReportStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.ReportStatus(raw)
		status = &s
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	reports, err := h.moderationUseCase.ListReports(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

type applyActionRequest struct {
	Action moderation.Action `json:"action" binding:"required,oneof=warn reduce_score ban"`
	Note   string            `json:"note" binding:"omitempty,max=500"`
}

// ApplyAction handles POST /api/v1/moderation/reports/:id/action
// (moderators only).
func (h *ModerationHandler) ApplyAction(c *gin.Context) {
	moderatorID, _ := middleware.GetUserID(c)
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report id"})
		return
	}

	var req applyActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	report, err := h.moderationUseCase.ApplyAction(c.Request.Context(), moderatorID, reportID, req.Action, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

type updateStatusRequest struct {
	Status domain.ReportStatus `json:"status" binding:"required,oneof=pending reviewing resolved dismissed"`
}

// UpdateStatus handles PATCH /api/v1/moderation/reports/:id/status
// (moderators only).
func (h *ModerationHandler) UpdateStatus(c *gin.Context) {
	moderatorID, _ := middleware.GetUserID(c)
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid report id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	report, err := h.moderationUseCase.UpdateStatus(c.Request.Context(), moderatorID, reportID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
