package handlers

import (
	"errors"
	"net/http"

	"github.com/devmarket/marketplace-api/internal/dto"
	apierrors "github.com/devmarket/marketplace-api/internal/errors"
	"github.com/devmarket/marketplace-api/internal/middleware"
	"github.com/devmarket/marketplace-api/internal/services"
	"github.com/devmarket/marketplace-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// AdminHandler coordinates admin moderation HTTP handlers.
type AdminHandler struct {
	accountService *services.AccountService
	auditService   *services.AuditService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountService *services.AccountService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{
		accountService: accountService,
		auditService:   auditService,
	}
}

// ListPendingDevelopers returns developer accounts awaiting approval.
func (h *AdminHandler) ListPendingDevelopers(c *gin.Context) {
	users, err := h.accountService.ListPendingDevelopers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch pending developers")
		return
	}

	items := make([]dto.UserDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, gin.H{"developers": items})
}

// ApproveAccount activates a pending developer account.
func (h *AdminHandler) ApproveAccount(c *gin.Context) {
	admin, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.Approve(userID, &admin); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account approved"})
}

// RejectAccount declines a pending developer account.
func (h *AdminHandler) RejectAccount(c *gin.Context) {
	admin, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.Reject(userID, &admin); err != nil {
		respondAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account rejected"})
}

// FlagAccount sets the moderation flag on an account.
func (h *AdminHandler) FlagAccount(c *gin.Context) {
	h.setFlag(c, true)
}

// UnflagAccount clears the moderation flag on an account.
func (h *AdminHandler) UnflagAccount(c *gin.Context) {
	h.setFlag(c, false)
}

func (h *AdminHandler) setFlag(c *gin.Context, flagged bool) {
	admin, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.accountService.SetFlagged(userID, flagged, &admin); err != nil {
		respondAccountError(c, err)
		return
	}

	message := "Account flagged"
	if !flagged {
		message = "Account unflagged"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ListActivity returns the audit trail, newest first.
func (h *AdminHandler) ListActivity(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.auditService.List(params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch activity log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": entries,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func respondAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccountNotPending):
		apierrors.Conflict(c, apierrors.ErrCodeNotPending, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
