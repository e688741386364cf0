package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/services"
	"github.com/synqit/synqit/internal/middleware"
	"github.com/synqit/synqit/internal/pkg/helpers"
)

// NotificationController handles notification related operations
type NotificationController struct {
	notificationService services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the caller's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	unreadOnly := ctx.Query("unread") == "true"

	page, size := helpers.ParsePaginationParams(ctx)
	notifications, pagination, err := c.notificationService.List(ctx.Request.Context(), userID, unreadOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      notifications,
		Pagination: *pagination,
	}))
}

// UnreadCount returns the caller's unread notification count
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse}
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	count, err := c.notificationService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{UnreadCount: count}))
}

// MarkRead marks one notification as read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse "Notification belongs to another user"
// @Failure 404 {object} dto.APIResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid notification id"))
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Notification marked read", nil))
}

// MarkAllRead marks all of the caller's notifications as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse}
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	updated, err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MarkReadResponse{UpdatedCount: int(updated)}))
}

// Delete removes one of the caller's notifications
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse "Notification belongs to another user"
// @Failure 404 {object} dto.APIResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid notification id"))
		return
	}

	if err := c.notificationService.Delete(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Notification deleted", nil))
}
