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

// MessageController handles messaging related operations
type MessageController struct {
	messageService services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// Send posts a message into a partnership thread
// @Summary Send a partnership message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 400 {object} dto.APIResponse "Empty content"
// @Failure 403 {object} dto.APIResponse "Caller is not a participant"
// @Failure 404 {object} dto.APIResponse "Partnership not found"
// @Router /messages/send [post]
func (c *MessageController) Send(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	message, err := c.messageService.Send(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// SendDirect posts a direct user-to-user message
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendDirectMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 400 {object} dto.APIResponse "Empty content or self-send"
// @Failure 404 {object} dto.APIResponse "Receiver not found"
// @Router /messages/direct [post]
func (c *MessageController) SendDirect(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SendDirectMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	message, err := c.messageService.SendDirect(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// PartnershipThread returns a partnership thread in chat order
// @Summary Get a partnership thread
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Partnership ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Failure 403 {object} dto.APIResponse "Caller is not a participant"
// @Failure 404 {object} dto.APIResponse "Partnership not found"
// @Router /messages/partnerships/{id} [get]
func (c *MessageController) PartnershipThread(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid partnership id"))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	messages, err := c.messageService.PartnershipThread(ctx.Request.Context(), id, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// DirectThread returns the direct thread with a peer in chat order
// @Summary Get a direct thread
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Peer user ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Failure 404 {object} dto.APIResponse "User not found"
// @Router /messages/direct/{userId} [get]
func (c *MessageController) DirectThread(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	peerID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid user id"))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	messages, err := c.messageService.DirectThread(ctx.Request.Context(), userID, peerID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// Conversations returns the caller's inbox
// @Summary List conversations
// @Description One entry per partnership the caller is in plus one per direct message peer, sorted by last activity
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /messages/conversations [get]
func (c *MessageController) Conversations(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	page, size := helpers.ParsePaginationParams(ctx)
	conversations, pagination, err := c.messageService.Conversations(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      conversations,
		Pagination: *pagination,
	}))
}

// MarkRead marks a partnership thread read
// @Summary Mark a partnership thread read
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkReadRequest true "Partnership to mark read"
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse}
// @Failure 403 {object} dto.APIResponse "Caller is not a participant"
// @Failure 404 {object} dto.APIResponse "Partnership not found"
// @Router /messages/mark-read [post]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.MarkReadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	result, err := c.messageService.MarkPartnershipRead(ctx.Request.Context(), userID, req.PartnershipID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// MarkDirectRead marks the direct thread with a peer read
// @Summary Mark a direct thread read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Peer user ID"
// @Success 200 {object} dto.APIResponse{data=dto.MarkReadResponse}
// @Router /messages/direct/{userId}/mark-read [post]
func (c *MessageController) MarkDirectRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	peerID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid user id"))
		return
	}

	result, err := c.messageService.MarkDirectRead(ctx.Request.Context(), userID, peerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// UnreadCount returns the caller's unread message count
// @Summary Get unread message count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse}
// @Router /messages/unread-count [get]
func (c *MessageController) UnreadCount(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	count, err := c.messageService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{UnreadCount: count}))
}

// Search finds the caller's messages by content substring
// @Summary Search messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param q query string true "Content substring"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Failure 400 {object} dto.APIResponse "Empty query"
// @Router /messages/search [get]
func (c *MessageController) Search(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	limit := helpers.ParseLimitParam(ctx, helpers.DefaultPageSize)
	messages, err := c.messageService.Search(ctx.Request.Context(), userID, ctx.Query("q"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// Stats summarizes the caller's messaging activity
// @Summary Message statistics
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MessageStats}
// @Router /messages/stats [get]
func (c *MessageController) Stats(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	stats, err := c.messageService.Stats(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// Recent returns the caller's newest messages
// @Summary Recent messages
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Router /messages/recent [get]
func (c *MessageController) Recent(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	limit := helpers.ParseLimitParam(ctx, helpers.DefaultPageSize)
	messages, err := c.messageService.Recent(ctx.Request.Context(), userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// Delete removes one of the caller's sent messages
// @Summary Delete a message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse "Caller is not the sender"
// @Failure 404 {object} dto.APIResponse "Message not found"
// @Router /messages/{id} [delete]
func (c *MessageController) Delete(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid message id"))
		return
	}

	if err := c.messageService.Delete(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Message deleted", nil))
}
