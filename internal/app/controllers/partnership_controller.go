package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/synqit/synqit/internal/app/models/dto"
	"github.com/synqit/synqit/internal/app/services"
	"github.com/synqit/synqit/internal/middleware"
)

// PartnershipController handles partnership related operations
type PartnershipController struct {
	partnershipService services.PartnershipService
	logger             zerolog.Logger
}

// NewPartnershipController creates a new PartnershipController
func NewPartnershipController(partnershipService services.PartnershipService, logger zerolog.Logger) *PartnershipController {
	return &PartnershipController{
		partnershipService: partnershipService,
		logger:             logger,
	}
}

// Create proposes a partnership
// @Summary Propose a partnership
// @Tags partnerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePartnershipRequest true "Partnership proposal"
// @Success 201 {object} dto.APIResponse{data=models.Partnership}
// @Failure 400 {object} dto.APIResponse "Self-partnership or missing project"
// @Failure 404 {object} dto.APIResponse "Receiver not found"
// @Router /partnerships [post]
func (c *PartnershipController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreatePartnershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	partnership, err := c.partnershipService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessMessageResponse("Partnership request sent", partnership))
}

// Respond accepts or rejects a pending partnership
// @Summary Respond to a partnership request
// @Tags partnerships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Partnership ID"
// @Param request body dto.RespondPartnershipRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.Partnership}
// @Failure 403 {object} dto.APIResponse "Caller is not the receiver"
// @Failure 404 {object} dto.APIResponse "Partnership not found"
// @Failure 409 {object} dto.APIResponse "Already responded"
// @Router /partnerships/{id}/respond [post]
func (c *PartnershipController) Respond(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid partnership id"))
		return
	}

	var req dto.RespondPartnershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	partnership, err := c.partnershipService.Respond(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(partnership))
}

// List returns the caller's partnerships
// @Summary List partnerships
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param role query string false "sent, received or all" default(all)
// @Success 200 {object} dto.APIResponse{data=[]models.Partnership}
// @Router /partnerships [get]
func (c *PartnershipController) List(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	role := ctx.DefaultQuery("role", "all")

	partnerships, err := c.partnershipService.List(ctx.Request.Context(), userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(partnerships))
}

// GetByID returns one partnership for a participant
// @Summary Get a partnership
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Partnership ID"
// @Success 200 {object} dto.APIResponse{data=models.Partnership}
// @Failure 403 {object} dto.APIResponse "Caller is not a participant"
// @Failure 404 {object} dto.APIResponse "Partnership not found"
// @Router /partnerships/{id} [get]
func (c *PartnershipController) GetByID(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid partnership id"))
		return
	}

	partnership, err := c.partnershipService.GetByID(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(partnership))
}

// Stats summarizes the caller's partnerships
// @Summary Partnership statistics
// @Tags partnerships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PartnershipStats}
// @Router /partnerships/stats [get]
func (c *PartnershipController) Stats(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	stats, err := c.partnershipService.Stats(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
