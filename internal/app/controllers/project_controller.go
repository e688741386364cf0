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

// ProjectController handles project related operations
type ProjectController struct {
	projectService services.ProjectService
	logger         zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService, logger zerolog.Logger) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		logger:         logger,
	}
}

// Browse lists projects publicly
// @Summary Browse projects
// @Description Public project listing with optional text and blockchain filters
// @Tags projects
// @Produce json
// @Param q query string false "Name/description substring filter"
// @Param blockchain query string false "Blockchain filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /projects [get]
func (c *ProjectController) Browse(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := &dto.ProjectFilter{
		Query:      ctx.Query("q"),
		Blockchain: ctx.Query("blockchain"),
		Page:       page,
		Size:       size,
	}

	projects, pagination, err := c.projectService.Browse(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      projects,
		Pagination: *pagination,
	}))
}

// GetByID returns one project publicly
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=models.Project}
// @Failure 404 {object} dto.APIResponse "Project not found"
// @Router /projects/{id} [get]
func (c *ProjectController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid project id"))
		return
	}

	project, err := c.projectService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(project))
}

// GetMine returns the caller's project
// @Summary Get own project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Project}
// @Failure 404 {object} dto.APIResponse "No project yet"
// @Router /projects/me [get]
func (c *ProjectController) GetMine(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	project, err := c.projectService.GetMine(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(project))
}

// Save upserts the caller's project
// @Summary Save own project
// @Description Creates the caller's project on first save, updates it afterwards
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveProjectRequest true "Project fields"
// @Success 200 {object} dto.APIResponse{data=models.Project}
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Router /projects/me [put]
func (c *ProjectController) Save(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SaveProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	project, err := c.projectService.Save(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Project saved", project))
}

// Delete removes the caller's project
// @Summary Delete own project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "No project to delete"
// @Router /projects/me [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.projectService.DeleteMine(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Project deleted", nil))
}
