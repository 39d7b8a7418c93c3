package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/repositories"
	"github.com/SAP-F-2025/rmib-profile-service/internal/services"
	"github.com/SAP-F-2025/rmib-profile-service/internal/utils"
)

type AchievementHandler struct {
	BaseHandler
	service services.AchievementService
}

func NewAchievementHandler(service services.AchievementService, logger utils.Logger) *AchievementHandler {
	return &AchievementHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAchievement records a new achievement for a student
// @Summary Create achievement
// @Tags achievements
// @Accept json
// @Produce json
// @Success 201 {object} models.AchievementResponse
// @Failure 404 {object} ErrorResponse "Student or type not found"
// @Router /achievements [post]
func (h *AchievementHandler) CreateAchievement(c *gin.Context) {
	var req models.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Creating achievement", "student_id", req.StudentID)

	response, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateAchievement modifies an achievement and resets its verification
// @Summary Update achievement
// @Tags achievements
// @Accept json
// @Produce json
// @Success 200 {object} models.AchievementResponse
// @Failure 404 {object} ErrorResponse "Achievement not found"
// @Router /achievements/{id} [put]
func (h *AchievementHandler) UpdateAchievement(c *gin.Context) {
	achievementID, ok := h.parseAchievementID(c)
	if !ok {
		return
	}

	var req models.UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.service.Update(c.Request.Context(), achievementID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteAchievement removes an achievement
// @Summary Delete achievement
// @Tags achievements
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Achievement not found"
// @Router /achievements/{id} [delete]
func (h *AchievementHandler) DeleteAchievement(c *gin.Context) {
	achievementID, ok := h.parseAchievementID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting achievement", "achievement_id", achievementID)

	if err := h.service.Delete(c.Request.Context(), achievementID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Achievement deleted"})
}

// VerifyAchievement marks an achievement as verified and recalculates its points
// @Summary Verify achievement
// @Tags achievements
// @Produce json
// @Success 200 {object} models.AchievementResponse
// @Failure 409 {object} ErrorResponse "Already verified"
// @Router /achievements/{id}/verify [post]
func (h *AchievementHandler) VerifyAchievement(c *gin.Context) {
	achievementID, ok := h.parseAchievementID(c)
	if !ok {
		return
	}

	verifiedBy := c.GetHeader("X-Actor-ID")
	if verifiedBy == "" {
		verifiedBy = "admin"
	}

	h.LogRequest(c, "Verifying achievement", "achievement_id", achievementID, "verified_by", verifiedBy)

	response, err := h.service.Verify(c.Request.Context(), achievementID, verifiedBy)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStudentAchievements lists all achievements for one student
// @Summary List student achievements
// @Tags achievements
// @Produce json
// @Success 200 {array} models.AchievementResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id}/achievements [get]
func (h *AchievementHandler) GetStudentAchievements(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid student ID", err)
		return
	}

	achievements, svcErr := h.service.GetByStudent(c.Request.Context(), uint(studentID))
	if svcErr != nil {
		h.handleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"achievements": achievements,
		"total":        len(achievements),
	})
}

// CreateAchievementType adds an entry to the achievement type catalog
// @Summary Create achievement type
// @Tags achievement-types
// @Accept json
// @Produce json
// @Success 201 {object} models.AchievementType
// @Failure 409 {object} ErrorResponse "Name already exists"
// @Router /achievement-types [post]
func (h *AchievementHandler) CreateAchievementType(c *gin.Context) {
	var req models.CreateAchievementTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Creating achievement type", "name", req.Name)

	achievementType, err := h.service.CreateType(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, achievementType)
}

// ListAchievementTypes lists the achievement type catalog
// @Summary List achievement types
// @Tags achievement-types
// @Produce json
// @Param group query string false "Filter by interest group"
// @Param active query bool false "Filter by active flag"
// @Router /achievement-types [get]
func (h *AchievementHandler) ListAchievementTypes(c *gin.Context) {
	filters := repositories.AchievementTypeFilters{
		Limit:  parseIntQuery(c, "limit", 100, 500),
		Offset: parseIntQuery(c, "offset", 0, 1<<30),
	}

	if group := c.Query("group"); group != "" {
		achievementGroup := models.AchievementGroup(group)
		filters.Group = &achievementGroup
	}
	if active := c.Query("active"); active != "" {
		isActive := active == "true"
		filters.IsActive = &isActive
	}

	types, total, err := h.service.ListTypes(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"achievement_types": types,
		"total":             total,
	})
}

func (h *AchievementHandler) parseAchievementID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid achievement ID", err)
		return 0, false
	}
	return uint(id), true
}
