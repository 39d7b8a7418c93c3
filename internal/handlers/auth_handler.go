package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/rmib-profile-service/internal/models"
	"github.com/SAP-F-2025/rmib-profile-service/internal/services"
	"github.com/SAP-F-2025/rmib-profile-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Login authenticates a student by NISN and password
// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 423 {object} ErrorResponse "Account locked"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.LogRequest(c, "Login attempt", "nisn", req.NISN)

	response, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Unlock clears the account lock for a student
// @Summary Unlock a student account
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Student not found"
// @Router /students/{id}/unlock [post]
func (h *AuthHandler) Unlock(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid student ID", err)
		return
	}

	unlockedBy := c.GetHeader("X-Actor-ID")
	if unlockedBy == "" {
		unlockedBy = "admin"
	}

	h.LogRequest(c, "Unlocking account", "student_id", studentID)

	if err := h.service.Unlock(c.Request.Context(), uint(studentID), unlockedBy); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Account unlocked"})
}
