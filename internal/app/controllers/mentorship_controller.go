package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/services"
	"github.com/karthikdm21/Saathi-Voice/internal/middleware"
)

var mentorshipListErrors = middleware.ErrorMessages{Internal: "Failed to fetch mentorships"}

// MentorshipController handles mentorship endpoints
type MentorshipController struct {
	mentorshipService services.MentorshipService
}

// NewMentorshipController creates a new mentorship controller
func NewMentorshipController(mentorshipService services.MentorshipService) *MentorshipController {
	return &MentorshipController{mentorshipService: mentorshipService}
}

// CreateMentorship pairs a student with a mentor
// @Summary Create mentorship
// @Tags mentorships
// @Accept json
// @Produce json
// @Param request body dto.CreateMentorshipRequest true "Mentorship data"
// @Success 200 {object} models.Mentorship
// @Failure 400 {object} dto.ErrorResponse "Invalid mentorship data"
// @Router /mentorships [post]
func (c *MentorshipController) CreateMentorship(ctx *gin.Context) {
	var req dto.CreateMentorshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, "Invalid mentorship data")
		return
	}

	mentorship, err := c.mentorshipService.CreateMentorship(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{BadRequest: "Invalid mentorship data", Internal: "Failed to create mentorship"})
		return
	}
	ctx.JSON(http.StatusOK, mentorship)
}

// GetMentorship returns one mentorship with both profiles
// @Router /mentorships/{id} [get]
func (c *MentorshipController) GetMentorship(ctx *gin.Context) {
	mentorship, err := c.mentorshipService.GetMentorship(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{NotFound: "Mentorship not found", Internal: "Failed to fetch mentorship"})
		return
	}
	ctx.JSON(http.StatusOK, mentorship)
}

// GetMentorshipsByStudent lists a student's mentorships
// @Router /mentorships/student/{studentId} [get]
func (c *MentorshipController) GetMentorshipsByStudent(ctx *gin.Context) {
	mentorships, err := c.mentorshipService.GetMentorshipsByStudent(ctx.Request.Context(), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, mentorshipListErrors)
		return
	}
	ctx.JSON(http.StatusOK, mentorships)
}

// GetMentorshipsByMentor lists a mentor's mentorships
// @Router /mentorships/mentor/{mentorId} [get]
func (c *MentorshipController) GetMentorshipsByMentor(ctx *gin.Context) {
	mentorships, err := c.mentorshipService.GetMentorshipsByMentor(ctx.Request.Context(), ctx.Param("mentorId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, mentorshipListErrors)
		return
	}
	ctx.JSON(http.StatusOK, mentorships)
}
