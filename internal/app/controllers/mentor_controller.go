package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/search"
	"github.com/karthikdm21/Saathi-Voice/internal/app/services"
	"github.com/karthikdm21/Saathi-Voice/internal/middleware"
)

var mentorErrors = middleware.ErrorMessages{
	BadRequest: "Invalid mentor data",
	NotFound:   "Mentor not found",
	Internal:   "Failed to fetch mentor",
}

// MentorController handles mentor profile and search endpoints
type MentorController struct {
	mentorService services.MentorService
}

// NewMentorController creates a new mentor controller
func NewMentorController(mentorService services.MentorService) *MentorController {
	return &MentorController{mentorService: mentorService}
}

// CreateMentor creates a mentor profile
// @Summary Create mentor profile
// @Tags mentors
// @Accept json
// @Produce json
// @Param request body dto.CreateMentorRequest true "Mentor data"
// @Success 200 {object} models.Mentor
// @Failure 400 {object} dto.ErrorResponse "Invalid mentor data"
// @Router /mentors [post]
func (c *MentorController) CreateMentor(ctx *gin.Context) {
	var req dto.CreateMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, mentorErrors.BadRequest)
		return
	}

	mentor, err := c.mentorService.CreateMentor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{BadRequest: mentorErrors.BadRequest, Internal: "Failed to create mentor"})
		return
	}
	ctx.JSON(http.StatusOK, mentor)
}

// GetMentorByID returns a mentor joined with its user
// @Router /mentors/{id} [get]
func (c *MentorController) GetMentorByID(ctx *gin.Context) {
	mentor, err := c.mentorService.GetMentorByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, mentorErrors)
		return
	}
	ctx.JSON(http.StatusOK, mentor)
}

// GetMentorByUserID returns the mentor profile of a user
// @Router /mentors/user/{userId} [get]
func (c *MentorController) GetMentorByUserID(ctx *gin.Context) {
	mentor, err := c.mentorService.GetMentorByUserID(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, mentorErrors)
		return
	}
	ctx.JSON(http.StatusOK, mentor)
}

// UpdateMentor applies a partial update
// @Router /mentors/{id} [put]
func (c *MentorController) UpdateMentor(ctx *gin.Context) {
	var req dto.UpdateMentorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, mentorErrors.BadRequest)
		return
	}

	mentor, err := c.mentorService.UpdateMentor(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{
			BadRequest: mentorErrors.BadRequest,
			NotFound:   mentorErrors.NotFound,
			Internal:   "Failed to update mentor",
		})
		return
	}
	ctx.JSON(http.StatusOK, mentor)
}

// SearchMentors filters mentors by field, languages and minimum experience
// @Summary Search mentors
// @Tags mentors
// @Produce json
// @Param fieldOfExpertise query string false "Exact field, or all"
// @Param languages query []string false "Any of these languages, or any" collectionFormat(multi)
// @Param experience query string false "Minimum years, or any"
// @Success 200 {array} models.MentorWithUser
// @Failure 400 {object} dto.ErrorResponse "Invalid search parameters"
// @Router /mentors/search [get]
func (c *MentorController) SearchMentors(ctx *gin.Context) {
	criteria, err := search.ParseQuery(ctx.Request.URL.Query())
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{BadRequest: "Invalid search parameters"})
		return
	}

	mentors, err := c.mentorService.SearchMentors(ctx.Request.Context(), criteria)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{Internal: "Failed to search mentors"})
		return
	}
	ctx.JSON(http.StatusOK, mentors)
}
