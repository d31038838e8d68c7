package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/services"
	"github.com/karthikdm21/Saathi-Voice/internal/middleware"
)

var userErrors = middleware.ErrorMessages{
	BadRequest: "Invalid user data",
	NotFound:   "User not found",
	Internal:   "Failed to fetch user",
}

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser registers a student or mentor identity
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User data"
// @Success 200 {object} models.User
// @Failure 400 {object} dto.ErrorResponse "Invalid user data"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, userErrors.BadRequest)
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{BadRequest: userErrors.BadRequest, Internal: "Failed to create user"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// GetUserByID retrieves user information by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	user, err := c.userService.GetUserByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, userErrors)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// GetUserByEmail looks a user up by email, used to resume a session
// @Summary Get user by email
// @Tags users
// @Produce json
// @Param email query string true "Email address"
// @Success 200 {object} models.User
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/by-email [get]
func (c *UserController) GetUserByEmail(ctx *gin.Context) {
	var query dto.UserByEmailQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		middleware.HandleBindError(ctx, err, "Invalid email")
		return
	}

	user, err := c.userService.GetUserByEmail(ctx.Request.Context(), query.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err, userErrors)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
