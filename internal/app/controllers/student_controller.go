package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/services"
	"github.com/karthikdm21/Saathi-Voice/internal/middleware"
)

var studentErrors = middleware.ErrorMessages{
	BadRequest: "Invalid student data",
	NotFound:   "Student not found",
	Internal:   "Failed to fetch student",
}

// StudentController handles student profile endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new student controller
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateStudent creates a student profile
// @Summary Create student profile
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student data"
// @Success 200 {object} models.Student
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, studentErrors.BadRequest)
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{BadRequest: studentErrors.BadRequest, Internal: "Failed to create student"})
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// GetStudentByID returns a student joined with its user
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.StudentWithUser
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, studentErrors)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// GetStudentByUserID returns the student profile of a user
// @Summary Get student by user ID
// @Tags students
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/user/{userId} [get]
func (c *StudentController) GetStudentByUserID(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, studentErrors)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// UpdateStudent applies a partial update
// @Summary Update student profile
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} models.Student
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, studentErrors.BadRequest)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{
			BadRequest: studentErrors.BadRequest,
			NotFound:   studentErrors.NotFound,
			Internal:   "Failed to update student",
		})
		return
	}
	ctx.JSON(http.StatusOK, student)
}
