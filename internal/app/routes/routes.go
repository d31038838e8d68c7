package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/controllers"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/websocket"
)

// SetupRouter configures all application routes. wsHandler may be nil when the live feed is disabled.
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	mentorController *controllers.MentorController,
	mentorshipController *controllers.MentorshipController,
	voiceMessageController *controllers.VoiceMessageController,
	wsHandler *websocket.Handler,
) {
	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("", userController.CreateUser)
		users.GET("/by-email", userController.GetUserByEmail)
		users.GET("/:id", userController.GetUserByID)
	}

	students := api.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("/user/:userId", studentController.GetStudentByUserID)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
	}

	mentors := api.Group("/mentors")
	{
		mentors.POST("", mentorController.CreateMentor)
		mentors.GET("/search", mentorController.SearchMentors)
		mentors.GET("/user/:userId", mentorController.GetMentorByUserID)
		mentors.GET("/:id", mentorController.GetMentorByID)
		mentors.PUT("/:id", mentorController.UpdateMentor)
	}

	mentorships := api.Group("/mentorships")
	{
		mentorships.POST("", mentorshipController.CreateMentorship)
		mentorships.GET("/student/:studentId", mentorshipController.GetMentorshipsByStudent)
		mentorships.GET("/mentor/:mentorId", mentorshipController.GetMentorshipsByMentor)
		mentorships.GET("/:id", mentorshipController.GetMentorship)
	}

	voiceMessages := api.Group("/voice-messages")
	{
		voiceMessages.POST("", voiceMessageController.CreateVoiceMessage)
		voiceMessages.POST("/upload", voiceMessageController.UploadAudio)
		voiceMessages.POST("/transcribe", voiceMessageController.TranscribeAudio)
		voiceMessages.PUT("/:id", voiceMessageController.UpdateVoiceMessage)
		voiceMessages.GET("/mentorship/:mentorshipId", voiceMessageController.GetVoiceMessagesByMentorship)
		if wsHandler != nil {
			voiceMessages.GET("/mentorship/:mentorshipId/ws", wsHandler.HandleConnection)
		}
	}

	// Health check endpoints (public)
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
	api.GET("/health", health)
	router.GET("/ping", health)
}

// SetupStatic serves stored uploads, e.g. /uploads/audio/voice-<uuid>.webm
func SetupStatic(router *gin.Engine, urlPrefix, storagePath string) {
	router.Static(urlPrefix, storagePath)
}
