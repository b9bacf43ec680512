package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizstage/quizstage-backend/internal/handler"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	runHandler *handler.RunHandler,
	questionHandler *handler.QuestionHandler,
	answerHandler *handler.AnswerHandler,
	tagHandler *handler.TagHandler,
	syncHandler *handler.SyncHandler,
	publishedHandler *handler.PublishedHandler,
) {
	api := router.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Workflow runs
	runs := api.Group("/runs")
	runs.POST("", runHandler.CreateRun)
	runs.GET("", runHandler.ListRuns)
	runs.GET("/:id", runHandler.GetRun)
	runs.DELETE("/:id", runHandler.DeleteRun)

	// Generation into staging
	runs.POST("/:id/generate-questions", questionHandler.GenerateQuestions)
	runs.GET("/:id/questions", questionHandler.ListQuestions)
	runs.POST("/:id/generate-answers", answerHandler.GenerateAnswers)
	runs.GET("/:id/answers", answerHandler.ListAnswers)

	// Sync staging to published
	runs.POST("/:id/sync", syncHandler.Sync)

	// Reviewer decisions
	questions := api.Group("/questions")
	questions.PATCH("/:id/approval", questionHandler.UpdateApproval)
	questions.GET("/:id/tags", questionHandler.GetTags)
	questions.PUT("/:id/tags", questionHandler.UpdateTags)

	answers := api.Group("/answers")
	answers.PATCH("/:id/approval", answerHandler.UpdateApproval)

	// Tags
	api.GET("/tags", tagHandler.ListTags)

	// Published view (read only)
	published := api.Group("/published")
	published.GET("/questions", publishedHandler.ListQuestions)
}
