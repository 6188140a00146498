package api

import (
	"github.com/divops/tarotai/internal/api/handler"
	"github.com/divops/tarotai/internal/api/middleware"
	"github.com/divops/tarotai/internal/logger"
	"github.com/divops/tarotai/internal/service"
	"github.com/gin-gonic/gin"
)

// RouterDeps bundles the services the router wires into handlers.
type RouterDeps struct {
	Readings    *service.ReadingService
	Enhancer    *service.EnhancerService
	Discussions *service.DiscussionService
	Feedback    *service.FeedbackService
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(deps RouterDeps, mode string, cors middleware.CORSConfig, log *logger.Logger) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	readingHandler := handler.NewReadingHandler(deps.Readings, deps.Enhancer)
	discussionHandler := handler.NewDiscussionHandler(deps.Discussions)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback, deps.Discussions)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Readings
		v1.GET("/readings/daily", readingHandler.Daily)
		v1.POST("/readings/ask", readingHandler.Ask)
		v1.POST("/readings/enhanced", readingHandler.Enhance)

		// Discussions
		v1.POST("/discussions", discussionHandler.Start)
		v1.GET("/discussions", discussionHandler.List)
		v1.GET("/discussions/:id", discussionHandler.Get)
		v1.POST("/discussions/:id/followup", discussionHandler.Followup)

		// Feedback
		v1.POST("/discussions/:id/feedback", feedbackHandler.Submit)
		v1.GET("/discussions/:id/feedback", feedbackHandler.ListForDiscussion)
		v1.GET("/feedback/stats", feedbackHandler.Stats)
	}

	return r
}
