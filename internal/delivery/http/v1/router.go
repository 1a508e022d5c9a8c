package v1

import (
	"net/http"

	"devjobs-backend/config"
	"devjobs-backend/internal/delivery/http/middleware"
	"devjobs-backend/internal/delivery/http/response"
	"devjobs-backend/internal/domain"
	"devjobs-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC domain.AuthUsecase
	JobUC  domain.JobUsecase
	Tokens *auth.TokenManager
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	root := r.Group("")

	// Health Check
	root.GET("/", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "DevJobs API is running", nil)
	})

	// Swagger
	root.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes are public; job mutations require a bearer token.
	protected := root.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))

	NewAuthHandler(root, deps.AuthUC)
	NewJobHandler(root, protected, deps.JobUC)

	return r
}
