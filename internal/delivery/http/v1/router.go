package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CategoryUC    domain.CategoryUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	SavedJobUC    domain.SavedJobUsecase
	CVUC          domain.CVUsecase
	Config        *config.Config
}

// requester builds the caller identity from the auth middleware keys.
func requester(c *gin.Context) domain.Requester {
	return domain.Requester{
		ID:   c.GetString(string(domain.KeyUserID)),
		Role: c.GetString(string(domain.KeyUserRole)),
	}
}

// registerValidators hooks the status enums into gin's binding engine
// so bad values are rejected at bind time.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
			return domain.IsValidJobStatus(fl.Field().String())
		})
		_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
			return domain.IsValidApplicationStatus(fl.Field().String())
		})
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window),
	))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewCategoryHandler(v1, protected, deps.CategoryUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewSavedJobHandler(protected, deps.SavedJobUC)
		NewCVHandler(protected, deps.CVUC)
	}

	return r
}
