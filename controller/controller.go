package controller

import (
	"context"
	"net/http"

	"kishi-backend/dal"
	"kishi-backend/middelware"
	"kishi-backend/models"
	"kishi-backend/notifier"
	"kishi-backend/repository"
	"kishi-backend/services"
	"kishi-backend/utils/logger"
	"kishi-backend/utils/swagger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Contact    *ContactController
	Newsletter *NewsletterController
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	n, err := notifier.NewSESNotifier(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize SES notifier: %v", err)
	}

	repo := repository.NewRepository(dbclient, cfg, log)
	svc := services.NewServices(repo, n, cfg, log)

	return &Controller{
		Contact:    NewContactController(svc.Contact, cfg, log),
		Newsletter: NewNewsletterController(svc.Newsletter, cfg, log),
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	log := logger.NewLogger(config.LogLevel, config.LogFormat)

	logging := middelware.NewLoggingMiddleware(log)
	r.Use(logging.RequestLogger())
	r.Use(logging.Recovery())
	r.Use(middelware.NewCORSMiddleware(config).CORS())

	adminOnly := middelware.NewAdminMiddleware(config).RequireAdminKey()

	api := r.Group(basePath)

	// Health check endpoint (no auth required)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	contact := api.Group("/contact")
	contact.POST("", c.Contact.Submit)
	contact.GET("", adminOnly, c.Contact.List)
	contact.PATCH("/:id", adminOnly, c.Contact.UpdateStatus)

	newsletter := api.Group("/newsletter")
	newsletter.POST("", c.Newsletter.Subscribe)
	newsletter.GET("", adminOnly, c.Newsletter.List)
	newsletter.DELETE("/:id", c.Newsletter.Unsubscribe)

	// Swagger UI
	swaggerConfig := swagger.SwaggerConfig{
		Title:         "Kishi Consulting Backend API",
		SwaggerDocURL: "/swagger/doc.json",
	}
	r.GET("/swagger", swagger.ServeSwagger(swaggerConfig))
	r.GET("/swagger/", swagger.ServeSwagger(swaggerConfig))
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.File("./docs/swagger.json")
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	// Start server
	log.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// respondError writes the error envelope. Internal detail is surfaced in
// development only; production callers get the generic message.
func respondError(c *gin.Context, cfg *models.Config, status int, message string, err error) {
	resp := models.APIErrorResponse{Error: message}
	if status >= http.StatusInternalServerError {
		if cfg.IsDevelopment() && err != nil {
			resp.Message = err.Error()
		} else {
			resp.Message = "Something went wrong"
		}
	}
	c.JSON(status, resp)
}

// requestMeta captures the request-context attributes stored on new records
func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
