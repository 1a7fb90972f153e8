package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authapp "centrex/internal/application/auth"
	calleridapp "centrex/internal/application/callerid"
	extensionusecases "centrex/internal/application/extension/usecases"
	settingapp "centrex/internal/application/setting"
	ticketapp "centrex/internal/application/ticket"
	userapp "centrex/internal/application/user"
	"centrex/internal/infrastructure/auth"
	"centrex/internal/infrastructure/email"
	"centrex/internal/infrastructure/pbx"
	"centrex/internal/infrastructure/ratelimit"
	"centrex/internal/infrastructure/repository"
	authhandler "centrex/internal/interfaces/http/handlers/auth"
	calleridhandler "centrex/internal/interfaces/http/handlers/callerid"
	extensionhandler "centrex/internal/interfaces/http/handlers/extension"
	settinghandler "centrex/internal/interfaces/http/handlers/setting"
	tickethandler "centrex/internal/interfaces/http/handlers/ticket"
	userhandler "centrex/internal/interfaces/http/handlers/user"
	"centrex/internal/interfaces/http/middleware"
	"centrex/internal/infrastructure/config"
	"centrex/internal/shared/db"
	"centrex/internal/shared/logger"
)

// Router wires repositories, use cases and handlers, and owns the gin
// engine.
type Router struct {
	engine *gin.Engine
	creds  *pbx.CredentialCache
}

func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	log := logger.NewLogger()

	// repositories
	extensionRepo := repository.NewExtensionRepository(gormDB)
	calleridRepo := repository.NewCallerIDRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	settingRepo := repository.NewSystemSettingRepository(gormDB, log)

	// control plane
	requestTimeout := time.Duration(cfg.PBX.RequestTimeout) * time.Second
	creds := pbx.NewCredentialCache(pbx.NewSettingsSource(settingRepo), requestTimeout, log)
	syncClient := pbx.NewClient(creds, requestTimeout, log)

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		OpsAddress:  cfg.Email.OpsAddress,
	}, log)

	// extension use cases
	allocator := extensionusecases.NewNumberAllocator(extensionRepo, cfg.PBX.ExtensionFloor)
	createExtensionUC := extensionusecases.NewCreateExtensionUseCase(extensionRepo, calleridRepo, syncClient, allocator, notifier, log)
	updateExtensionUC := extensionusecases.NewUpdateExtensionUseCase(extensionRepo, calleridRepo, syncClient, notifier, log)
	deleteExtensionUC := extensionusecases.NewDeleteExtensionUseCase(extensionRepo, syncClient, log)
	getExtensionUC := extensionusecases.NewGetExtensionUseCase(extensionRepo, log)
	listExtensionsUC := extensionusecases.NewListExtensionsUseCase(extensionRepo, log)
	testConnectionUC := extensionusecases.NewTestConnectionUseCase(syncClient, log)

	// collaborator services
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient)
	authService := authapp.NewService(userRepo, hasher, jwtService, rateLimiter, log)
	userService := userapp.NewService(userRepo, hasher, log)
	calleridService := calleridapp.NewService(calleridRepo, log)
	ticketService := ticketapp.NewService(ticketRepo, log)
	settingService := settingapp.NewService(settingRepo, creds, db.NewTransactionManager(gormDB), log)

	// handlers
	extensionH := extensionhandler.NewExtensionHandler(createExtensionUC, updateExtensionUC, deleteExtensionUC, getExtensionUC, listExtensionsUC)
	calleridH := calleridhandler.NewCallerIDHandler(calleridService)
	ticketH := tickethandler.NewTicketHandler(ticketService)
	authH := authhandler.NewAuthHandler(authService)
	userH := userhandler.NewUserHandler(userService)
	settingH := settinghandler.NewSettingHandler(settingService, testConnectionUC)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authH.Login)
			authGroup.POST("/refresh", authH.Refresh)
		}

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			extensions := protected.Group("/extensions")
			{
				extensions.POST("", extensionH.CreateExtension)
				extensions.GET("", extensionH.ListExtensions)
				extensions.GET("/:id", extensionH.GetExtension)
				extensions.PUT("/:id", extensionH.UpdateExtension)
				extensions.DELETE("/:id", extensionH.DeleteExtension)
			}

			callerIDs := protected.Group("/caller-ids")
			{
				callerIDs.POST("", calleridH.CreateCallerID)
				callerIDs.GET("", calleridH.ListCallerIDs)
				callerIDs.GET("/:id", calleridH.GetCallerID)
				callerIDs.PUT("/:id", calleridH.UpdateCallerID)
				callerIDs.DELETE("/:id", calleridH.DeleteCallerID)
			}

			tickets := protected.Group("/tickets")
			{
				tickets.POST("", ticketH.CreateTicket)
				tickets.GET("", ticketH.ListTickets)
				tickets.GET("/:id", ticketH.GetTicket)
				tickets.PUT("/:id/status", ticketH.ChangeStatus)
				tickets.POST("/:id/close", ticketH.CloseTicket)
			}

			protected.GET("/profile", userH.GetProfile)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/users", userH.CreateUser)
				admin.GET("/users", userH.ListUsers)
				admin.DELETE("/users/:id", userH.DeactivateUser)

				admin.GET("/settings/pbx", settingH.GetPBXSettings)
				admin.PUT("/settings/pbx", settingH.UpdatePBXSettings)
				admin.POST("/settings/pbx/test", settingH.TestConnection)
			}
		}
	}

	return &Router{engine: engine, creds: creds}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
