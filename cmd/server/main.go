package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/config"
	"github.com/hinagiku/kanban-api/internal/constants"
	"github.com/hinagiku/kanban-api/internal/database"
	"github.com/hinagiku/kanban-api/internal/handlers"
	"github.com/hinagiku/kanban-api/internal/middleware"
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/ordering"
	"github.com/hinagiku/kanban-api/internal/repository"
	"github.com/hinagiku/kanban-api/internal/scope"
	"github.com/hinagiku/kanban-api/internal/services"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatal("Failed to add indexes", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.Logger(logger), gin.Recovery())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal("Failed to create Redis store", zap.Error(err))
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()

	// Repositories and the ordering engine
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	hierarchy := repository.NewHierarchyRepository(db)
	engine := ordering.NewEngine(db)

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, orgRepo)
	boardService := services.NewBoardService(boardRepo, engine)
	columnService := services.NewColumnService(columnRepo, engine)
	issueService := services.NewIssueService(issueRepo, workspaceRepo, engine, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	issueHandler := handlers.NewIssueHandler(issueService)

	// Scoped-role guard
	guard := middleware.NewScopedRolesGuard(
		middleware.ParseSecurityMode(cfg.SecurityMode),
		hierarchy,
		orgRepo,
		logger,
	)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("/join", orgHandler.JoinOrganization)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.PATCH("/:id", guard.Require(scope.ScopeOrg, models.RoleAdmin), orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", guard.Require(scope.ScopeOrg, models.RoleOwner), orgHandler.DeleteOrganization)
			orgs.POST("/:id/regenerate-code", guard.Require(scope.ScopeOrg, models.RoleAdmin), orgHandler.RegenerateInviteCode)
			orgs.PATCH("/:id/members/:user_id", guard.Require(scope.ScopeOrg, models.RoleAdmin), orgHandler.UpdateMemberRole)
			orgs.DELETE("/:id/members/:user_id", guard.Require(scope.ScopeOrg, models.RoleAdmin), orgHandler.RemoveMember)
		}

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(middleware.RequireAuth())
		{
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.GET("/:id", workspaceHandler.GetWorkspace)
			workspaces.POST("", guard.Require(scope.ScopeOrg, models.RoleAdmin), workspaceHandler.CreateWorkspace)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.GET("/:id/full", boardHandler.GetBoardFull)
			boards.POST("", guard.Require(scope.ScopeWorkspace, models.RoleMember), boardHandler.CreateBoard)
			boards.PATCH("/:id", guard.Require(scope.ScopeBoard, models.RoleMember), boardHandler.UpdateBoard)
			boards.DELETE("/:id", guard.Require(scope.ScopeBoard, models.RoleAdmin), boardHandler.DeleteBoard)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(middleware.RequireAuth())
		{
			columns.GET("", columnHandler.ListColumns)
			columns.POST("", guard.Require(scope.ScopeBoard, models.RoleMember), columnHandler.CreateColumn)
			columns.POST("/reorder", guard.Require(scope.ScopeBoard, models.RoleMember), columnHandler.ReorderColumns)
			columns.PATCH("/:id", guard.Require(scope.ScopeBoard, models.RoleMember), columnHandler.UpdateColumn)
			columns.DELETE("/:id", guard.Require(scope.ScopeBoard, models.RoleMember), columnHandler.DeleteColumn)
			columns.POST("/:id/reorder", guard.Require(scope.ScopeBoard, models.RoleMember), columnHandler.ReorderIssues)
		}

		// Issue routes (protected)
		issues := api.Group("/issues")
		issues.Use(middleware.RequireAuth())
		{
			issues.GET("", issueHandler.ListIssues)
			issues.GET("/:id", issueHandler.GetIssue)
			issues.POST("", guard.Require(scope.ScopeBoard, models.RoleMember), issueHandler.CreateIssue)
			issues.POST("/generate", guard.Require(scope.ScopeWorkspace, models.RoleMember), issueHandler.GenerateIssues)
			issues.PATCH("/:id", guard.Require(scope.ScopeBoard, models.RoleMember), issueHandler.UpdateIssue)
			issues.DELETE("/:id", guard.Require(scope.ScopeBoard, models.RoleMember), issueHandler.DeleteIssue)
		}
	}

	// Start server
	logger.Info("Server starting", zap.String("addr", ":8080"))
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
