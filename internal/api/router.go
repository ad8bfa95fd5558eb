package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/xxtryitxx/horizontos/docs"
	"github.com/xxtryitxx/horizontos/internal/api/handler"
	"github.com/xxtryitxx/horizontos/internal/api/middleware"
	"github.com/xxtryitxx/horizontos/internal/api/ws"
	"github.com/xxtryitxx/horizontos/internal/core/ports"
	"github.com/xxtryitxx/horizontos/internal/core/service"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/config"
	mongorepo "github.com/xxtryitxx/horizontos/internal/infrastructure/db/mongo"
	redisinfra "github.com/xxtryitxx/horizontos/internal/infrastructure/db/redis"
	"github.com/xxtryitxx/horizontos/internal/infrastructure/queue"
)

// Collaborators are the out-of-process dependencies main wires in.
type Collaborators struct {
	Mailer    ports.Mailer
	Assistant ports.Assistant
	Store     ports.ObjectStore
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the score dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, collab Collaborators, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("horizontos"))

	// --- Infrastructure ---
	users := mongorepo.NewUserRepository(db)
	claims := mongorepo.NewClaimsRepository(db)
	messages := mongorepo.NewMessageRepository(db)
	posts := mongorepo.NewPostRepository(db)
	swaps := mongorepo.NewSwapRepository(db)
	trades := mongorepo.NewTradeRepository(db)
	notifications := mongorepo.NewNotificationRepository(db)
	sickLeave := mongorepo.NewSickLeaveRepository(db)
	mentoring := mongorepo.NewMentoringRepository(db)
	knowledge := mongorepo.NewKnowledgeRepository(db)
	uploads := mongorepo.NewUploadRepository(db)

	bus := redisinfra.NewBus(rdb)
	presence := redisinfra.NewPresenceTracker(rdb)

	// --- Services ---
	authService := service.NewAuthService(users, claims, cfg.JWTSecret, 24*time.Hour, log)
	identityService := service.NewIdentityService(users, claims, log)
	roleService := service.NewRoleService(claims, users, posts, log)
	scoreService := service.NewScoreService(users, log)
	chatService := service.NewChatService(messages, collab.Assistant, bus, log)
	notificationService := service.NewNotificationService(notifications, users, collab.Mailer, bus, log)
	shiftService := service.NewShiftService(swaps, trades, users, notificationService, scoreService, log)
	feedService := service.NewFeedService(posts, scoreService, log)
	sickLeaveService := service.NewSickLeaveService(sickLeave, claims, users, log)
	mentoringService := service.NewMentoringService(mentoring, users, log)
	knowledgeService := service.NewKnowledgeService(knowledge, log)
	uploadService := service.NewUploadService(collab.Store, uploads, users, log)

	dispatcher := queue.NewDispatcher(cfg.Workers.ScoreWorkers, scoreService, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(identityService, scoreService, users, presence)
	adminHandler := handler.NewAdminHandler(roleService)
	chatHandler := handler.NewChatHandler(chatService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	feedHandler := handler.NewFeedHandler(feedService)
	sickLeaveHandler := handler.NewSickLeaveHandler(sickLeaveService)
	mentoringHandler := handler.NewMentoringHandler(mentoringService)
	knowledgeHandler := handler.NewKnowledgeHandler(knowledgeService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	scoreHandler := handler.NewScoreHandler(dispatcher)
	wsHandler := ws.NewHandler(bus, presence, cfg.JWTSecret, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Live streams (token in query string) ---
	e.GET("/ws/chat", wsHandler.Chat)
	e.GET("/ws/notifications", wsHandler.Notifications)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret), middleware.RejectLocked(users))

	v1.GET("/users", userHandler.List)
	v1.GET("/users/me", userHandler.Me)
	v1.PUT("/users/me", userHandler.UpdateProfile)
	v1.GET("/users/:id", userHandler.Profile)
	v1.GET("/leaderboard", userHandler.Leaderboard)

	v1.POST("/score/events", scoreHandler.Report)

	v1.GET("/chat/:peer", chatHandler.Conversation)
	v1.POST("/chat/:peer", chatHandler.Send)

	v1.GET("/shifts/swaps", shiftHandler.IncomingSwaps)
	v1.POST("/shifts/swaps", shiftHandler.RequestSwap)
	v1.POST("/shifts/swaps/:id/approve", shiftHandler.ApproveSwap)
	v1.POST("/shifts/swaps/:id/reject", shiftHandler.RejectSwap)
	v1.GET("/shifts/trades", shiftHandler.OpenTrades)
	v1.POST("/shifts/trades", shiftHandler.OpenTrade)
	v1.POST("/shifts/trades/:id/volunteer", shiftHandler.Volunteer)
	v1.POST("/shifts/trades/:id/assign", shiftHandler.AssignTrade)
	v1.POST("/shifts/trades/:id/complete", shiftHandler.CompleteTrade)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	v1.GET("/feed", feedHandler.List)
	v1.POST("/feed", feedHandler.Create)
	v1.POST("/feed/:id/like", feedHandler.Like)

	v1.GET("/sickleave", sickLeaveHandler.List)
	v1.POST("/sickleave", sickLeaveHandler.Submit)

	v1.POST("/mentoring/mentees", mentoringHandler.AssignMentor)
	v1.GET("/mentoring/tasks", mentoringHandler.Tasks)
	v1.POST("/mentoring/tasks", mentoringHandler.CreateTask)
	v1.POST("/mentoring/tasks/:id/complete", mentoringHandler.CompleteTask)

	v1.GET("/knowledge", knowledgeHandler.Search)
	v1.POST("/knowledge", knowledgeHandler.Create)
	v1.GET("/knowledge/:id", knowledgeHandler.Read)

	v1.POST("/uploads/avatar", uploadHandler.Avatar)
	v1.GET("/uploads/voice", uploadHandler.VoiceInbox)
	v1.POST("/uploads/voice", uploadHandler.Voice)
	v1.GET("/uploads/files", uploadHandler.Files)
	v1.POST("/uploads/files", uploadHandler.File)

	// --- Admin routes (token gate; services re-check claims) ---
	admin := v1.Group("/admin", middleware.AdminOnly())
	admin.PUT("/users/:id/role", adminHandler.SetRole)
	admin.PUT("/users/:id/lock", adminHandler.SetLock)
	admin.DELETE("/users/:id", adminHandler.Delete)
	admin.DELETE("/feed/:id", feedHandler.Delete)
	admin.POST("/sickleave/:id/review", sickLeaveHandler.Review)

	return e, dispatcher
}
