package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workpanel-api/internal/client"
	"workpanel-api/internal/handler"
	"workpanel-api/internal/metrics"
	"workpanel-api/internal/middleware"
	"workpanel-api/internal/repository"
	"workpanel-api/internal/service"
)

// Config carries every dependency the router needs
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	Metrics        *metrics.Metrics
	Redis          *redis.Client
	S3Client       client.S3ClientInterface
	SuggestClient  client.SuggestClient
	UserClient     client.UserClient
	AllowedOrigins []string
}

// Setup builds the gin engine with every route and middleware wired
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.AllowedOrigins))
	} else {
		r.Use(middleware.DefaultCORS())
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	suggestClient := cfg.SuggestClient
	if suggestClient == nil {
		suggestClient = client.NewNoOpSuggestClient()
	}
	userClient := cfg.UserClient
	if userClient == nil {
		userClient = client.NewNoOpUserClient()
	}

	// Repositories
	workpanelRepo := repository.NewWorkpanelRepository(cfg.DB)
	teamRoomRepo := repository.NewTeamRoomRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	groupRepo := repository.NewGroupRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	reorderRepo := repository.NewReorderRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)
	notificationRepo := repository.NewNotificationRepository(cfg.DB)

	// Board watch hub, created first so services can emit change hints
	hub := handler.NewBoardHub(cfg.Redis, cfg.Logger)
	go hub.Run()

	// Services
	roleService := service.NewRoleService(workpanelRepo, teamRoomRepo, boardRepo, cfg.Logger)
	activityService := service.NewActivityService(activityRepo, roleService, cfg.Logger)
	notificationService := service.NewNotificationService(notificationRepo, cfg.Redis, cfg.Logger)
	workpanelService := service.NewWorkpanelService(workpanelRepo, roleService, cfg.Logger)
	teamRoomService := service.NewTeamRoomService(teamRoomRepo, boardRepo, roleService, cfg.Logger)
	boardService := service.NewBoardService(boardRepo, teamRoomRepo, groupRepo, roleService, activityService, hub, cfg.Metrics, cfg.Logger)
	boardViewService := service.NewBoardViewService(boardRepo, groupRepo, taskRepo, roleService, cfg.Logger)
	groupService := service.NewGroupService(groupRepo, roleService, activityService, hub, cfg.Logger)
	taskService := service.NewTaskService(taskRepo, groupRepo, commentRepo, attachmentRepo, roleService, activityService, notificationService, hub, cfg.Metrics, cfg.Logger)
	reorderService := service.NewReorderService(boardRepo, groupRepo, taskRepo, reorderRepo, roleService, activityService, hub, cfg.Metrics, cfg.Logger)
	memberService := service.NewMemberService(workpanelRepo, teamRoomRepo, boardRepo, roleService, notificationService, userClient, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, taskRepo, roleService, activityService, hub, cfg.Logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, roleService, cfg.S3Client, hub, cfg.Logger)
	suggestService := service.NewSuggestService(suggestClient, roleService, cfg.Logger)

	// Handlers
	workpanelHandler := handler.NewWorkpanelHandler(workpanelService)
	teamRoomHandler := handler.NewTeamRoomHandler(teamRoomService)
	boardHandler := handler.NewBoardHandler(boardService, boardViewService, reorderService)
	groupHandler := handler.NewGroupHandler(groupService)
	taskHandler := handler.NewTaskHandler(taskService, suggestService)
	memberHandler := handler.NewMemberHandler(memberService)
	commentHandler := handler.NewCommentHandler(commentService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	activityHandler := handler.NewActivityHandler(activityService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)
	wsHandler := handler.NewWSHandler(hub, roleService, cfg.JWTSecret, cfg.Logger)

	// Probes and metrics stay outside auth
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.BasePath != "" {
		r.GET(cfg.BasePath+"/health", healthHandler.Health)
		r.GET(cfg.BasePath+"/ready", healthHandler.Ready)
		r.GET(cfg.BasePath+"/metrics", gin.WrapH(promhttp.Handler()))
		r.GET(cfg.BasePath+"/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Browsers cannot set the Authorization header on upgrades, so the
	// websocket route authenticates with a query token inside the handler.
	r.GET("/ws/boards/:boardId", wsHandler.HandleBoardSocket)

	api := r.Group(cfg.BasePath)
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		// Workpanels
		api.POST("", workpanelHandler.CreateWorkpanel)
		api.GET("", workpanelHandler.ListAccessible)
		api.GET("/:workpanelId", workpanelHandler.GetWorkpanel)
		api.PUT("/:workpanelId", workpanelHandler.UpdateWorkpanel)
		api.DELETE("/:workpanelId", workpanelHandler.DeleteWorkpanel)

		api.GET("/:workpanelId/members", memberHandler.ListWorkpanelMembers)
		api.POST("/:workpanelId/members", memberHandler.InviteWorkpanelMember)
		api.PUT("/:workpanelId/members/:userId", memberHandler.UpdateWorkpanelMemberRole)
		api.DELETE("/:workpanelId/members/:userId", memberHandler.RemoveWorkpanelMember)

		api.GET("/:workpanelId/rooms", teamRoomHandler.ListByWorkpanel)
		api.GET("/:workpanelId/boards", boardHandler.ListByWorkpanel)

		// Team rooms
		api.POST("/rooms", teamRoomHandler.CreateTeamRoom)
		api.GET("/rooms/:roomId", teamRoomHandler.GetTeamRoom)
		api.PUT("/rooms/:roomId", teamRoomHandler.UpdateTeamRoom)
		api.DELETE("/rooms/:roomId", teamRoomHandler.DeleteTeamRoom)
		api.GET("/rooms/:roomId/boards", boardHandler.ListByTeamRoom)

		api.GET("/rooms/:roomId/members", memberHandler.ListTeamRoomMembers)
		api.POST("/rooms/:roomId/members", memberHandler.InviteTeamRoomMember)
		api.PUT("/rooms/:roomId/members/:userId", memberHandler.UpdateTeamRoomMemberRole)
		api.DELETE("/rooms/:roomId/members/:userId", memberHandler.RemoveTeamRoomMember)

		// Boards
		api.POST("/boards", boardHandler.CreateBoard)
		api.GET("/boards/:boardId", boardHandler.GetBoard)
		api.PUT("/boards/:boardId", boardHandler.UpdateBoard)
		api.DELETE("/boards/:boardId", boardHandler.DeleteBoard)
		api.GET("/boards/:boardId/view", boardHandler.GetBoardView)
		api.POST("/boards/:boardId/move", boardHandler.Move)
		api.GET("/boards/:boardId/activity", activityHandler.GetBoardActivity)
		api.POST("/boards/:boardId/suggest-tags", taskHandler.SuggestTags)

		api.GET("/boards/:boardId/members", memberHandler.ListBoardMembers)
		api.POST("/boards/:boardId/members", memberHandler.InviteBoardMember)
		api.PUT("/boards/:boardId/members/:userId", memberHandler.UpdateBoardMemberRole)
		api.DELETE("/boards/:boardId/members/:userId", memberHandler.RemoveBoardMember)

		// Groups (columns)
		api.POST("/groups", groupHandler.CreateGroup)
		api.PUT("/groups/:groupId", groupHandler.RenameGroup)
		api.DELETE("/groups/:groupId", groupHandler.DeleteGroup)

		// Tasks
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:taskId", taskHandler.GetTask)
		api.PUT("/tasks/:taskId", taskHandler.UpdateTask)
		api.DELETE("/tasks/:taskId", taskHandler.DeleteTask)
		api.POST("/tasks/:taskId/checklist", taskHandler.AddChecklistItem)
		api.POST("/tasks/:taskId/checklist/:itemId/toggle", taskHandler.ToggleChecklistItem)
		api.DELETE("/tasks/:taskId/checklist/:itemId", taskHandler.DeleteChecklistItem)

		// Comments
		api.GET("/tasks/:taskId/comments", commentHandler.ListComments)
		api.POST("/tasks/:taskId/comments", commentHandler.AddComment)
		api.DELETE("/comments/:commentId", commentHandler.DeleteComment)

		// Attachments
		api.POST("/attachments/presigned", attachmentHandler.CreatePresignedUpload)
		api.POST("/attachments/:attachmentId/confirm", attachmentHandler.ConfirmAttachment)
		api.DELETE("/attachments/:attachmentId", attachmentHandler.DeleteAttachment)
		api.GET("/tasks/:taskId/attachments", attachmentHandler.ListAttachments)

		// Notifications
		api.GET("/notifications", notificationHandler.ListNotifications)
		api.GET("/notifications/unread-count", notificationHandler.GetUnreadCount)
		api.POST("/notifications/:notificationId/read", notificationHandler.MarkRead)
		api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	return r
}
