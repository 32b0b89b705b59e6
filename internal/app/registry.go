package app

import (
	"database/sql"

	"hris-dashboard/internal/attendance"
	"hris-dashboard/internal/auth"
	"hris-dashboard/internal/auth/token"
	"hris-dashboard/internal/candidate"
	"hris-dashboard/internal/config"
	"hris-dashboard/internal/employee"
	"hris-dashboard/internal/leave"
	"hris-dashboard/internal/messaging/kafka"
	"hris-dashboard/internal/middleware"
	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/rbac"
	"hris-dashboard/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	users user.Repository
}

func registerModules(
	api *gin.RouterGroup,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	rbacService rbac.Service,
	hub *notification.Hub,
	logger *zap.Logger,
) modules {
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	authMiddleware := middleware.AuthMiddleware(tokens)

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	candidateRepo := candidate.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(gormDB)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, hub, logger)
	authService := auth.NewService(userRepo, tokens, logger)
	candidateService := candidate.NewService(db, candidateRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, rdb, logger)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo, hub, rdb, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	userService := user.NewService(userRepo, rbacService, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	candidateHandler := candidate.NewHandler(candidateService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService, hub, tokens, cfg.CORS.AllowOrigins, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	auth.RegisterRoutes(api, authHandler, authMiddleware)
	attendance.RegisterRoutes(api, attendanceHandler, authMiddleware, rbacService)
	candidate.RegisterRoutes(api, candidateHandler, authMiddleware, rbacService)
	employee.RegisterRoutes(api, employeeHandler, authMiddleware, rbacService)
	leave.RegisterRoutes(api, leaveHandler, authMiddleware, rbacService, rdb)
	notification.RegisterRoutes(api, notificationHandler, authMiddleware, rbacService)
	rbac.RegisterRoutes(api, rbacHandler, authMiddleware)
	user.RegisterRoutes(api, userHandler, authMiddleware, rbacService)

	return modules{users: userRepo}
}
