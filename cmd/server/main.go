package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/condomaster/api/internal/auth"
	"github.com/condomaster/api/internal/config"
	"github.com/condomaster/api/internal/database"
	"github.com/condomaster/api/internal/handlers"
	"github.com/condomaster/api/internal/logger"
	"github.com/condomaster/api/internal/mailer"
	"github.com/condomaster/api/internal/middleware"
	"github.com/condomaster/api/internal/repository"
	"github.com/condomaster/api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting CondoMaster API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Apply pending schema migrations, including the house registry seed
	if err := database.RunMigrations(cfg.Database.DSN()); err != nil {
		log.Fatal("Failed to run migrations", err, nil)
	}
	log.Info("Migrations applied", nil)

	// Initialize repository layer
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// Initialize service layer
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)
	authService := services.NewAuthService(userRepo, tokens, log)
	houseService := services.NewHouseService(houseRepo, log)
	feeService := services.NewFeeService(feeRepo, log)
	paymentService := services.NewPaymentService(paymentRepo, houseRepo, feeRepo, log)
	meetingService := services.NewMeetingService(meetingRepo, houseRepo, feeRepo, log)
	expenseService := services.NewExpenseService(expenseRepo, log)
	personnelService := services.NewPersonnelService(employeeRepo, absenceRepo, log)
	shiftService := services.NewShiftService(shiftRepo, log)

	// Reconcile the administrator account against the configured credentials
	if err := authService.EnsureAdmin(ctx, cfg.Auth); err != nil {
		log.Fatal("Failed to reconcile admin account", err, nil)
	}

	mail, err := mailer.New(ctx, cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mail sender", err, nil)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	authHandler := handlers.NewAuthHandler(authService)
	houseHandler := handlers.NewHouseHandler(houseService)
	feeHandler := handlers.NewFeeHandler(feeService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, houseService, mail)
	meetingHandler := handlers.NewMeetingHandler(meetingService, houseService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	personnelHandler := handlers.NewPersonnelHandler(personnelService)
	shiftHandler := handlers.NewShiftHandler(shiftService)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Public routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.POST("/api/v1/auth/login", authHandler.Login)

	// Register API v1 routes behind the login gate
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authenticate(tokens))
	{
		houses := v1.Group("/houses")
		{
			houses.GET("", houseHandler.List)
			houses.GET("/:id", houseHandler.Get)
			houses.PUT("/:id", houseHandler.Update)
			houses.GET("/:id/statement", paymentHandler.Statement)
		}

		fees := v1.Group("/fees")
		{
			fees.GET("", feeHandler.List)
			fees.POST("", feeHandler.Create)
			fees.PUT("/:id", feeHandler.Update)
			fees.DELETE("/:id", feeHandler.Delete)
		}

		payments := v1.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.POST("", paymentHandler.Register)
			payments.DELETE("/:id", paymentHandler.Void)
			payments.GET("/:id/voucher", paymentHandler.Voucher)
		}
		v1.GET("/collection-form", paymentHandler.CollectionForm)

		meetings := v1.Group("/meetings")
		{
			meetings.GET("", meetingHandler.List)
			meetings.POST("", meetingHandler.Create)
			meetings.PUT("/:id", meetingHandler.Update)
			meetings.DELETE("/:id", meetingHandler.Delete)
			meetings.GET("/:id/stats", meetingHandler.Stats)
			meetings.POST("/:id/fines", meetingHandler.GenerateFines)
			meetings.GET("/:id/fine-slips", meetingHandler.FineSlips)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.DELETE("/:id", expenseHandler.Delete)
			expenses.GET("/summary", expenseHandler.Summary)
			expenses.GET("/report", expenseHandler.Report)
		}

		employees := v1.Group("/employees")
		{
			employees.GET("", personnelHandler.ListEmployees)
			employees.POST("", personnelHandler.CreateEmployee)
			employees.PUT("/:id", personnelHandler.UpdateEmployee)
			employees.DELETE("/:id", personnelHandler.DeleteEmployee)
			employees.GET("/:id/payroll", personnelHandler.Payroll)
			employees.GET("/:id/payroll/slip", personnelHandler.PayrollSlip)
			employees.GET("/:id/vacation-stats", personnelHandler.VacationStats)
			employees.GET("/:id/vacations", personnelHandler.ListVacations)
			employees.POST("/:id/vacations", personnelHandler.CreateVacation)
			employees.PUT("/:id/vacations/:vacationId/status", personnelHandler.SetVacationStatus)
			employees.DELETE("/:id/vacations/:vacationId", personnelHandler.DeleteVacation)
			employees.GET("/:id/leaves", personnelHandler.ListLeaves)
			employees.POST("/:id/leaves", personnelHandler.CreateLeave)
			employees.DELETE("/:id/leaves/:leaveId", personnelHandler.DeleteLeave)
			employees.GET("/:id/logs", personnelHandler.ListLogs)
		}

		shifts := v1.Group("/shifts")
		{
			shifts.GET("", shiftHandler.GetRoster)
			shifts.PUT("", shiftHandler.SaveRoster)
			shifts.GET("/weekly-hours", shiftHandler.WeeklyHours)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
