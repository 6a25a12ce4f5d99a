package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"calPalAPI/handlers"
	"calPalAPI/internal/notification"
	"calPalAPI/internal/record"
	"calPalAPI/middleware"
	"calPalAPI/services"
)

var (
	dbPool              *pgxpool.Pool
	goalService         *services.GoalService
	dailyGoalService    *services.DailyGoalService
	badgeService        *services.BadgeService
	diaryService        *services.DiaryService
	notificationService *services.NotificationService
	fcmService          *notification.FCMService
	pushDispatcher      *services.PushDispatcher
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	store, err := record.NewPostgresStore(ctx, dbPool)
	if err != nil {
		log.Fatal("Failed to initialize record store:", err)
	}

	notificationService = services.NewNotificationService(store)
	goalService = services.NewGoalService(store, time.Now, rand.Intn)
	dailyGoalService = services.NewDailyGoalService(store, time.Now, rand.Intn)
	badgeService = services.NewBadgeService(store, goalService, notificationService)
	diaryService = services.NewDiaryService(store, time.Now)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		pushDispatcher = services.NewPushDispatcher(fcmService, 4)
		notificationService.SetPushProvider(pushDispatcher)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	// Initialize handlers
	goalHandler := handlers.NewGoalHandler(goalService)
	dailyGoalHandler := handlers.NewDailyGoalHandler(dailyGoalService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)
	diaryHandler := handlers.NewDiaryHandler(diaryService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "calpal-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// -------------------------------------------------------------------------
	// PROFILE-SCOPED ROUTES (REQUIRE X-Profile-ID HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ProfileAuthMiddleware)

	protected.HandleFunc("/goals", goalHandler.GetGoals).Methods("GET")
	protected.HandleFunc("/goals", goalHandler.CreateGoal).Methods("POST")
	protected.HandleFunc("/goals", goalHandler.ClearAllGoals).Methods("DELETE")
	protected.HandleFunc("/goals/{id}", goalHandler.DeleteGoal).Methods("DELETE")
	protected.HandleFunc("/goals/{id}/progress", goalHandler.LogProgress).Methods("POST")
	protected.HandleFunc("/goals/{id}/progress", goalHandler.EditProgress).Methods("PUT")
	protected.HandleFunc("/goals/{id}/complete", goalHandler.CompleteGoal).Methods("POST")

	protected.HandleFunc("/daily-goal", dailyGoalHandler.GetToday).Methods("GET")
	protected.HandleFunc("/daily-goal/refresh", dailyGoalHandler.Refresh).Methods("POST")
	protected.HandleFunc("/daily-goal/progress", dailyGoalHandler.EditProgress).Methods("PUT")
	protected.HandleFunc("/daily-goal/complete", dailyGoalHandler.Complete).Methods("POST")
	protected.HandleFunc("/daily-goal/completed", dailyGoalHandler.GetCompleted).Methods("GET")
	protected.HandleFunc("/daily-goal/completed/{id}", dailyGoalHandler.DeleteCompleted).Methods("DELETE")

	protected.HandleFunc("/badges", badgeHandler.GetBadges).Methods("GET")

	protected.HandleFunc("/diary", diaryHandler.GetDay).Methods("GET")
	protected.HandleFunc("/diary/meals", diaryHandler.AddMeal).Methods("POST")
	protected.HandleFunc("/diary/meals/{id}", diaryHandler.DeleteMeal).Methods("DELETE")
	protected.HandleFunc("/diary/workouts", diaryHandler.AddWorkout).Methods("POST")
	protected.HandleFunc("/diary/workouts/{id}", diaryHandler.DeleteWorkout).Methods("DELETE")
	protected.HandleFunc("/presets/foods", diaryHandler.GetFoodPresets).Methods("GET")
	protected.HandleFunc("/presets/exercises", diaryHandler.GetExercisePresets).Methods("GET")
	protected.HandleFunc("/calculator", diaryHandler.Calculate).Methods("POST")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "X-Profile-ID"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if pushDispatcher != nil {
		pushDispatcher.Stop()
	}

	log.Println("Server shutdown complete")
}
