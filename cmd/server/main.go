package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"mcq-platform/internal/admin"
	"mcq-platform/internal/attempt"
	"mcq-platform/internal/auth"
	"mcq-platform/internal/category"
	"mcq-platform/internal/quiz"
	"mcq-platform/internal/report"
	"mcq-platform/internal/user"
	"mcq-platform/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")

	authService := auth.NewService(auth.NewRepository(db), jwtSecret)
	categoryService := category.NewService(category.NewRepository(db))
	quizService := quiz.NewService(quiz.NewRepository(db))
	attemptService := attempt.NewService(attempt.NewRepository(db))
	reportService := report.NewService(report.NewRepository(db))
	userService := user.NewService(user.NewRepository(db))
	adminService := admin.NewService(admin.NewRepository(db))

	authHandler := auth.NewHandler(authService)
	categoryHandler := category.NewHandler(categoryService)
	quizHandler := quiz.NewHandler(quizService)
	attemptHandler := attempt.NewHandler(attemptService)
	reportHandler := report.NewHandler(reportService)
	userHandler := user.NewHandler(userService)
	adminHandler := admin.NewHandler(adminService)

	router := mux.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Public catalog and reporting reads. Quiz detail and question reads
	// take an optional token so owners and admins get correct answers back.
	optionalAuth := auth.OptionalJWT(jwtSecret)
	router.HandleFunc("/api/quizzes", quizHandler.List).Methods("GET")
	router.Handle("/api/quizzes/{id:[0-9]+}", optionalAuth(http.HandlerFunc(quizHandler.Get))).Methods("GET")
	router.Handle("/api/quizzes/{id:[0-9]+}/questions", optionalAuth(http.HandlerFunc(quizHandler.GetQuestions))).Methods("GET")
	router.HandleFunc("/api/categories", categoryHandler.List).Methods("GET")
	router.HandleFunc("/api/categories/{id:[0-9]+}", categoryHandler.Get).Methods("GET")
	router.HandleFunc("/api/leaderboard/leaderboard", reportHandler.Leaderboard).Methods("GET")
	router.HandleFunc("/api/leaderboard/user-quiz-history/{userId:[0-9]+}", reportHandler.UserQuizHistory).Methods("GET")
	router.HandleFunc("/api/leaderboard/quiz-stats", reportHandler.QuizStats).Methods("GET")
	router.HandleFunc("/api/leaderboard/platform-stats", reportHandler.PlatformStats).Methods("GET")

	// Authenticated routes
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(auth.JWTMiddleware(jwtSecret))

	protected.HandleFunc("/quizzes", quizHandler.Create).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.Update).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/quizzes/{id:[0-9]+}", quizHandler.Delete).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/questions", quizHandler.AddQuestion).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/attempt", attemptHandler.Submit).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quizzes/{id:[0-9]+}/results", quizHandler.Results).Methods("GET")

	protected.HandleFunc("/users/profile", userHandler.Profile).Methods("GET")
	protected.HandleFunc("/users/profile", userHandler.UpdateProfile).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/users/change-password", userHandler.ChangePassword).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/users/quiz-attempts", userHandler.Attempts).Methods("GET")
	protected.HandleFunc("/users/statistics", userHandler.Statistics).Methods("GET")
	protected.HandleFunc("/users/quiz-history", userHandler.RecordQuizHistory).Methods("POST", "OPTIONS")

	// Admin routes
	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(auth.JWTMiddleware(jwtSecret))
	adminRouter.Use(auth.RequireAdmin)

	adminRouter.HandleFunc("/dashboard-stats", adminHandler.DashboardStats).Methods("GET")
	adminRouter.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/users/{id:[0-9]+}", adminHandler.UpdateUser).Methods("PUT", "OPTIONS")
	adminRouter.HandleFunc("/users/{id:[0-9]+}", adminHandler.DeleteUser).Methods("DELETE", "OPTIONS")
	adminRouter.HandleFunc("/quiz-attempts", adminHandler.ListAttempts).Methods("GET")
	adminRouter.HandleFunc("/categories", categoryHandler.List).Methods("GET")
	adminRouter.HandleFunc("/categories", categoryHandler.Create).Methods("POST", "OPTIONS")
	adminRouter.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Update).Methods("PUT", "OPTIONS")
	adminRouter.HandleFunc("/categories/{id:[0-9]+}", categoryHandler.Delete).Methods("DELETE", "OPTIONS")

	// Category writes outside /api/admin still require the admin role
	categoryWrites := router.PathPrefix("/api/categories").Subrouter()
	categoryWrites.Use(auth.JWTMiddleware(jwtSecret))
	categoryWrites.Use(auth.RequireAdmin)
	categoryWrites.HandleFunc("", categoryHandler.Create).Methods("POST", "OPTIONS")
	categoryWrites.HandleFunc("/{id:[0-9]+}", categoryHandler.Update).Methods("PUT", "OPTIONS")
	categoryWrites.HandleFunc("/{id:[0-9]+}", categoryHandler.Delete).Methods("DELETE", "OPTIONS")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
