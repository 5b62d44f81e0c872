package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/cors"

	"github.com/todogether/todogether/database"
	"github.com/todogether/todogether/guest"
	"github.com/todogether/todogether/handlers"
	"github.com/todogether/todogether/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db, err := database.InitDB(getEnv("DB_PATH", "./todogether.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize stores and services
	userService := database.NewUserService(db)
	boardService := database.NewBoardService(db)
	columnService := database.NewColumnService(db)
	taskService := database.NewTaskService(db)
	authService := services.NewAuthService(userService)
	guestStore := guest.NewStore(guest.NewFileStorage(getEnv("GUEST_DATA_DIR", "./data")))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService, boardService)
	taskHandler := handlers.NewTaskHandler(taskService, boardService)
	guestHandler := handlers.NewGuestHandler(guestStore)
	authMiddleware := handlers.NewAuthMiddleware(authService)

	// Setup router
	r := mux.NewRouter()

	// Auth routes
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.Handle("/api/auth/verify", authMiddleware.Auth(http.HandlerFunc(authHandler.VerifyToken))).Methods("GET")
	r.Handle("/api/users", authMiddleware.Auth(http.HandlerFunc(authHandler.ListUsers))).Methods("GET")

	// Board routes
	r.Handle("/api/boards", authMiddleware.Auth(http.HandlerFunc(boardHandler.List))).Methods("GET")
	r.Handle("/api/boards", authMiddleware.Auth(http.HandlerFunc(boardHandler.Create))).Methods("POST")
	r.HandleFunc("/api/boards/{boardId}", boardHandler.Get).Methods("GET")
	r.Handle("/api/boards/{boardId}", authMiddleware.Auth(http.HandlerFunc(boardHandler.Update))).Methods("PATCH")
	r.Handle("/api/boards/{boardId}", authMiddleware.Auth(http.HandlerFunc(boardHandler.Delete))).Methods("DELETE")

	// Column routes
	r.HandleFunc("/api/boards/{boardId}/columns", columnHandler.List).Methods("GET")
	r.HandleFunc("/api/boards/{boardId}/columns", columnHandler.Create).Methods("POST")
	r.HandleFunc("/api/columns/{columnId}", columnHandler.Update).Methods("PATCH")
	r.HandleFunc("/api/columns/{columnId}", columnHandler.Delete).Methods("DELETE")

	// Task routes
	r.Handle("/api/boards/{boardId}/columns/{columnId}/tasks",
		authMiddleware.OptionalAuth(http.HandlerFunc(taskHandler.Create))).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}", taskHandler.Update).Methods("PATCH")
	r.HandleFunc("/api/tasks/{taskId}", taskHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/tasks/{taskId}/move", taskHandler.Move).Methods("POST")

	// Guest routes (no authentication, local replica)
	r.HandleFunc("/api/guest/board", guestHandler.GetBoard).Methods("GET")
	r.HandleFunc("/api/guest/board", guestHandler.UpdateBoard).Methods("PATCH")
	r.HandleFunc("/api/guest/reset", guestHandler.ResetBoard).Methods("POST")
	r.HandleFunc("/api/guest/columns", guestHandler.CreateColumn).Methods("POST")
	r.HandleFunc("/api/guest/columns/{columnId}", guestHandler.UpdateColumn).Methods("PATCH")
	r.HandleFunc("/api/guest/columns/{columnId}", guestHandler.DeleteColumn).Methods("DELETE")
	r.HandleFunc("/api/guest/columns/{columnId}/tasks", guestHandler.CreateTask).Methods("POST")
	r.HandleFunc("/api/guest/tasks/{taskId}", guestHandler.UpdateTask).Methods("PATCH")
	r.HandleFunc("/api/guest/tasks/{taskId}", guestHandler.DeleteTask).Methods("DELETE")
	r.HandleFunc("/api/guest/tasks/{taskId}/move", guestHandler.MoveTask).Methods("POST")

	// Static file server for frontend
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./")))

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, change to your domain
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	port := getEnv("PORT", "3001")

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(server.ListenAndServe())
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
