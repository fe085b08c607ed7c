package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"newsportal/cmd/app"
	"newsportal/internal/config"
	handlers "newsportal/internal/handler"
	"newsportal/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services, emailQueue := app.App(cfg)
	defer db.CloseDB()
	defer emailQueue.Close()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	api.HandleFunc("/reset-password", handler.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/reset-password/{token}", handler.ConfirmPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/activate/{token}", handler.ActivateAccount).Methods(http.MethodGet)
	api.HandleFunc("/invite-users", handler.InviteUsers).Methods(http.MethodPost)
	api.HandleFunc("/accept-invite/{token}", handler.AcceptInvite).Methods(http.MethodPatch)

	api.HandleFunc("/users", handler.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", handler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/companies", handler.ListCompanies).Methods(http.MethodGet)
	api.HandleFunc("/companies", handler.CreateCompany).Methods(http.MethodPost)
	api.HandleFunc("/companies/{id}", handler.GetCompany).Methods(http.MethodGet)
	api.HandleFunc("/companies/{id}", handler.UpdateCompany).Methods(http.MethodPut)
	api.HandleFunc("/companies/{id}", handler.DeleteCompany).Methods(http.MethodDelete)
	api.HandleFunc("/companies/{id}/logo", handler.UploadCompanyLogo).Methods(http.MethodPost)

	api.HandleFunc("/posts", handler.ListPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts/multiple", handler.BulkUpdatePosts).Methods(http.MethodPatch)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)

	api.HandleFunc("/stats", handler.PortalStats).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
