package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
	"github.com/mbousquet-onestock/exchange/internal/config"
	"github.com/mbousquet-onestock/exchange/internal/handlers"
	"github.com/mbousquet-onestock/exchange/internal/store"
	"github.com/mbousquet-onestock/exchange/internal/wizard"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the mock catalog on first run so the wizard has articles to
	// offer.
	count, err := db.CountArticles()
	if err != nil {
		slog.Error("Failed to count articles", "error", err)
		os.Exit(1)
	}
	if count == 0 {
		slog.Info("Empty catalog, seeding mock articles")
		if err := db.SeedArticles(catalog.DefaultArticles()); err != nil {
			slog.Error("Failed to seed catalog", "error", err)
			os.Exit(1)
		}
	}

	articles, err := db.GetReturnableArticles()
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	cat := catalog.New(articles)
	slog.Info("Catalog loaded", "articles", cat.Len())

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	registry, err := wizard.NewRegistry(cfg.SessionCapacity, cat)
	if err != nil {
		slog.Error("Failed to create session registry", "error", err)
		os.Exit(1)
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(cfg.TemplatesDir); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	wizardHandler := &handlers.WizardHandler{
		Store:        db,
		Catalog:      cat,
		Sessions:     registry,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	imageHandler := &handlers.ImageHandler{StaticDir: cfg.StaticDir}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))
	mux.HandleFunc("/img/thumb", imageHandler.Thumbnail)

	// Rate limiter guards the final submit only; plain navigation stays
	// unthrottled.
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	mux.HandleFunc("/", wizardHandler.Show)
	mux.HandleFunc("POST /wizard/toggle", wizardHandler.ToggleItem)
	mux.HandleFunc("POST /wizard/config", wizardHandler.UpdateConfig)
	mux.HandleFunc("POST /wizard/method", wizardHandler.ChooseMethod)
	mux.HandleFunc("POST /wizard/next", wizardHandler.Next)
	mux.HandleFunc("POST /wizard/back", wizardHandler.Back)
	mux.HandleFunc("POST /wizard/confirm", rateLimiter.Middleware(wizardHandler.Confirm))
	mux.HandleFunc("POST /wizard/cancel", wizardHandler.Cancel)
	mux.HandleFunc("POST /wizard/restart", wizardHandler.Restart)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
