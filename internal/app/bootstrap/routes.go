// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	announcementsfeature "github.com/dalemusser/capstonehub/internal/app/features/announcements"
	authgooglefeature "github.com/dalemusser/capstonehub/internal/app/features/authgoogle"
	chatfeature "github.com/dalemusser/capstonehub/internal/app/features/chat"
	discussionsfeature "github.com/dalemusser/capstonehub/internal/app/features/discussions"
	healthfeature "github.com/dalemusser/capstonehub/internal/app/features/health"
	"github.com/dalemusser/capstonehub/internal/app/features/httpjson"
	ideasfeature "github.com/dalemusser/capstonehub/internal/app/features/ideas"
	loginfeature "github.com/dalemusser/capstonehub/internal/app/features/login"
	meetingsfeature "github.com/dalemusser/capstonehub/internal/app/features/meetings"
	messagesfeature "github.com/dalemusser/capstonehub/internal/app/features/messages"
	notificationsfeature "github.com/dalemusser/capstonehub/internal/app/features/notifications"
	projectsfeature "github.com/dalemusser/capstonehub/internal/app/features/projects"
	tasksfeature "github.com/dalemusser/capstonehub/internal/app/features/tasks"
	uploadsfeature "github.com/dalemusser/capstonehub/internal/app/features/uploads"
	"github.com/dalemusser/capstonehub/internal/app/system/auth"
	"github.com/dalemusser/capstonehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. CapstoneHub initializes the
// session store, applies the session-loading middleware globally, and
// mounts the JSON API feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.CapstoneHubMongoDatabase
	errLog := httpjson.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.CapstoneHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Google OAuth sign-in (public).
	googleHandler := authgooglefeature.NewHandler(db,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret,
		appCfg.BaseURL, appCfg.SessionKey, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Password login, registration, and logout.
	loginLimiter := ratelimit.NewLoginLimiterWithConfig(10, time.Minute,
		appCfg.LoginMaxAttempts, appCfg.LoginLockout)
	loginHandler := loginfeature.NewHandler(db, loginLimiter, errLog, logger)
	r.Route("/api", func(r chi.Router) {
		loginHandler.MountRoutes(r)
	})

	// Team formation: idea proposal, member approval, coordinator
	// decision.
	ideasHandler := ideasfeature.NewHandler(db, errLog, logger)
	r.Route("/api/ideas", ideasHandler.MountRoutes)

	// Projects plus their nested task, meeting, and discussion routes.
	projectsHandler := projectsfeature.NewHandler(db, errLog, logger)
	tasksHandler := tasksfeature.NewHandler(db, errLog, logger)
	meetingsHandler := meetingsfeature.NewHandler(db, errLog, logger)
	discussionsHandler := discussionsfeature.NewHandler(db, errLog, logger)
	r.Route("/api/projects", func(r chi.Router) {
		projectsHandler.MountRoutes(r)
		tasksHandler.MountProjectRoutes(r)
		meetingsHandler.MountProjectRoutes(r)
		discussionsHandler.MountProjectRoutes(r)
	})
	r.Route("/api/tasks", tasksHandler.MountRoutes)
	r.Route("/api/meetings", meetingsHandler.MountRoutes)
	r.Route("/api/discussions", discussionsHandler.MountRoutes)

	// Coordinator announcements.
	announcementsHandler := announcementsfeature.NewHandler(db, errLog, logger)
	r.Route("/api/announcements", announcementsHandler.MountRoutes)

	// Direct messages and notifications.
	messagesHandler := messagesfeature.NewHandler(db, errLog, logger)
	r.Route("/api/messages", messagesHandler.MountRoutes)

	notificationsHandler := notificationsfeature.NewHandler(db, errLog, logger)
	r.Route("/api/notifications", notificationsHandler.MountRoutes)

	// Upstream proxies (rate limited per IP).
	chatHandler := chatfeature.NewHandler(appCfg.ChatUpstreamURL, appCfg.ChatAPIKey, appCfg.ChatModel,
		appCfg.ChatRatePerMinute, errLog, logger)
	r.Route("/api/chat", chatHandler.MountRoutes)

	uploadsHandler := uploadsfeature.NewHandler(appCfg.ImageHostURL, appCfg.ImageHostKey,
		appCfg.UploadRatePerMinute, errLog, logger)
	r.Route("/api/upload-image", uploadsHandler.MountRoutes)

	return r, nil
}
