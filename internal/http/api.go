package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vibefy/internal/auth"
	"vibefy/internal/service"
)

// Options tunes cookie, CORS and upload behaviour of the handler.
type Options struct {
	CookieSecure   bool
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	songs    service.SongService
	sessions *auth.SessionIssuer
	opts     Options
	log      *logrus.Entry
}

func NewHandler(users service.UserService, songs service.SongService, sessions *auth.SessionIssuer, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = service.DefaultMaxUploadBytes
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &Handler{
		users:    users,
		songs:    songs,
		sessions: sessions,
		opts:     opts,
		log:      opts.Logger.WithField("component", "http"),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.log), corsMiddleware(h.opts.AllowedOrigins))

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	authed := api.Group("", h.requireSession())
	{
		authed.POST("/upload", h.uploadSong)
		authed.GET("/getUserSongList", h.listSongs)
		authed.GET("/playSong/:songId", h.playSong)
	}
}

func corsMiddleware(allowed []string) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(allowed))
	wildcard := false
	for _, o := range allowed {
		if o == "*" {
			wildcard = true
		}
		origins[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := origins[origin]; origin != "" && (ok || wildcard) {
			// credentialed requests need the exact origin, never "*"
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Debug("request")
		}
	}
}
