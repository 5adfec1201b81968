package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// API paths
	apiPrefix   = "/api"
	adminPrefix = apiPrefix + "/admin"

	healthPath = "/health"
	livePath   = "/ws/posts"
	rpcPath    = "/rpc"

	bodyLimit = "40M"
)

// RegisterRoutes builds the echo engine serving the admin API. An empty token
// disables authentication. rpc is mounted at /rpc when not nil.
func (h *Handler) RegisterRoutes(token string, rpc http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(h.requestLogger())

	e.GET(healthPath, h.handleHealth)
	e.POST(apiPrefix+"/posts/:id/view", h.RecordView)

	admin := e.Group(adminPrefix, middleware.BodyLimit(bodyLimit))
	if token != "" {
		admin.Use(h.keyAuth(token))
	}
	h.registerAdminRoutes(admin)

	live := e.Group(livePath)
	if token != "" {
		live.Use(h.keyAuth(token))
	}
	live.GET("", h.LivePosts)

	if rpc != nil {
		e.Any(rpcPath, echo.WrapHandler(rpc))
	}

	return e
}

func (h *Handler) registerAdminRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/stats", h.PostStats)
	g.GET("/posts/export", h.ExportPosts)
	g.POST("/posts/import", h.ImportPosts)
	g.POST("/posts/bulk-delete", h.BulkDeletePosts)
	g.POST("/posts/bulk-status", h.BulkPostStatus)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/duplicate", h.DuplicatePost)
	g.PATCH("/posts/:id/status", h.SetPostStatus)
	g.PATCH("/posts/:id/featured", h.SetPostFeatured)
	g.POST("/posts/:id/engagement", h.ReportEngagement)

	g.GET("/cms-v2/content", h.ListContent)
	g.POST("/cms-v2/content", h.CreateContent)
	g.GET("/cms-v2/stats", h.ContentStats)
	g.GET("/cms-v2/content/:id", h.GetContent)
	g.PUT("/cms-v2/content/:id", h.UpdateContent)
	g.DELETE("/cms-v2/content/:id", h.DeleteContent)
	g.POST("/cms-v2/content/:id/status", h.TransitionContent)
	g.GET("/cms-v2/content/:id/revisions", h.ContentRevisions)
	g.POST("/cms-v2/content/:id/revisions/:n/restore", h.RestoreRevision)

	g.GET("/email/subscribers", h.ListSubscribers)
	g.POST("/email/subscribers", h.CreateSubscriber)
	g.GET("/email/subscribers/stats", h.SubscriberStats)
	g.GET("/email/subscribers/export", h.ExportSubscribers)
	g.DELETE("/email/subscribers/:id", h.DeleteSubscriber)

	g.GET("/unified-videos", h.ListVideos)
	g.POST("/unified-videos", h.CreateVideo)
	g.GET("/unified-videos/stats", h.VideoStats)
	g.GET("/unified-videos/options", h.VideoOptions)
	g.POST("/unified-videos/bulk-publish", h.BulkPublishVideos)
	g.POST("/unified-videos/bulk-delete", h.BulkDeleteVideos)
	g.GET("/unified-videos/:id", h.GetVideo)
	g.PUT("/unified-videos/:id", h.UpdateVideo)
	g.DELETE("/unified-videos/:id", h.DeleteVideo)

	g.GET("/indicators", h.ListIndicators)
	g.POST("/indicators", h.CreateIndicator)
	g.GET("/indicators/stats", h.IndicatorStats)
	g.PUT("/indicators/:id", h.UpdateIndicator)
	g.DELETE("/indicators/:id", h.DeleteIndicator)
	g.PATCH("/indicators/:id/toggle", h.ToggleIndicator)
	g.POST("/indicators/:id/files", h.UploadIndicatorFile)
	g.POST("/indicators/:id/docs", h.UploadIndicatorDoc)

	g.GET("/trading-rooms", h.Rooms)
	g.GET("/trading-rooms/:slug/stats", h.RoomStats)

	g.POST("/media/upload", h.UploadMedia)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) keyAuth(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization + ",query:token",
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			return strings.TrimSpace(key) == token, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return h.handleError(c, err, http.StatusUnauthorized, "unauthorized")
		},
	})
}

func (h *Handler) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			h.log.LogAttrs(context.Background(), level, "HTTP request",
				slog.String("method", v.Method),
				slog.String("path", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("remote_addr", v.RemoteIP),
			)
			return nil
		},
	})
}
