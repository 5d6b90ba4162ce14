// Package status exposes a small read-only status API next to the bot.
package status

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/NasaVasa/pricewatch/internal/catalog"
	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AlertLister interface {
	ListAlerts(ctx context.Context, userID string) ([]domain.Alert, error)
}

type ItemSearcher interface {
	Search(text string, limit int) []catalog.Item
}

type alertResponse struct {
	ID             uint      `json:"id"`
	UserID         string    `json:"user_id"`
	ItemID         string    `json:"item_id"`
	ItemName       string    `json:"item_name"`
	ItemQuality    int       `json:"item_quality"`
	PriceThreshold string    `json:"price_threshold"`
	Direction      string    `json:"direction"`
	CreatedAt      time.Time `json:"created_at"`
}

type itemResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Server struct {
	alerts AlertLister
	items  ItemSearcher
	token  string
	logger *zap.Logger
	engine *gin.Engine
}

// NewServer builds the status API. Everything under /api requires
// "Authorization: Bearer <token>"; an empty token rejects every call.
func NewServer(alerts AlertLister, items ItemSearcher, token string, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{alerts: alerts, items: items, token: token, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.logRequests())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)
	api := s.engine.Group("/api", s.requireToken())
	api.GET("/users/:user_id/alerts", s.listAlerts)
	api.GET("/items", s.searchItems)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("status api listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listAlerts(c *gin.Context) {
	alerts, err := s.alerts.ListAlerts(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		s.logger.Warn("status api list alerts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}

	out := make([]alertResponse, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, alertResponse{
			ID:             alert.ID,
			UserID:         alert.UserID,
			ItemID:         alert.ItemID,
			ItemName:       alert.ItemName,
			ItemQuality:    int(alert.Quality),
			PriceThreshold: alert.Threshold.String(),
			Direction:      string(alert.Direction),
			CreatedAt:      alert.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) searchItems(c *gin.Context) {
	matches := s.items.Search(c.Query("q"), catalog.MaxSuggestions)
	out := make([]itemResponse, 0, len(matches))
	for _, item := range matches {
		out = append(out, itemResponse{ID: item.ID, Name: item.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		presented := strings.TrimPrefix(header, "Bearer ")
		if s.token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(s.token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(
			"status api request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
