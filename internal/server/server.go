// Package server exposes the hub over HTTP: intent parsing, chat with
// card-producing arbitration, backlog/project/activity reads, and execution
// of confirmed action cards.
package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/activity"
	"github.com/solobuddy/hub/internal/chat"
	"github.com/solobuddy/hub/internal/intent"
	"github.com/solobuddy/hub/internal/models"
	"github.com/solobuddy/hub/internal/storage"
)

// Responder produces the plain-conversation reply when no card applies.
type Responder interface {
	Respond(ctx context.Context, history []chat.Message, data models.Context) (string, error)
}

type Server struct {
	echo            *echo.Echo
	store           storage.Storage
	scanner         *activity.Scanner
	resolver        *intent.Resolver
	responder       Responder
	logger          *zap.Logger
	maxScanProjects int
}

func New(store storage.Storage, scanner *activity.Scanner, resolver *intent.Resolver, responder Responder, maxScanProjects int, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:            e,
		store:           store,
		scanner:         scanner,
		resolver:        resolver,
		responder:       responder,
		logger:          logger,
		maxScanProjects: maxScanProjects,
	}

	api := e.Group("/api")
	api.POST("/intent/parse", s.handleParseIntent)
	api.POST("/chat", s.handleChat)
	api.POST("/actions/execute", s.handleExecuteAction)
	api.GET("/backlog", s.handleListBacklog)
	api.GET("/projects", s.handleListProjects)
	api.GET("/activity", s.handleActivity)

	return s
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// gatherContext assembles the read-only snapshot the pipeline works against.
// Storage or scan failures degrade to empty slices; intent parsing must keep
// working with whatever context is available.
func (s *Server) gatherContext(ctx context.Context) models.Context {
	data := models.Context{}

	items, err := s.store.ListBacklog(ctx)
	if err != nil {
		s.logger.Warn("failed to load backlog for context", zap.Error(err))
	} else {
		data.BacklogItems = items
	}

	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		s.logger.Warn("failed to load projects for context", zap.Error(err))
	} else {
		data.Projects = projects
	}

	if s.scanner != nil {
		data.GitActivity = s.scanner.Scan(ctx, data.Projects, s.maxScanProjects)
	}
	return data
}

type parseRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleParseIntent(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message is required")
	}

	ctx := c.Request().Context()
	data := s.gatherContext(ctx)
	result := s.resolver.Resolve(ctx, req.Message, data)

	s.logger.Info("intent parsed",
		zap.String("intent", string(result.IntentType)),
		zap.Int("confidence", result.Confidence),
		zap.String("source", string(result.Source)))

	return c.JSON(http.StatusOK, result)
}

type chatRequest struct {
	Message string         `json:"message"`
	History []chat.Message `json:"history"`
}

type chatResponse struct {
	Response   string             `json:"response"`
	ActionCard *intent.ActionCard `json:"actionCard"`
	Intent     intent.Category    `json:"intent"`
	Confidence int                `json:"confidence"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message is required")
	}

	requestID := uuid.New().String()
	ctx := c.Request().Context()
	data := s.gatherContext(ctx)

	result := s.resolver.Resolve(ctx, req.Message, data)

	history := append(req.History, chat.Message{Role: "user", Content: req.Message})
	response, err := s.responder.Respond(ctx, history, data)
	if err != nil {
		s.logger.Error("chat response failed",
			zap.Error(err), zap.String("request_id", requestID))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get response")
	}

	s.logger.Info("chat handled",
		zap.String("request_id", requestID),
		zap.String("intent", string(result.IntentType)),
		zap.Int("confidence", result.Confidence))

	return c.JSON(http.StatusOK, chatResponse{
		Response:   response,
		ActionCard: result.Action,
		Intent:     result.IntentType,
		Confidence: result.Confidence,
	})
}

type executeRequest struct {
	Action *intent.ActionCard `json:"action"`
}

// handleExecuteAction applies a confirmed action card. Only the mutating
// cards do storage work; the display-only ones are acknowledged as no-ops.
func (s *Server) handleExecuteAction(c echo.Context) error {
	var req executeRequest
	if err := c.Bind(&req); err != nil || req.Action == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Action is required")
	}

	ctx := c.Request().Context()
	card := req.Action

	switch card.Type {
	case intent.CardAddIdea:
		item := &models.BacklogItem{
			Title:    card.Title,
			Priority: card.SuggestedPriority,
			Format:   card.SuggestedFormat,
		}
		if err := s.store.AddBacklogItem(ctx, item); err != nil {
			s.logger.Error("failed to add backlog item", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save idea")
		}
		return c.JSON(http.StatusOK, map[string]any{"status": "created", "item": item})

	case intent.CardChangePriority:
		if card.Idea == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Card has no idea to update")
		}
		if err := s.store.UpdatePriority(ctx, card.Idea.ID, card.NewPriority); err != nil {
			s.logger.Error("failed to update priority", zap.Error(err), zap.Int64("id", card.Idea.ID))
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update priority")
		}
		return c.JSON(http.StatusOK, map[string]any{"status": "updated"})

	default:
		return c.JSON(http.StatusOK, map[string]any{"status": "noop"})
	}
}

func (s *Server) handleListBacklog(c echo.Context) error {
	items, err := s.store.ListBacklog(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to list backlog", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load backlog")
	}
	if items == nil {
		items = []models.BacklogItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.store.ListProjects(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to list projects", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load projects")
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleActivity(c echo.Context) error {
	ctx := c.Request().Context()
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load projects")
	}
	stats := []models.GitActivityStat{}
	if s.scanner != nil {
		stats = s.scanner.Scan(ctx, projects, s.maxScanProjects)
	}
	return c.JSON(http.StatusOK, stats)
}
