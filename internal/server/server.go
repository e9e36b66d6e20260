// Package server implements the answering service: it answers questions about
// the trade dataset with an LLM and serves the sample trades table.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/diogo/tradebot/internal/models"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

type askRequest struct {
	Question string `json:"question"`
	IsFirst  bool   `json:"is_first"`
}

// Server wires the HTTP routes to the answerer and the data files.
type Server struct {
	cfg      *Config
	answerer Answerer
	logger   *log.Logger

	// Prompt material, read once at startup
	profitsCSV string
	summaryCSV string
}

// Option configures a Server
type Option func(*Server)

// WithLogger replaces the default stderr logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New loads the prompt tables and builds a server.
func New(cfg *Config, answerer Answerer, opts ...Option) (*Server, error) {
	if answerer == nil {
		return nil, errors.New("answerer is required")
	}

	s := &Server{
		cfg:      cfg,
		answerer: answerer,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.profitsCSV, err = readText(cfg.ProfitsPath()); err != nil {
		return nil, fmt.Errorf("load profits table: %w", err)
	}
	if s.summaryCSV, err = readText(cfg.SummaryPath()); err != nil {
		return nil, fmt.Errorf("load summary table: %w", err)
	}
	return s, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID(), s.cors())
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches all HTTP routes to the router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.OPTIONS(models.PathAsk, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST(models.PathAsk, s.ask)
	router.GET(models.PathTrades, s.listTrades)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("answering service listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID tags each request and logs it
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		s.logger.Printf("[%s] %s %s -> %d in %s", id, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

// cors allows any origin with credentials, echoing the caller's origin
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		c.Next()
	}
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()

	if req.IsFirst {
		answer, err := s.answerer.Complete(ctx, GreetingPrompt, Params{
			Temperature: models.GreetingTemperature,
			MaxTokens:   models.GreetingMaxTokens,
		})
		if err != nil {
			s.logger.Printf("[%s] greeting failed: %v", c.GetString("request_id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.NoQuestionText})
		return
	}

	prompt := TradePrompt(s.profitsCSV, s.summaryCSV, question)
	answer, err := s.answerer.Complete(ctx, prompt, Params{
		Temperature: models.AnswerTemperature,
		MaxTokens:   models.AnswerMaxTokens,
	})
	if err != nil {
		s.logger.Printf("[%s] answer failed: %v", c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// listTrades reads the sample on every request so edits show up without a restart
func (s *Server) listTrades(c *gin.Context) {
	records, err := ReadTrades(s.cfg.TradesPath())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
