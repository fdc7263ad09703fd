// Package server wires the HTTP routes to the on-call resolution core and
// the alert sender.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lordvidex/oncall-gateway/internal/alert"
	"github.com/lordvidex/oncall-gateway/internal/oncall"
)

// Resolver turns a schedule identifier into the current on-call roster.
type Resolver interface {
	ResolveOnCall(ctx context.Context, schedule oncall.ScheduleIdentifier) (oncall.AlertInfo, error)
}

// Sender rings a list of phone numbers through the alert provider.
type Sender interface {
	Send(ctx context.Context, phoneNumbers []string) (alert.Result, error)
}

// Server holds the route table and the collaborators the handlers call into.
type Server struct {
	router   *gin.Engine
	logger   zerolog.Logger
	resolver Resolver
	sender   Sender
}

// New builds the server and registers all routes.
func New(logger zerolog.Logger, resolver Resolver, sender Sender) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		router:   gin.New(),
		logger:   logger,
		resolver: resolver,
		sender:   sender,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/whosoncall", s.whosOnCall)
	s.router.GET("/alert", s.alertOnCall)
	s.router.GET("/status", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler exposes the route table for an http.Server or a test.
func (s *Server) Handler() http.Handler { return s.router }
