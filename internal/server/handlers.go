package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lordvidex/oncall-gateway/internal/metrics"
	"github.com/lordvidex/oncall-gateway/internal/oncall"
)

// Status is the liveness payload.
type Status struct {
	Health Health `json:"health"`
}

// Health is the reported service health.
type Health string

const (
	Healthy Health = "Healthy"
	Sick    Health = "Sick"
)

func (s *Server) health(c *gin.Context) {
	s.logger.Info().Msg("responding healthy to healthcheck")
	c.JSON(http.StatusOK, Status{Health: Healthy})
}

func (s *Server) whosOnCall(c *gin.Context) {
	logger := s.logger.With().Str("action", "who_is_on_call").Logger()

	schedule, ok := s.parseSchedule(c)
	if !ok {
		return
	}
	logger.Info().Stringer("schedule", schedule).Msg("got request to look up on-call persons for schedule")

	info, err := s.resolver.ResolveOnCall(c.Request.Context(), schedule)
	if err != nil {
		s.renderError(c, logger, err)
		return
	}
	metrics.ResolutionsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	c.JSON(http.StatusOK, info)
}

func (s *Server) alertOnCall(c *gin.Context) {
	logger := s.logger.With().Str("action", "alert").Logger()

	schedule, ok := s.parseSchedule(c)
	if !ok {
		return
	}
	logger.Info().Stringer("schedule", schedule).Msg("got alert request")

	info, err := s.resolver.ResolveOnCall(c.Request.Context(), schedule)
	if err != nil {
		s.renderError(c, logger, err)
		return
	}
	metrics.ResolutionsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()

	numbers := info.PhoneNumbers()
	logger.Info().Strs("phone_numbers", numbers).Msg("will call these phones")

	metrics.AlertsTriggeredTotal.Inc()
	result, err := s.sender.Send(c.Request.Context(), numbers)
	if err != nil {
		logger.Warn().Err(err).Msg("error while sending alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", result)
}

// parseSchedule extracts the schedule identifier from the query string and
// renders a 400 itself when the input is invalid.
func (s *Server) parseSchedule(c *gin.Context) (oncall.ScheduleIdentifier, bool) {
	schedule, err := oncall.ParseScheduleIdentifier(c.Request.URL.Query())
	if err != nil {
		s.logger.Warn().Err(err).Str("query", c.Request.URL.RawQuery).Msg("rejecting request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return oncall.ScheduleIdentifier{}, false
	}
	return schedule, true
}

func (s *Server) renderError(c *gin.Context, logger zerolog.Logger, err error) {
	code := oncall.StatusCode(err)
	logger.Warn().Err(err).Int("status_code", code).Msg("error while processing request")
	metrics.ResolutionsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
	c.JSON(code, gin.H{"error": err.Error()})
}
