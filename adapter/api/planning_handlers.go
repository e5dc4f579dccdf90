package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	planningQueries "github.com/felixgeelhaar/optiflow/internal/planning/application/queries"
)

func (s *Server) planningAvailable(c *gin.Context) bool {
	if s.app == nil || s.app.PlanningHandler == nil {
		s.writeError(c, ErrUnavailable)
		return false
	}
	return true
}

func (s *Server) dateQuery(c *gin.Context) (planningQueries.DateQuery, bool) {
	date, err := dateParam(c, "date")
	if err != nil {
		s.writeError(c, err)
		return planningQueries.DateQuery{}, false
	}
	return planningQueries.DateQuery{Date: date}, true
}

// matrix handles GET /api/v1/matrix
func (s *Server) matrix(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	matrix, err := s.app.PlanningHandler.Matrix(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// abcde handles GET /api/v1/abcde
func (s *Server) abcde(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	groups, err := s.app.PlanningHandler.ABCDE(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// board handles GET /api/v1/board
func (s *Server) board(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	columns, err := s.app.PlanningHandler.Board(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, columns)
}

// dayPlan handles GET /api/v1/plan?date=YYYY-MM-DD
func (s *Server) dayPlan(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	query, ok := s.dateQuery(c)
	if !ok {
		return
	}
	plan, err := s.app.PlanningHandler.DayPlan(c.Request.Context(), query)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// schedule handles GET /api/v1/schedule?date=YYYY-MM-DD
func (s *Server) schedule(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	query, ok := s.dateQuery(c)
	if !ok {
		return
	}
	schedule, err := s.app.PlanningHandler.Schedule(c.Request.Context(), query)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// scheduleICS handles GET /api/v1/schedule.ics?date=YYYY-MM-DD
func (s *Server) scheduleICS(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	if s.app.ICSExporter == nil {
		s.writeError(c, ErrUnavailable)
		return
	}
	query, ok := s.dateQuery(c)
	if !ok {
		return
	}
	blocks, day, err := s.app.PlanningHandler.TimeBlocks(c.Request.Context(), query)
	if err != nil {
		s.writeError(c, err)
		return
	}
	data, err := s.app.ICSExporter.Export(day, blocks)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "optiflow-"+day.String()+".ics"))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// stats handles GET /api/v1/stats
func (s *Server) stats(c *gin.Context) {
	if !s.planningAvailable(c) {
		return
	}
	stats, err := s.app.PlanningHandler.Stats(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
