package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/finpulse/internal/finance"
	"github.com/theirongolddev/finpulse/internal/model"
)

func (s *Service) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok\n")
}

func (s *Service) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status())
}

func (s *Service) handleSaveProfile(c *gin.Context) {
	var in finance.ProfileInput
	if !bindJSON(c, &in) {
		return
	}
	id, err := s.backend.SaveProfile(c.Request.Context(), subjectOf(c), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": id})
}

func (s *Service) handleSaveSnapshot(c *gin.Context) {
	var snap model.FinancialSnapshot
	if !bindJSON(c, &snap) {
		return
	}
	subject := subjectOf(c)
	saved, err := s.backend.SaveSnapshot(c.Request.Context(), subject, snap)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.publish(subject, EventSnapshotSaved, saved)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Financial data saved successfully",
		"financial_data": saved,
	})
}

func (s *Service) handleGetSnapshot(c *gin.Context) {
	snap, err := s.backend.Snapshot(c.Request.Context(), subjectOf(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Service) handleAddTransaction(c *gin.Context) {
	var in finance.TransactionInput
	if !bindJSON(c, &in) {
		return
	}
	subject := subjectOf(c)
	tx, err := s.backend.AddTransaction(c.Request.Context(), subject, in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.publish(subject, EventTransactionAdded, tx)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Transaction added successfully",
		"transaction": tx,
	})
}

func (s *Service) handleListTransactions(c *gin.Context) {
	limit := finance.DefaultTransactionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	var since model.Date
	if raw := c.Query("since"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be a YYYY-MM-DD date"})
			return
		}
		since = d
	}

	txs, err := s.backend.Transactions(c.Request.Context(), subjectOf(c), since, limit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (s *Service) handleAdvice(c *gin.Context) {
	subject := subjectOf(c)
	adv, err := s.backend.Advise(c.Request.Context(), subject)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.publish(subject, EventAdviceGenerated, adv.Summary)
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"advice":            adv.Advice,
		"financial_summary": adv.Summary,
	})
}

func (s *Service) handleAnalysis(c *gin.Context) {
	a, err := s.backend.Analyze(c.Request.Context(), subjectOf(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Service) handleAddGoal(c *gin.Context) {
	var in finance.GoalInput
	if !bindJSON(c, &in) {
		return
	}
	subject := subjectOf(c)
	g, err := s.backend.AddGoal(c.Request.Context(), subject, in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.publish(subject, EventGoalAdded, g)
	c.JSON(http.StatusOK, gin.H{"success": true, "goal": g})
}

func (s *Service) handleListGoals(c *gin.Context) {
	goals, err := s.backend.Goals(c.Request.Context(), subjectOf(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (s *Service) handleEvents(c *gin.Context) {
	c.JSON(http.StatusOK, s.eventsFor(subjectOf(c)))
}

func (s *Service) handleStream(c *gin.Context) {
	w := c.Writer
	subject := subjectOf(c)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := make(chan Event, 16)
	id := s.addSubscriber(subject, ch)
	defer s.removeSubscriber(id)

	// Send the current analysis immediately when there is one.
	current := Event{Type: EventConnected, Timestamp: time.Now().UTC()}
	if a, err := s.backend.Analyze(c.Request.Context(), subject); err == nil {
		current.Type = EventAnalysis
		current.Payload = a
	}
	writeSSE(w, current)
	w.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			w.Flush()
		}
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

// writeError maps service errors onto HTTP responses.
func (s *Service) writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, finance.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, finance.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, finance.ErrNoSnapshot):
		c.JSON(http.StatusNotFound, gin.H{"error": "No financial data found"})
	case errors.Is(err, finance.ErrAdviceFailed):
		s.log.Warn("advice failed", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate advice"})
	default:
		s.log.Error("request failed", zap.String("request_id", c.GetString(requestIDKey)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
