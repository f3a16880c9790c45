package server

import (
	"net/http"

	"github.com/dan/atelier/internal/session"
	"github.com/dan/atelier/internal/store"
)

type auditData struct {
	Nav      string
	Operator string
	Events   []store.ActivityEvent
	Total    int
}

// handleAudit lists the most recent dashboard activity.
func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	events, err := s.activity.Recent(100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	total, _ := s.activity.Count()

	s.render.render(w, "audit.html", auditData{
		Nav:      "audit",
		Operator: sess.Operator,
		Events:   events,
		Total:    total,
	})
}
