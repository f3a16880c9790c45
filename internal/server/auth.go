package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/dan/atelier/internal/session"
	"github.com/dan/atelier/internal/store"
)

// sessionCookie names the browser cookie carrying the session ID. It is a
// session cookie (no MaxAge): the credential's scope ends with the browser
// session, matching the TTL on the store side.
const sessionCookie = "atelier_session"

type loginData struct {
	Nav      string
	Operator string
	Error    string
}

// currentSession resolves the operator's session, or nil when signed out.
// A missing cookie, an expired entry, and unreadable stored data all mean
// the same thing: proceed as unauthenticated.
func (s *Server) currentSession(r *http.Request) *session.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	sess, err := s.sessions.Load(r.Context(), c.Value)
	if err != nil {
		return nil
	}
	return sess
}

type sessionHandler func(http.ResponseWriter, *http.Request, *session.Session)

// requireSession guards dashboard routes: without a session, page requests
// are redirected to the login page and htmx partial requests get a 401 with
// a client-side redirect hint.
func (s *Server) requireSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.currentSession(r)
		if sess == nil {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.currentSession(r) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.currentSession(r) != nil {
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
		return
	}
	s.render.render(w, "login.html", loginData{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token := strings.TrimSpace(r.FormValue("token"))
	operator := strings.TrimSpace(r.FormValue("operator"))
	if token == "" {
		s.render.render(w, "login.html", loginData{Error: "A backend access token is required."})
		return
	}
	if operator == "" {
		operator = "operator"
	}

	sess := session.New(token, operator)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Printf("[auth] save session: %v", err)
		s.render.render(w, "login.html", loginData{Error: "Could not start a session. Please try again."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logActivity(operator, store.CategoryAuth, store.LevelInfo, "signed in")
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := s.sessions.Clear(r.Context(), sess.ID); err != nil {
		log.Printf("[auth] clear session: %v", err)
	}
	s.workspaces.drop(sess.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	s.logActivity(sess.Operator, store.CategoryAuth, store.LevelInfo, "signed out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// logActivity records an audit event, logging instead of failing when the
// activity store is unavailable.
func (s *Server) logActivity(operator, category, level, message string) {
	if err := s.activity.Log(operator, category, level, message); err != nil {
		log.Printf("[audit] %v", err)
	}
}
