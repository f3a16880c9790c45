package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/dan/atelier/internal/backend"
	"github.com/dan/atelier/internal/session"
	"github.com/dan/atelier/internal/store"
)

type importData struct {
	Nav       string
	Operator  string
	Error     string
	Flash     string
	FlashType string
}

func (s *Server) handleImportPage(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	fl, flType := flash(r)
	s.render.render(w, "import.html", importData{
		Nav:       "import",
		Operator:  sess.Operator,
		Flash:     fl,
		FlashType: flType,
	})
}

// handleImport validates the spreadsheet locally and forwards it to the
// backend import endpoint. Rejected files never leave the dashboard.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	// Allow some slack over the file limit for the multipart overhead; the
	// file size itself is checked exactly below.
	if err := r.ParseMultipartForm(backend.MaxImportSize + 1<<20); err != nil {
		s.renderImportError(w, sess, "Please select an Excel file (.xlsx or .xls) to upload.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderImportError(w, sess, "Please select an Excel file (.xlsx or .xls) to upload.")
		return
	}
	defer file.Close()

	ws := s.workspace(sess.ID)
	result, err := ws.client.ImportSpreadsheet(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		var fileErr *backend.FileError
		if errors.As(err, &fileErr) {
			s.renderImportError(w, sess, fileErr.Reason)
			return
		}
		log.Printf("[import] %s: %v", header.Filename, err)
		s.logActivity(sess.Operator, store.CategoryImport, store.LevelError,
			fmt.Sprintf("import %s failed: %v", header.Filename, err))
		s.renderImportError(w, sess, "Failed to import file. Please try again.")
		return
	}

	msg := "File imported successfully!"
	if result.Confirmed {
		msg = "Excel file has been imported successfully!"
	}
	s.logActivity(sess.Operator, store.CategoryImport, store.LevelSuccess,
		fmt.Sprintf("imported %s", header.Filename))

	// The freshly imported customers should be visible immediately.
	await(r.Context(), ws.ctl.Refresh(), ws.ctl)
	http.Redirect(w, r, "/import?flash="+url.QueryEscape(msg)+"&flash_type=success", http.StatusSeeOther)
}

func (s *Server) renderImportError(w http.ResponseWriter, sess *session.Session, msg string) {
	s.render.render(w, "import.html", importData{
		Nav:      "import",
		Operator: sess.Operator,
		Error:    msg,
	})
}
