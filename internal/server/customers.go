package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dan/atelier/internal/editor"
	"github.com/dan/atelier/internal/listing"
	"github.com/dan/atelier/internal/models"
	"github.com/dan/atelier/internal/session"
	"github.com/dan/atelier/internal/store"
)

// pageSizeOptions are the page sizes offered by the select control.
var pageSizeOptions = []int{5, 10, 20, 50}

// ── Template data ───────────────────────────────────────────────────────

type customerListData struct {
	Nav         string
	Operator    string
	VM          listing.ViewModel
	SizeOptions []int
	Flash       string
	FlashType   string
}

type customerFormData struct {
	Nav      string
	Operator string
	Form     editor.CustomerForm
	Error    string
}

type ordersData struct {
	Nav       string
	Operator  string
	Customer  models.Customer
	CanDelete bool
}

// ── Handlers ────────────────────────────────────────────────────────────

func (s *Server) handleCustomerList(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	ws := s.workspace(sess.ID)

	st := ws.ctl.State()
	if st.Phase == listing.Idle {
		st = await(r.Context(), ws.ctl.Refresh(), ws.ctl)
	}

	fl, flType := flash(r)
	s.render.render(w, "customers.html", customerListData{
		Nav:         "customers",
		Operator:    sess.Operator,
		VM:          listing.Render(st, ws.ctl.Caps()),
		SizeOptions: pageSizeOptions,
		Flash:       fl,
		FlashType:   flType,
	})
}

// handleCustomerRows drives the list controller from htmx partial requests
// and renders just the listing fragment. The trigger parameter says which
// control fired: a search keystroke, the Enter key, a page link, or the
// page-size select.
func (s *Server) handleCustomerRows(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	ws := s.workspace(sess.ID)
	params := r.URL.Query()

	var ch <-chan listing.State
	switch params.Get("trigger") {
	case "input":
		ch = ws.ctl.SearchInput(params.Get("q"))
	case "submit":
		ch = ws.ctl.SearchSubmit(params.Get("q"))
	case "size":
		n, _ := strconv.Atoi(params.Get("size"))
		ch = ws.ctl.SetPageSize(n)
	case "page":
		p, _ := strconv.Atoi(params.Get("page"))
		ch = ws.ctl.SetPage(p)
	default:
		ch = ws.ctl.Refresh()
	}

	st := await(r.Context(), ch, ws.ctl)
	s.render.renderBlock(w, "customers.html", "listing", struct {
		VM listing.ViewModel
	}{
		VM: listing.Render(st, ws.ctl.Caps()),
	})
}

// handleCustomerOrders shows a customer's embedded orders. The customer is
// always re-resolved by identity against the freshest fetched list, never
// served from a stale in-memory copy.
func (s *Server) handleCustomerOrders(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	ws := s.workspace(sess.ID)
	if ws.ctl.State().Phase == listing.Idle {
		await(r.Context(), ws.ctl.Refresh(), ws.ctl)
	}

	ws.ctl.Select(id)
	cust := ws.ctl.Selected()
	if cust == nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	s.render.render(w, "orders.html", ordersData{
		Nav:       "customers",
		Operator:  sess.Operator,
		Customer:  *cust,
		CanDelete: ws.ctl.Caps().Delete,
	})
}

func (s *Server) handleCustomerEdit(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	ws := s.workspace(sess.ID)
	cust := ws.ctl.State().Customer(id)
	if cust == nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}

	s.render.render(w, "customer_form.html", customerFormData{
		Nav:      "customers",
		Operator: sess.Operator,
		Form:     editor.CustomerFormFrom(*cust),
	})
}

func (s *Server) handleCustomerUpdate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := editor.CustomerForm{
		ID:      id,
		Name:    r.FormValue("name"),
		Mobile:  r.FormValue("mobile"),
		Address: r.FormValue("address"),
		DOB:     r.FormValue("dob"),
	}

	ws := s.workspace(sess.ID)
	if err := ws.client.UpdateCustomer(r.Context(), id, form.Payload()); err != nil {
		// The editor stays open; nothing is retried.
		s.logActivity(sess.Operator, store.CategoryCustomer, store.LevelError,
			fmt.Sprintf("update customer %d failed: %v", id, err))
		s.render.render(w, "customer_form.html", customerFormData{
			Nav:      "customers",
			Operator: sess.Operator,
			Form:     form,
			Error:    "Failed to update customer.",
		})
		return
	}

	s.logActivity(sess.Operator, store.CategoryCustomer, store.LevelSuccess,
		fmt.Sprintf("updated customer %d", id))
	await(r.Context(), ws.ctl.Refresh(), ws.ctl)
	http.Redirect(w, r, "/customers?flash=Customer+updated&flash_type=success", http.StatusSeeOther)
}

// handleCustomerDelete removes a customer and all their orders. The form is
// confirm-gated in the template; cancelling submits nothing.
func (s *Server) handleCustomerDelete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if !s.cfg.SupportsDelete {
		http.Error(w, "Deletion is disabled", http.StatusForbidden)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		return
	}

	ws := s.workspace(sess.ID)
	if err := ws.client.DeleteCustomer(r.Context(), id); err != nil {
		s.logActivity(sess.Operator, store.CategoryCustomer, store.LevelError,
			fmt.Sprintf("delete customer %d failed: %v", id, err))
		http.Redirect(w, r, "/customers?flash=Failed+to+delete+customer&flash_type=error", http.StatusSeeOther)
		return
	}

	if sel := ws.ctl.Selected(); sel != nil && sel.ID == id {
		ws.ctl.ClearSelection()
	}
	s.logActivity(sess.Operator, store.CategoryCustomer, store.LevelSuccess,
		fmt.Sprintf("deleted customer %d", id))
	await(r.Context(), ws.ctl.Refresh(), ws.ctl)
	http.Redirect(w, r, "/customers?flash=Customer+deleted&flash_type=success", http.StatusSeeOther)
}
