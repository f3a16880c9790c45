package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dan/atelier/internal/editor"
	"github.com/dan/atelier/internal/session"
	"github.com/dan/atelier/internal/store"
)

// ── Template data ───────────────────────────────────────────────────────

type orderFormData struct {
	Nav        string
	Operator   string
	Form       editor.OrderForm
	CustomerID int64 // owning customer, for returning to the orders view
	Error      string
}

type newOrderData struct {
	Nav      string
	Operator string
	Form     editor.NewOrderForm
	Error    string
}

// ── Handlers ────────────────────────────────────────────────────────────

// handleOrderNew renders the new-order form. Every request seeds a fresh
// form: today's date and newly generated order/bill numbers.
func (s *Server) handleOrderNew(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.render.render(w, "order_new.html", newOrderData{
		Nav:      "customers",
		Operator: sess.Operator,
		Form:     editor.NewOrder(time.Now()),
	})
}

// handleOrderBalance returns the derived balance for the current total and
// advance values, recomputed live as the operator edits either field.
func (s *Server) handleOrderBalance(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	q := r.URL.Query()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, editor.Balance(q.Get("totalAmt"), q.Get("advance")))
}

func (s *Server) handleOrderCreate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := newOrderFormFrom(r)
	if err := form.Validate(); err != nil {
		var verr *editor.ValidationError
		msg := "Please fill in all required fields"
		if errors.As(err, &verr) {
			msg = "Please fill in all required fields: " + verr.Error()
		}
		// Rejected client-side: no request reaches the backend.
		s.render.render(w, "order_new.html", newOrderData{
			Nav:      "customers",
			Operator: sess.Operator,
			Form:     form,
			Error:    msg,
		})
		return
	}

	ws := s.workspace(sess.ID)
	if err := ws.client.CreateOrder(r.Context(), form.Payload()); err != nil {
		s.logActivity(sess.Operator, store.CategoryOrder, store.LevelError,
			fmt.Sprintf("create order %s failed: %v", form.OrderNo, err))
		s.render.render(w, "order_new.html", newOrderData{
			Nav:      "customers",
			Operator: sess.Operator,
			Form:     form,
			Error:    "Error creating order. Please try again.",
		})
		return
	}

	s.logActivity(sess.Operator, store.CategoryOrder, store.LevelSuccess,
		fmt.Sprintf("created order %s for %s", form.OrderNo, form.Name))
	await(r.Context(), ws.ctl.Refresh(), ws.ctl)
	http.Redirect(w, r, "/customers?flash=Order+created+successfully&flash_type=success", http.StatusSeeOther)
}

func (s *Server) handleOrderEdit(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	ws := s.workspace(sess.ID)
	ord, custID, ok := ws.ctl.State().Order(id)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	s.render.render(w, "order_form.html", orderFormData{
		Nav:        "customers",
		Operator:   sess.Operator,
		Form:       editor.OrderFormFrom(ord),
		CustomerID: custID,
	})
}

func (s *Server) handleOrderUpdate(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	custID, _ := strconv.ParseInt(r.FormValue("customer_id"), 10, 64)
	form := orderFormFrom(r, id)

	ws := s.workspace(sess.ID)
	if err := ws.client.UpdateOrder(r.Context(), id, form.Payload()); err != nil {
		s.logActivity(sess.Operator, store.CategoryOrder, store.LevelError,
			fmt.Sprintf("update order %d failed: %v", id, err))
		s.render.render(w, "order_form.html", orderFormData{
			Nav:        "customers",
			Operator:   sess.Operator,
			Form:       form,
			CustomerID: custID,
			Error:      "Failed to update order.",
		})
		return
	}

	s.logActivity(sess.Operator, store.CategoryOrder, store.LevelSuccess,
		fmt.Sprintf("updated order %d", id))
	st := await(r.Context(), ws.ctl.Refresh(), ws.ctl)

	// Re-open the orders view against the freshly fetched copy of the
	// customer, never the stale one.
	if custID != 0 && st.Customer(custID) != nil {
		http.Redirect(w, r, fmt.Sprintf("/customers/%d/orders", custID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/customers?flash=Order+updated&flash_type=success", http.StatusSeeOther)
}

func (s *Server) handleOrderDelete(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if !s.cfg.SupportsDelete {
		http.Error(w, "Deletion is disabled", http.StatusForbidden)
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	custID, _ := strconv.ParseInt(r.FormValue("customer_id"), 10, 64)

	ws := s.workspace(sess.ID)
	if err := ws.client.DeleteOrder(r.Context(), id); err != nil {
		s.logActivity(sess.Operator, store.CategoryOrder, store.LevelError,
			fmt.Sprintf("delete order %d failed: %v", id, err))
		http.Redirect(w, r, "/customers?flash=Failed+to+delete+order&flash_type=error", http.StatusSeeOther)
		return
	}

	s.logActivity(sess.Operator, store.CategoryOrder, store.LevelSuccess,
		fmt.Sprintf("deleted order %d", id))
	st := await(r.Context(), ws.ctl.Refresh(), ws.ctl)

	if custID != 0 && st.Customer(custID) != nil {
		http.Redirect(w, r, fmt.Sprintf("/customers/%d/orders", custID), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/customers?flash=Order+deleted&flash_type=success", http.StatusSeeOther)
}

// ── Form decoding ───────────────────────────────────────────────────────

func orderFormFrom(r *http.Request, id int64) editor.OrderForm {
	return editor.OrderForm{
		ID:           id,
		Date:         r.FormValue("date"),
		OrderNo:      r.FormValue("orderNo"),
		BillNo:       r.FormValue("billNo"),
		Tailoring:    r.FormValue("tailoring"),
		TotalAmt:     r.FormValue("totalAmt"),
		Advance:      r.FormValue("advance"),
		Balance:      r.FormValue("balance"),
		Fabric:       r.FormValue("fabric"),
		Shirt:        r.FormValue("shirt"),
		Kurta:        r.FormValue("kurta"),
		Trouser:      r.FormValue("trouser"),
		Suit:         r.FormValue("suit"),
		Bandi:        r.FormValue("bandi"),
		Jodhpuri:     r.FormValue("jodhpuri"),
		Sherwani:     r.FormValue("sherwani"),
		Other:        r.FormValue("other"),
		TrialDate:    r.FormValue("trialDate"),
		DeliveryDate: r.FormValue("deliveryDate"),
		Remark:       r.FormValue("remark"),
	}
}

func newOrderFormFrom(r *http.Request) editor.NewOrderForm {
	return editor.NewOrderForm{
		Name:         r.FormValue("name"),
		Mobile:       r.FormValue("mobile"),
		Address:      r.FormValue("address"),
		DOB:          r.FormValue("dob"),
		Date:         r.FormValue("date"),
		OrderNo:      r.FormValue("orderNo"),
		BillNo:       r.FormValue("billNo"),
		Tailoring:    r.FormValue("tailoring"),
		Fabric:       r.FormValue("fabric"),
		Shirt:        r.FormValue("shirt"),
		Kurta:        r.FormValue("kurta"),
		Trouser:      r.FormValue("trouser"),
		Suit:         r.FormValue("suit"),
		Bandi:        r.FormValue("bandi"),
		Jodhpuri:     r.FormValue("jodhpuri"),
		Sherwani:     r.FormValue("sherwani"),
		Other:        r.FormValue("other"),
		TrialDate:    r.FormValue("trialDate"),
		DeliveryDate: r.FormValue("deliveryDate"),
		Rating:       r.FormValue("rating"),
		TotalAmt:     r.FormValue("totalAmt"),
		Advance:      r.FormValue("advance"),
		Remark:       r.FormValue("remark"),
		Reason:       r.FormValue("reason"),
		Report:       r.FormValue("report"),
	}
}
