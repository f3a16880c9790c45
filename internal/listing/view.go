package listing

import "github.com/dan/atelier/internal/models"

// Customer resolves a customer by identity in the current result set,
// returning nil when not present.
func (s State) Customer(id int64) *models.Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			c := s.Customers[i]
			return &c
		}
	}
	return nil
}

// Order finds an order across the current result set and returns it along
// with its owning customer's id.
func (s State) Order(id int64) (models.Order, int64, bool) {
	for _, c := range s.Customers {
		for _, o := range c.Orders {
			if o.ID == id {
				return o, c.ID, true
			}
		}
	}
	return models.Order{}, 0, false
}

// Row is one customer row with its 1-based position across the whole result
// set, so numbering continues across pages.
type Row struct {
	Position int
	Customer models.Customer
}

// ViewModel is everything the listing templates need, derived from State by
// a pure function so the controller stays independent of the rendering
// layer.
type ViewModel struct {
	Rows          []Row
	NoResults     bool
	Loading       bool
	Summary       string
	Pages         []PageItem
	Page          int
	Size          int
	Query         string
	TotalElements int
	CanPaginate   bool
	CanDelete     bool
}

// Render derives the view-model for a settled (or still loading) state. A
// failed fetch renders identically to an empty result; the distinction lives
// only in the logs.
func Render(st State, caps Capabilities) ViewModel {
	vm := ViewModel{
		Loading:       st.Phase == Loading || st.Phase == Idle,
		NoResults:     st.Phase == Empty || st.Phase == Failed,
		Page:          st.Page,
		Size:          st.Size,
		Query:         st.Query,
		TotalElements: st.TotalElements,
		CanDelete:     caps.Delete,
	}

	if st.Phase != Populated {
		return vm
	}

	vm.Rows = make([]Row, len(st.Customers))
	for i, c := range st.Customers {
		vm.Rows[i] = Row{Position: st.Page*st.Size + i + 1, Customer: c}
	}
	vm.Summary = Summary(st.Page, st.Size, st.TotalElements)
	if caps.Pagination {
		vm.CanPaginate = true
		vm.Pages = Window(st.Page, st.TotalPages)
	}
	return vm
}
