package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dan/atelier/internal/backend"
	"github.com/dan/atelier/internal/models"
)

// stubFetcher records every listing request and answers with a configurable
// response function.
type stubFetcher struct {
	mu      sync.Mutex
	calls   []backend.ListQuery
	respond func(call int, q backend.ListQuery) (*models.CustomerPage, error)
}

func (f *stubFetcher) ListCustomers(ctx context.Context, q backend.ListQuery) (*models.CustomerPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	call := len(f.calls)
	f.mu.Unlock()
	return f.respond(call, q)
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *stubFetcher) call(i int) backend.ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func pageOf(names ...string) *models.CustomerPage {
	customers := make([]models.Customer, len(names))
	for i, n := range names {
		customers[i] = models.Customer{ID: int64(i + 1), Name: n}
	}
	return &models.CustomerPage{Result: customers, TotalPages: 1, TotalElements: len(names)}
}

func waitState(t *testing.T, ch <-chan State) State {
	t.Helper()
	select {
	case st := <-ch:
		return st
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the controller to settle")
		return State{}
	}
}

func TestSearchInputDebounces(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return pageOf("Arjun"), nil
	}}
	ctl := NewController(fetch, Config{Debounce: 20 * time.Millisecond})

	ctl.SearchInput("a")
	ctl.SearchInput("ar")
	ch := ctl.SearchInput("arjun")

	st := waitState(t, ch)

	if n := fetch.callCount(); n != 1 {
		t.Fatalf("fetch count = %d, want 1 (intermediate keystrokes must not query)", n)
	}
	if q := fetch.call(0); q.Search != "arjun" || q.Page != 0 {
		t.Errorf("queried with %+v, want final text on page 0", q)
	}
	if st.Phase != Populated || st.Query != "arjun" {
		t.Errorf("settled at phase=%v query=%q, want populated with final text", st.Phase, st.Query)
	}
}

func TestSearchSubmitSkipsDebounce(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return pageOf("Arjun"), nil
	}}
	// An hour-long quiet period: only an explicit submit can query.
	ctl := NewController(fetch, Config{Debounce: time.Hour})

	ctl.SearchInput("arj")
	st := waitState(t, ctl.SearchSubmit("arjun"))

	if n := fetch.callCount(); n != 1 {
		t.Fatalf("fetch count = %d, want 1", n)
	}
	if st.Page != 0 || st.Query != "arjun" {
		t.Errorf("settled at page=%d query=%q, want page 0 with submitted text", st.Page, st.Query)
	}
}

func TestSetPageSizeResetsToFirstPage(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return &models.CustomerPage{
			Result:        []models.Customer{{ID: 1, Name: "Arjun"}},
			TotalPages:    5,
			TotalElements: 45,
		}, nil
	}}
	ctl := NewController(fetch, Config{})

	waitState(t, ctl.Refresh())
	waitState(t, ctl.SetPage(3))
	st := waitState(t, ctl.SetPageSize(20))

	if st.Page != 0 || st.Size != 20 {
		t.Errorf("state page=%d size=%d, want page 0 size 20", st.Page, st.Size)
	}
	last := fetch.call(fetch.callCount() - 1)
	if last.Page != 0 || last.Size != 20 {
		t.Errorf("last query %+v, want page 0 size 20", last)
	}
}

func TestSetPageSizeIgnoresNonPositive(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return pageOf("Arjun"), nil
	}}
	ctl := NewController(fetch, Config{})
	waitState(t, ctl.Refresh())

	st := waitState(t, ctl.SetPageSize(0))
	if st.Size != defaultPageSize {
		t.Errorf("size = %d, want the default %d", st.Size, defaultPageSize)
	}
	if n := fetch.callCount(); n != 1 {
		t.Errorf("fetch count = %d, want 1 (no re-query for a rejected size)", n)
	}
}

func TestSetPageClampsToRange(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return &models.CustomerPage{
			Result:        []models.Customer{{ID: 1, Name: "Arjun"}},
			TotalPages:    5,
			TotalElements: 45,
		}, nil
	}}
	ctl := NewController(fetch, Config{})
	waitState(t, ctl.Refresh())

	st := waitState(t, ctl.SetPage(99))
	if st.Page != 4 {
		t.Errorf("page = %d, want 4 (clamped to the last page)", st.Page)
	}
}

func TestSetPageSamePageIsInert(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return pageOf("Arjun"), nil
	}}
	ctl := NewController(fetch, Config{})
	waitState(t, ctl.Refresh())

	waitState(t, ctl.SetPage(0))
	if n := fetch.callCount(); n != 1 {
		t.Errorf("fetch count = %d, want 1 (navigating to the current page is a no-op)", n)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		if q.Search == "old" {
			<-release
			return pageOf("Stale"), nil
		}
		return pageOf("Fresh"), nil
	}}
	ctl := NewController(fetch, Config{})

	ctl.SearchSubmit("old")
	st := waitState(t, ctl.SearchSubmit("new"))

	if len(st.Customers) != 1 || st.Customers[0].Name != "Fresh" {
		t.Fatalf("settled with %+v, want the fresh result", st.Customers)
	}

	// Let the superseded fetch finish; it must not clobber the newer state.
	close(release)
	time.Sleep(50 * time.Millisecond)

	after := ctl.State()
	if len(after.Customers) != 1 || after.Customers[0].Name != "Fresh" {
		t.Errorf("state after stale completion = %+v, want the fresh result kept", after.Customers)
	}
}

func TestFetchFailurePresentsAsEmpty(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return nil, errors.New("backend down")
	}}
	ctl := NewController(fetch, Config{})

	st := waitState(t, ctl.Refresh())
	if st.Phase != Failed {
		t.Fatalf("phase = %v, want failed", st.Phase)
	}
	if st.Customers != nil {
		t.Errorf("customers = %v, want nil", st.Customers)
	}

	vm := Render(st, Capabilities{Pagination: true, Delete: true})
	if !vm.NoResults {
		t.Error("a failed fetch must render as no results")
	}
	if vm.Loading {
		t.Error("a failed fetch must not render as loading")
	}
}

func TestEmptyResultPhase(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return &models.CustomerPage{}, nil
	}}
	ctl := NewController(fetch, Config{})

	st := waitState(t, ctl.Refresh())
	if st.Phase != Empty {
		t.Errorf("phase = %v, want empty", st.Phase)
	}
}

func TestTotalPagesFallback(t *testing.T) {
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		return &models.CustomerPage{
			Result:        []models.Customer{{ID: 1, Name: "Arjun"}},
			TotalElements: 23,
		}, nil
	}}
	ctl := NewController(fetch, Config{})

	st := waitState(t, ctl.Refresh())
	if st.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3 derived from 23 elements at size 10", st.TotalPages)
	}
}

func TestSelectionSurvivesByIdentity(t *testing.T) {
	withOrders := &models.CustomerPage{
		Result: []models.Customer{
			{ID: 7, Name: "Arjun", Orders: []models.Order{{ID: 1, OrderNo: "ORD-1"}}},
		},
		TotalPages:    1,
		TotalElements: 1,
	}
	fetch := &stubFetcher{respond: func(call int, q backend.ListQuery) (*models.CustomerPage, error) {
		if call >= 2 {
			fresh := *withOrders
			fresh.Result = []models.Customer{
				{ID: 7, Name: "Arjun", Orders: []models.Order{{ID: 1}, {ID: 2}}},
			}
			return &fresh, nil
		}
		return withOrders, nil
	}}
	ctl := NewController(fetch, Config{})

	waitState(t, ctl.Refresh())
	ctl.Select(7)

	// After a mutation elsewhere, the selected customer resolves against
	// the freshest list.
	waitState(t, ctl.Refresh())
	sel := ctl.Selected()
	if sel == nil {
		t.Fatal("selected customer not resolved")
	}
	if len(sel.Orders) != 2 {
		t.Errorf("selected customer has %d orders, want 2 from the fresh copy", len(sel.Orders))
	}

	ctl.ClearSelection()
	if ctl.Selected() != nil {
		t.Error("selection not cleared")
	}
}
