package server

import (
	"context"
	"sync"

	"github.com/dan/atelier/internal/backend"
	"github.com/dan/atelier/internal/listing"
)

// workspace is the per-operator-session pair of backend client and list
// controller. The client's token source re-reads the session store on every
// outgoing request, so a cleared credential takes effect immediately.
type workspace struct {
	client *backend.Client
	ctl    *listing.Controller
}

type workspaceRegistry struct {
	mu sync.Mutex
	ws map[string]*workspace
}

func newWorkspaceRegistry() *workspaceRegistry {
	return &workspaceRegistry{ws: make(map[string]*workspace)}
}

func (r *workspaceRegistry) drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ws, sessionID)
}

// workspace returns the session's workspace, creating it on first use.
func (s *Server) workspace(sessionID string) *workspace {
	s.workspaces.mu.Lock()
	defer s.workspaces.mu.Unlock()

	if w, ok := s.workspaces.ws[sessionID]; ok {
		return w
	}

	tokens := backend.TokenSource(func(ctx context.Context) string {
		sess, err := s.sessions.Load(ctx, sessionID)
		if err != nil {
			return ""
		}
		return sess.Token
	})

	client := backend.NewClient(backend.NewGateway(s.cfg.BackendURL, tokens))
	ctl := listing.NewController(client, listing.Config{
		PageSize: s.cfg.PageSize,
		Debounce: s.cfg.Debounce,
		Caps: listing.Capabilities{
			Pagination: s.cfg.SupportsPagination,
			Delete:     s.cfg.SupportsDelete,
		},
	})

	w := &workspace{client: client, ctl: ctl}
	s.workspaces.ws[sessionID] = w
	return w
}

// await blocks until the controller settles the induced fetch, falling back
// to the current state snapshot when the request context ends first.
func await(ctx context.Context, ch <-chan listing.State, ctl *listing.Controller) listing.State {
	select {
	case st := <-ch:
		return st
	case <-ctx.Done():
		return ctl.State()
	}
}
