package server

// routes registers all HTTP handlers on the server's mux.
func (s *Server) routes() {
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Auth
	s.router.HandleFunc("GET /login", s.handleLoginPage)
	s.router.HandleFunc("POST /login", s.handleLogin)
	s.router.HandleFunc("POST /logout", s.requireSession(s.handleLogout))

	// Customer listing (the core) and customer editing
	s.router.HandleFunc("GET /customers", s.requireSession(s.handleCustomerList))
	s.router.HandleFunc("GET /customers/rows", s.requireSession(s.handleCustomerRows))
	s.router.HandleFunc("GET /customers/{id}/orders", s.requireSession(s.handleCustomerOrders))
	s.router.HandleFunc("GET /customers/{id}/edit", s.requireSession(s.handleCustomerEdit))
	s.router.HandleFunc("POST /customers/{id}", s.requireSession(s.handleCustomerUpdate))
	s.router.HandleFunc("POST /customers/{id}/delete", s.requireSession(s.handleCustomerDelete))

	// Orders
	s.router.HandleFunc("GET /orders/new", s.requireSession(s.handleOrderNew))
	s.router.HandleFunc("POST /orders", s.requireSession(s.handleOrderCreate))
	s.router.HandleFunc("GET /orders/balance", s.requireSession(s.handleOrderBalance))
	s.router.HandleFunc("GET /orders/{id}/edit", s.requireSession(s.handleOrderEdit))
	s.router.HandleFunc("POST /orders/{id}", s.requireSession(s.handleOrderUpdate))
	s.router.HandleFunc("POST /orders/{id}/delete", s.requireSession(s.handleOrderDelete))

	// Spreadsheet import
	s.router.HandleFunc("GET /import", s.requireSession(s.handleImportPage))
	s.router.HandleFunc("POST /import", s.requireSession(s.handleImport))

	// Audit trail
	s.router.HandleFunc("GET /audit", s.requireSession(s.handleAudit))
}
