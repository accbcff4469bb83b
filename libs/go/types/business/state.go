package business

import "time"

// AppState is the application state a route operation reads and returns.
// Routes is a read-through snapshot of the ledger, replaced whole on load.
// LoadedAt is when the load that produced Routes started; it stays unchanged
// when a load is skipped.
type AppState struct {
	Account  string    `json:"account"`
	Routes   []Route   `json:"routes"`
	LoadedAt time.Time `json:"-"`
}

// WithRoutes returns a copy of s holding routes
func (s AppState) WithRoutes(routes []Route) AppState {
	s.Routes = routes
	return s
}

// WithAccount returns a copy of s holding account
func (s AppState) WithAccount(account string) AppState {
	s.Account = account
	return s
}
