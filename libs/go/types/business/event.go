package business

// RouteEvent is published after a route write lands on the ledger
type RouteEvent struct {
	EventType  string        `json:"event_type"`
	RouteID    string        `json:"route_id"`
	Owner      string        `json:"owner"`
	Status     RouteStatus   `json:"status"`
	PrevStatus RouteStatus   `json:"prev_status,omitempty"`
	Receipt    LedgerReceipt `json:"receipt"`
	OccurredAt int64         `json:"occurred_at"`
}
