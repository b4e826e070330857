package models

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

const (
	TableSales        = "sales"
	TableSaleProducts = "sale_products"
	TableThemes       = "themes"
)

// ChangeEvent mirrors a row-change payload on the realtime feed. New carries
// the row after insert/update, Old the row before update/delete.
type ChangeEvent struct {
	Table string      `json:"table"`
	Type  EventType   `json:"eventType"`
	New   interface{} `json:"new,omitempty"`
	Old   interface{} `json:"old,omitempty"`
}
