package models

// StockDecreasedEvent is published after a stock decrement commits
type StockDecreasedEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}
