package publisher

import (
	"encoding/json"
	"fmt"

	"github.com/prudhivi99/product-api/internal/messaging"
	"github.com/prudhivi99/product-api/internal/models"
)

const StockDecreasedQueue = "product.stock.decreased"

type StockPublisher struct {
	mq *messaging.RabbitMQ
}

func NewStockPublisher(mq *messaging.RabbitMQ) (*StockPublisher, error) {
	// Declare the queue
	if err := mq.DeclareQueue(StockDecreasedQueue); err != nil {
		return nil, err
	}

	return &StockPublisher{mq: mq}, nil
}

// PublishStockDecreased publishes a product.stock.decreased event
func (p *StockPublisher) PublishStockDecreased(product *models.Product, quantity int) error {
	event := models.StockDecreasedEvent{
		ProductID: product.ID.Hex(),
		Quantity:  quantity,
		Remaining: product.Stock,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.mq.Publish(StockDecreasedQueue, data)
}
