package messaging

import "context"

// PublisherInterface is what services depend on to emit clinic events.
// The real RabbitMQ publisher and the in-memory test mock both satisfy it.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

var _ PublisherInterface = (*Publisher)(nil)
