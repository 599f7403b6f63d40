package event

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/service"
)

type Handler func(event service.Event) error

// Dispatcher logs every domain event and fans it out to the handlers subscribed to its type.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

func (d *Dispatcher) Subscribe(eventType string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

func (d *Dispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"type":    event.Type(),
		"payload": event,
	}).Info("domain event")

	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[event.Type()]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			return err
		}
	}
	return nil
}
