package service

import (
	log "github.com/sirupsen/logrus"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

func dispatchEvents(dispatcher EventDispatcher, events ...Event) {
	for _, event := range events {
		if err := dispatcher.Dispatch(event); err != nil {
			log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
		}
	}
}
