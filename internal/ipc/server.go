package ipc

import (
	"context"
	"fmt"
	"sync"
	"zeebeapi/internal/types"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// HandlerFunc serves one request. A returned error is sent back as the response's error.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Server answers requests published on the events it handles.
type Server struct {
	Bus Bus

	handlers map[string]HandlerFunc
}

func NewServer(bus Bus) *Server {
	return &Server{Bus: bus, handlers: make(map[string]HandlerFunc)}
}

func (s *Server) Handle(event string, h HandlerFunc) {
	s.handlers[event] = h
}

// Serve subscribes to every handled event and dispatches requests until ctx is done.
// This is a blocking call. In-flight requests finish before Serve returns.
// Buses deliver a request to every subscriber, so Serve fails with types.ErrBusInUse when the bus
// reports another server already subscribed to one of the events.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.checkUnserved(ctx); err != nil {
		return err
	}

	subs := make([]Subscription, 0, len(s.handlers))
	defer func() {
		for _, sub := range subs {
			_ = sub.Close()
		}
	}()

	var wg sync.WaitGroup
	for event, h := range s.handlers {
		sub, err := s.Bus.Subscribe(ctx, event)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", event, err)
		}
		subs = append(subs, sub)

		wg.Add(1)
		go func(event string, h HandlerFunc, sub Subscription) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-sub.Messages():
					if !ok {
						return
					}
					wg.Add(1)
					go func() {
						defer wg.Done()
						s.dispatch(ctx, event, h, msg)
					}()
				}
			}
		}(event, h, sub)
	}
	log.WithField("events", len(s.handlers)).Info("ipc server listening")

	<-ctx.Done()
	wg.Wait()
	return nil
}

func (s *Server) checkUnserved(ctx context.Context) error {
	counter, ok := s.Bus.(SubscriberCounter)
	if !ok {
		return nil
	}
	for event := range s.handlers {
		n, err := counter.NumSubscribers(ctx, event)
		if err != nil {
			return fmt.Errorf("count subscribers of %s: %w", event, err)
		}
		if n > 0 {
			return types.Err(types.ErrBusInUse, nil, "%s has %d subscriber(s)", event, n)
		}
	}
	return nil
}

func (s *Server) dispatch(ctx context.Context, event string, h HandlerFunc, msg []byte) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil || req.ID == "" {
		log.WithError(err).WithField("event", event).Warn("dropping malformed request")
		return
	}

	resp := Response{}
	out, err := s.invoke(ctx, h, req.Payload)
	if err != nil {
		resp.Err = NewRemoteError(err)
	} else if out != nil {
		b, err := json.Marshal(out)
		if err != nil {
			resp.Err = NewRemoteError(fmt.Errorf("marshal %s response: %w", event, err))
		} else {
			resp.Payload = b
		}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		log.WithError(err).WithField("event", event).Error("marshal response")
		return
	}
	// The request context may already be canceled on shutdown; the response is still owed.
	if err := s.Bus.Publish(context.WithoutCancel(ctx), ResponseChannel(event, req.ID), b); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event": event,
			"id":    req.ID,
		}).Error("publish response")
	}
}

func (s *Server) invoke(ctx context.Context, h HandlerFunc, payload json.RawMessage) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, payload)
}
