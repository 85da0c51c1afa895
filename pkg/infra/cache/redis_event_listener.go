package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustChat/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

const reconnectDelay = time.Second

type redisEventListener struct {
	logger      *logrus.Logger
	cache       Client
	mu          sync.RWMutex
	subscribers map[reflect.Type][]interface{}
	registry    map[string]reflect.Type
}

func NewRedisEventListener(
	logger *logrus.Logger,
	cache Client,
	registry map[string]reflect.Type,
) EventListener {
	return &redisEventListener{
		logger:      logger,
		cache:       cache,
		subscribers: make(map[reflect.Type][]interface{}),
		registry:    registry,
	}
}

func RegisterEventSubscriber[T event.Event](listener EventListener, subscriber EventSubscriber[T]) {
	var evt T
	listener.Register(reflect.TypeOf(evt), subscriber)
}

func (r *redisEventListener) Register(eventType reflect.Type, subscriber interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[eventType] = append(r.subscribers[eventType], subscriber)
}

// Listen blocks until ctx is done, resubscribing whenever the pubsub connection drops.
func (r *redisEventListener) Listen(ctx context.Context, channels ...Channel) {
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, string(ch))
	}

	for {
		r.listenOnce(ctx, names)
		if ctx.Err() != nil {
			r.logger.Info("redis pubsub listener shutting down")
			return
		}
		r.logger.Warn("redis pubsub disconnected, reconnecting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (r *redisEventListener) listenOnce(ctx context.Context, names []string) {
	pubSub := r.cache.RedisClient().Subscribe(ctx, names...)
	defer func() { _ = pubSub.Close() }()

	r.logger.WithField("channels", names).Debug("redis pubsub connected")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = pubSub.Close()
		case <-done:
		}
	}()

	for msg := range pubSub.Channel() {
		r.dispatch(ctx, msg.Payload)
	}
}

func (r *redisEventListener) dispatch(ctx context.Context, payload string) {
	var envelope RedisMessage
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		r.logger.WithError(err).Error("error decoding redis message")
		return
	}

	concreteType, ok := r.registry[envelope.Type]
	if !ok {
		r.logger.WithError(fmt.Errorf("unknown event type: %s", envelope.Type)).Error("error getting event type")
		return
	}

	eventPtr := reflect.New(concreteType)
	if err := json.Unmarshal(envelope.Event, eventPtr.Interface()); err != nil {
		r.logger.WithError(err).Error("error unmarshalling event data into concrete type")
		return
	}
	eventValue := eventPtr.Elem()

	r.mu.RLock()
	subs := r.subscribers[concreteType]
	r.mu.RUnlock()

	for _, sub := range subs {
		method := reflect.ValueOf(sub).MethodByName("OnEvent")
		if !method.IsValid() {
			continue
		}
		results := method.Call([]reflect.Value{reflect.ValueOf(ctx), eventValue})
		if len(results) > 0 && !results[0].IsNil() {
			if err, ok := results[0].Interface().(error); ok {
				r.logger.WithError(err).WithField("event", envelope.Type).Error("event subscriber failed")
			}
		}
	}
}
