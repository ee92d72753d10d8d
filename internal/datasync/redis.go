package datasync

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisBackend receives JSON envelopes published on <prefix><path>.
type RedisBackend struct {
	url           string
	channelPrefix string
}

func NewRedisBackend(url string, channelPrefix string) *RedisBackend {
	return &RedisBackend{url: url, channelPrefix: channelPrefix}
}

func (b *RedisBackend) Name() string {
	return "redis"
}

func (b *RedisBackend) Connect(ctx context.Context, clientId string) (Session, error) {
	opts, err := redis.ParseURL(b.url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.ClientName = "vekimeteo-" + clientId

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to reach redis: %w", err)
	}

	return &redisSession{client: client, channelPrefix: b.channelPrefix}, nil
}

type redisSession struct {
	lock          sync.Mutex
	client        *redis.Client
	channelPrefix string
	pubsub        *redis.PubSub
}

func (s *redisSession) Listen(ctx context.Context, path string, deliver func([]DataEvent)) error {
	channel := s.channelPrefix + path
	pubsub := s.client.Subscribe(ctx, channel)

	s.lock.Lock()
	s.pubsub = pubsub
	s.lock.Unlock()

	// Wait for the subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("unable to subscribe to %s: %w", channel, err)
	}

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return fmt.Errorf("redis receive: %w", err)
		}

		events, err := ParseJSONFrame([]byte(msg.Payload))
		if err != nil {
			logrus.Warnf("Ignore redis message on %s: %v", msg.Channel, err)
			continue
		}
		deliver(events)
	}
}

func (s *redisSession) Unsubscribe(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Unsubscribe(ctx)
}

func (s *redisSession) Close() error {
	s.lock.Lock()
	pubsub := s.pubsub
	s.lock.Unlock()

	if pubsub != nil {
		pubsub.Close()
	}
	return s.client.Close()
}
