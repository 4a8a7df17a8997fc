package redis_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	redis_adapter "marketplace/internal/adapters/out/redis"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
	ctx       context.Context
}

func TestRedisIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(RedisIntegrationTestSuite))
}

func (s *RedisIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)
	s.client = goredis.NewClient(&goredis.Options{Addr: endpoint})
	s.Require().NoError(s.client.Ping(s.ctx).Err())
}

func (s *RedisIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RedisIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(s.ctx).Err())
}

func (s *RedisIntegrationTestSuite) TestNumberer_IsSequential() {
	numberer := redis_adapter.NewNumberer(s.client, "")

	first, err := numberer.Next(s.ctx)
	s.Require().NoError(err)
	second, err := numberer.Next(s.ctx)
	s.Require().NoError(err)

	s.Equal("SO-000001", first)
	s.Equal("SO-000002", second)
}

func (s *RedisIntegrationTestSuite) TestNumberer_ConcurrentCallersGetDistinctNumbers() {
	numberer := redis_adapter.NewNumberer(s.client, "numbers:test")

	const callers = 20
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, callers)
		wg   sync.WaitGroup
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := numberer.Next(s.ctx)
			s.NoError(err)
			mu.Lock()
			seen[n] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(seen, callers)
}

func (s *RedisIntegrationTestSuite) TestNumberer_SeedAtLeast() {
	numberer := redis_adapter.NewNumberer(s.client, "")

	s.Require().NoError(numberer.SeedAtLeast(s.ctx, 41))
	next, err := numberer.Next(s.ctx)
	s.Require().NoError(err)
	s.Equal("SO-000042", next)

	// a lower floor leaves the counter alone
	s.Require().NoError(numberer.SeedAtLeast(s.ctx, 5))
	next, err = numberer.Next(s.ctx)
	s.Require().NoError(err)
	s.Equal("SO-000043", next)
}

func (s *RedisIntegrationTestSuite) TestPublisher_DeliversEventToSubscribers() {
	publisher := redis_adapter.NewPublisher(s.client, "")
	sub := s.client.Subscribe(s.ctx, redis_adapter.DefaultChannel)
	defer sub.Close()
	_, err := sub.Receive(s.ctx)
	s.Require().NoError(err)

	admin := kernel.MustActor(kernel.NewUUID(), kernel.Admin)
	record := history.Record{
		ID:         kernel.NewUUID(),
		Entity:     transition.SalesOrder,
		EntityID:   kernel.NewUUID(),
		Transition: transition.StartMaterialProcurement,
		From:       "pending",
		To:         "material_procurement",
		Actor:      admin,
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(publisher.Publish(s.ctx, record))

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	msg, err := sub.ReceiveMessage(ctx)
	s.Require().NoError(err)

	var event redis_adapter.TransitionEvent
	s.Require().NoError(json.Unmarshal([]byte(msg.Payload), &event))
	s.Equal(redis_adapter.NewTransitionEvent(record), event)
	s.Equal("salesOrder", event.EntityType)
	s.Equal("admin", event.ActorRole)
}
