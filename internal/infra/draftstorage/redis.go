package draftstorage

import (
	"context"
	"errors"
	"time"

	"booking-checkout/internal/infra"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Redis stores each draft as a plain string value. A zero ttl means no expiry.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	tracer trace.Tracer
}

func NewRedis(client redis.UniversalClient, ttl time.Duration, tracer trace.Tracer) *Redis {
	if client == nil {
		panic("draftstorage: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("booking-checkout.infra.draftstorage")
	}
	return &Redis{client: client, ttl: ttl, tracer: tracer}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := r.tracer.Start(ctx, "draftstorage.redis.get", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr("draft not found", nil, infra.KindNotFound)
		}
		span.RecordError(err)
		return nil, infra.WrapRepoErr("failed to load draft", err, redisKind(err))
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := r.tracer.Start(ctx, "draftstorage.redis.set", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		span.RecordError(err)
		return infra.WrapRepoErr("failed to persist draft", err, redisKind(err))
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	ctx, span := r.tracer.Start(ctx, "draftstorage.redis.delete", trace.WithAttributes(attribute.String("draft.key", key)))
	defer span.End()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		span.RecordError(err)
		return infra.WrapRepoErr("failed to delete draft", err, redisKind(err))
	}
	return nil
}

func redisKind(err error) infra.RepositoryErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return infra.KindTimeout
	}
	return infra.KindStorageFailure
}
