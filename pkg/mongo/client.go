package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/servekit/pkg/logger"
)

// Option configures connection behaviour.
type Option func(*connectOptions)

type connectOptions struct {
	log *slog.Logger
}

// WithLogger sets the logger used to report failed connection attempts.
func WithLogger(log *slog.Logger) Option {
	return func(o *connectOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// New connects to MongoDB and pings the primary, retrying up to cfg.RetryAttempts
// times with cfg.RetryInterval between attempts. It stops early when ctx is done.
func New(ctx context.Context, cfg Config, opts ...Option) (*mongo.Client, error) {
	o := connectOptions{log: logger.Noop()}
	for _, opt := range opts {
		opt(&o)
	}

	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := connect(ctx, cfg)
		if err == nil {
			return client, nil
		}
		lastErr = err

		o.log.LogAttrs(ctx, slog.LevelWarn, "mongo connection attempt failed",
			logger.Component("mongo"),
			logger.Attempt(attempt),
			logger.Error(err),
		)

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrFailedToConnectToMongo, lastErr, ctx.Err())
		case <-timer.C:
		}
	}

	return nil, errors.Join(ErrFailedToConnectToMongo, lastErr)
}

// NewWithDatabase connects and returns the database named by cfg.Database.
func NewWithDatabase(ctx context.Context, cfg Config, opts ...Option) (*mongo.Database, error) {
	client, err := New(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return client.Database(cfg.Database), nil
}

func connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.ConnectionURL).
			SetConnectTimeout(cfg.ConnectTimeout).
			SetServerSelectionTimeout(cfg.ConnectTimeout).
			SetMaxPoolSize(cfg.MaxPoolSize).
			SetMinPoolSize(cfg.MinPoolSize).
			SetMaxConnIdleTime(cfg.MaxConnIdleTime).
			SetRetryWrites(cfg.RetryWrites).
			SetRetryReads(cfg.RetryReads),
	)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}

	return client, nil
}
