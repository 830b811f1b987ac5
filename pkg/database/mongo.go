package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// OpenMongo connects to MongoDB with bounded retry and verifies the
// connection with a ping before returning.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	var client *mongo.Client
	var err error

	b := backoff{
		maxRetries: 5,
		delay:      500 * time.Millisecond,
		maxDelay:   5 * time.Second,
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	for attempt := 0; ; attempt++ {
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(ctxPing, readpref.Primary())
			cancel()
			if err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("connect mongo failed after retries: %w", err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect mongo canceled: %w", ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	return client, nil
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay {
		return b.maxDelay
	}
	return d
}
