package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	DB *mongo.Database
}

// New connects to the document store. Callers treat a failure here as
// a structural backend problem and fall back to the in-memory store
// rather than aborting startup.
func New(uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(uri).SetRetryWrites(true)
	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

func (c *Client) Close(ctx context.Context) error {
	return c.DB.Client().Disconnect(ctx)
}
