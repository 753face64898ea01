// Package database provides MongoDB connection management.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB wraps a MongoDB client bound to a single database.
type DB struct {
	Client *mongo.Client
	name   string
}

// ParseURI validates a MongoDB connection URI.
func ParseURI(uri string) (*options.ClientOptions, error) {
	if uri == "" {
		return nil, fmt.Errorf("database URI is empty")
	}
	opts := options.Client().ApplyURI(uri)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database URI: %w", err)
	}
	return opts, nil
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, name string) (*DB, error) {
	opts, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("database name is empty")
	}

	opts.SetConnectTimeout(10 * time.Second)
	opts.SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{Client: client, name: name}, nil
}

// Database returns the handle for the configured database.
func (db *DB) Database() *mongo.Database {
	return db.Client.Database(db.name)
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

// HealthCheck verifies the database connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}
