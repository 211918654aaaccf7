package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVersionConflict means the document changed underneath a read-modify-write
var ErrVersionConflict = errors.New("document version conflict")

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "farmniti"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "farmniti"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "farmniti"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return nil
}

// WithTransaction runs fn inside a MongoDB transaction. Mission start/complete
// and reward redemption each touch two documents; the transaction keeps the
// pair consistent under partial failure.
func WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) error {
	session, err := MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, fn)
	return err
}

// ReplaceVersioned replaces a document only if its stored version still equals
// previousVersion. The caller bumps the version on the replacement before the
// call. Returns ErrVersionConflict when a concurrent writer got there first,
// which closes the read-then-write race on shared balance fields.
func ReplaceVersioned(ctx context.Context, collection string, id primitive.ObjectID, previousVersion int64, doc interface{}) error {
	result, err := MongoDatabase.Collection(collection).ReplaceOne(ctx,
		bson.M{"_id": id, "version": previousVersion}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}
