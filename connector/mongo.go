// Package connector executes the persistence side effects the document layer
// requests. Only deletion is needed by the relation binding core.
package connector

import (
	"context"
	"os"

	"github.com/go-errors/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

type MongoConnectorOpts struct {
	options.ClientOptions
	Name     string
	Database string
	Logger   *zerolog.Logger
}

type MongoConnector struct {
	ctx     context.Context
	client  *mongo.Client
	options *MongoConnectorOpts
	log     zerolog.Logger
}

/**
 * NewMongoConnector creates a new MongoDB connector.
 * It initializes the MongoDB client with the provided options and checks the connection.
 */
func NewMongoConnector(opts *MongoConnectorOpts) (*MongoConnector, error) {
	ctx := context.Background()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	connector := &MongoConnector{
		ctx:     ctx,
		options: opts,
		log:     log.With().Str("connector", opts.Name).Logger(),
	}

	err := connector.connect()
	if err != nil {
		return nil, err
	}

	if err := connector.Ping(); err != nil {
		return nil, err
	}

	connector.log.Info().Str("database", opts.Database).Msg("connected")
	return connector, nil
}

func NewDefaultMongoConnector() (*MongoConnector, error) {
	uri := getEnv("MONGO_URI", "mongodb://localhost:27017")

	clientOptions := (&options.ClientOptions{}).ApplyURI(uri)

	conn, err := connstring.Parse(uri)
	if err != nil {
		return nil, err
	}

	dbName := conn.Database
	if dbName == "" {
		dbName = "test"
	}

	opts := MongoConnectorOpts{
		ClientOptions: *clientOptions,
		Name:          "mongodb",
		Database:      getEnv("MONGO_DATABASE", dbName),
	}

	return NewMongoConnector(&opts)
}

/**
 * connect initializes the MongoDB client with the provided options.
 */
func (receiver *MongoConnector) connect() error {
	opts := receiver.options.ClientOptions

	client, err := mongo.Connect(&opts)

	if err != nil {
		return err
	}

	receiver.client = client
	return nil
}

/**
 * Ping checks the connection to the MongoDB server.
 */
func (receiver *MongoConnector) Ping() error {
	if receiver.client == nil {
		return errors.New("mongo client not initialized")
	}
	return receiver.client.Ping(receiver.ctx, nil)
}

/**
 * Disconnect closes the connection to the MongoDB server.
 */
func (receiver *MongoConnector) Disconnect() error {
	if receiver.client == nil {
		return errors.New("mongo client not initialized")
	}
	receiver.log.Info().Msg("disconnecting")
	return receiver.client.Disconnect(receiver.ctx)
}

func (receiver *MongoConnector) GetName() string {
	return receiver.options.Name
}

func (receiver *MongoConnector) GetDatabaseName() string {
	return receiver.options.Database
}

/**
 * Database returns the configured database handle.
 */
func (receiver *MongoConnector) Database() (*mongo.Database, error) {
	if receiver.client == nil {
		return nil, errors.New("mongo client not initialized")
	}

	if receiver.options.Database == "" {
		return nil, errors.New("mongo database name is required")
	}

	return receiver.client.Database(receiver.options.Database), nil
}

// DeleteOne removes the document with the given id from the named collection.
// It satisfies document.Persister. A missing document is not an error; the
// cascade only cares that the delete request was issued.
func (receiver *MongoConnector) DeleteOne(ctx context.Context, collection string, id bson.ObjectID) error {
	db, err := receiver.Database()
	if err != nil {
		return err
	}

	result, err := db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	receiver.log.Debug().
		Str("collection", collection).
		Str("id", id.Hex()).
		Int64("deleted", result.DeletedCount).
		Msg("delete executed")
	return nil
}

func getEnv(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
