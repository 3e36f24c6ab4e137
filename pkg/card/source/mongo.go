package source

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/cardpress/pkg/card"
	"github.com/matzehuels/cardpress/pkg/errors"
)

// DefaultCollection is the collection Mongo reads when none is given.
const DefaultCollection = "cards"

// Mongo reads card documents from a MongoDB collection. Each document is one
// card using the same field names as the definition files. Cards come back
// sorted by set code, collector number and name.
type Mongo struct {
	coll   *mongo.Collection
	filter bson.M
}

// MongoOptions selects the collection and an optional document filter.
type MongoOptions struct {
	Database   string
	Collection string
	Set        string // only cards with this set_code
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri string, opts MongoOptions) (*Mongo, error) {
	if opts.Database == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo database name is required")
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(10*time.Second))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}
	return NewMongo(client.Database(opts.Database).Collection(opts.Collection), opts.Set), nil
}

// NewMongo reads from an existing collection handle.
func NewMongo(coll *mongo.Collection, set string) *Mongo {
	filter := bson.M{}
	if set != "" {
		filter["set_code"] = set
	}
	return &Mongo{coll: coll, filter: filter}
}

func (m *Mongo) Load(ctx context.Context) ([]card.Card, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "set_code", Value: 1},
		{Key: "collector", Value: 1},
		{Key: "name", Value: 1},
	})
	cur, err := m.coll.Find(ctx, m.filter, findOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find cards")
	}
	var cards []card.Card
	if err := cur.All(ctx, &cards); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode cards")
	}
	return cards, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.coll.Database().Client().Disconnect(ctx)
}
