package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kritika1265/chartkit/pkg/chartfile"
	apperrors "github.com/kritika1265/chartkit/pkg/errors"
	"github.com/kritika1265/chartkit/pkg/httputil"
)

// Mongo connection defaults.
const (
	DefaultMongoURI        = "mongodb://localhost:27017"
	DefaultMongoDatabase   = "chartkit"
	DefaultMongoCollection = "charts"
)

// MongoStore persists charts in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection. Zero values fall back to
// the package defaults.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name.
	Database string

	// Collection is the collection name.
	Collection string
}

// chartDoc is the BSON shape of a stored chart. IDs are stored as strings
// so documents stay readable in mongosh and the driver needs no custom
// UUID codec.
type chartDoc struct {
	ID         string               `bson:"_id"`
	Name       string               `bson:"name"`
	Definition chartfile.Definition `bson:"definition"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}

func toDoc(chart *Chart) chartDoc {
	return chartDoc{
		ID:         chart.ID.String(),
		Name:       chart.Name,
		Definition: chart.Definition,
		CreatedAt:  chart.CreatedAt,
		UpdatedAt:  chart.UpdatedAt,
	}
}

func fromDoc(doc chartDoc) (*Chart, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "parse chart id %q", doc.ID)
	}
	return &Chart{
		ID:         id,
		Name:       doc.Name,
		Definition: doc.Definition,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// NewMongoStore connects to MongoDB and verifies the connection. The ping
// is retried with backoff: in compose and orchestration setups the
// database regularly becomes reachable a few seconds after the service.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = DefaultMongoURI
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "connect to mongodb")
	}

	err = httputil.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "ping mongodb at %s", cfg.URI)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save inserts or replaces the chart.
func (s *MongoStore) Save(ctx context.Context, chart *Chart) error {
	chart.UpdatedAt = time.Now().UTC()
	doc := toDoc(chart)

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "save chart %s", chart.ID)
	}
	return nil
}

// Get returns the chart with the given ID.
func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Chart, error) {
	var doc chartDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "get chart %s", id)
	}
	return fromDoc(doc)
}

// List returns all stored charts ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]*Chart, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "list charts")
	}

	var docs []chartDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStore, err, "decode charts")
	}

	charts := make([]*Chart, 0, len(docs))
	for _, doc := range docs {
		chart, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

// Delete removes the chart with the given ID.
func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "delete chart %s", id)
	}
	if res.DeletedCount == 0 {
		return apperrors.New(apperrors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
