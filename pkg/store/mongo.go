package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
)

// Defaults for MongoStore.
const (
	DefaultDatabase   = "seatchart"
	DefaultCollection = "charts"
)

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string // defaults to DefaultDatabase
	Collection string // defaults to DefaultCollection
	Timeout    time.Duration
	Logger     *log.Logger
}

// MongoStore keeps charts in a MongoDB collection with the chart ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetServerSelectionTimeout(opts.Timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "connect to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	if opts.Logger != nil {
		opts.Logger.Debug("connected to mongo", "database", opts.Database, "collection", opts.Collection)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, doc *chart.Document) (string, error) {
	if err := prepare(doc, s.now()); err != nil {
		return "", err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "save chart %s", doc.ID)
	}
	return doc.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*chart.Document, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var doc chart.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load chart %s", id)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *MongoStore) List(ctx context.Context, n int) ([]Summary, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if n > 0 {
		findOpts.SetLimit(int64(n))
	}
	cur, err := s.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list charts")
	}
	var docs []chart.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode charts")
	}

	summaries := make([]Summary, len(docs))
	for i := range docs {
		summaries[i] = Summarize(&docs[i])
	}
	return summaries, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete chart %s", id)
	}
	if res.DeletedCount == 0 {
		return NotFound(id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
