package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/easework/jobboard-api/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

const (
	collectionUsers            = "users"
	collectionUserProfiles     = "user_profiles"
	collectionEmployerProfiles = "employer_profiles"
	collectionIndustries       = "industries"
	collectionJobs             = "jobs"
	collectionApplications     = "applications"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes of every collection, including the
// unique ones the repositories rely on for conflict detection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	caseInsensitive := options.Collation{Locale: "en", Strength: 2}
	specs := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		collectionUserProfiles: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionEmployerProfiles: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionIndustries: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetCollation(&caseInsensitive)},
		},
		collectionJobs: {
			{Keys: bson.D{{Key: "posted_at", Value: -1}}},
			{Keys: bson.D{{Key: "industry_id", Value: 1}}},
			{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		},
		collectionApplications: {
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "job_posted_by", Value: 1}}},
			{Keys: bson.D{{Key: "applicant_id", Value: 1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

// contains matches s anywhere in a field, ignoring case.
func contains(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

// anyFieldContains matches documents where any of fields contains s.
func anyFieldContains(s string, fields ...string) bson.M {
	or := make(bson.A, len(fields))
	for i, f := range fields {
		or[i] = bson.M{f: contains(s)}
	}
	return bson.M{"$or": or}
}

// windowStages returns the $skip/$limit stages for w.
func windowStages(w ports.Window) []bson.D {
	var stages []bson.D
	if w.Offset > 0 {
		stages = append(stages, bson.D{{Key: "$skip", Value: w.Offset}})
	}
	if w.Limit > 0 {
		stages = append(stages, bson.D{{Key: "$limit", Value: w.Limit}})
	}
	return stages
}

// facetPage splits the tail of a pipeline into the requested window and
// the total match count in one round trip.
func facetPage(w ports.Window) bson.D {
	items := bson.A{}
	for _, st := range windowStages(w) {
		items = append(items, st)
	}
	if len(items) == 0 {
		items = append(items, bson.D{{Key: "$match", Value: bson.M{}}})
	}
	return bson.D{{Key: "$facet", Value: bson.M{
		"items": items,
		"total": bson.A{bson.D{{Key: "$count", Value: "n"}}},
	}}}
}

type facetResult[T any] struct {
	Items []T `bson:"items"`
	Total []struct {
		N int `bson:"n"`
	} `bson:"total"`
}

// aggregatePage runs a pipeline ending in facetPage.
func aggregatePage[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]T, int, error) {
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []facetResult[T]
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	if len(out) == 0 {
		return []T{}, 0, nil
	}
	total := 0
	if len(out[0].Total) > 0 {
		total = out[0].Total[0].N
	}
	items := out[0].Items
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

// findPage runs a paged Find alongside a CountDocuments with the same filter.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D, w ports.Window) ([]T, int, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().SetSort(sort).SetSkip(int64(max(w.Offset, 0)))
	if w.Limit > 0 {
		opts.SetLimit(int64(w.Limit))
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}
