package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// JobRepository implements ports.JobRepository using MongoDB.
type JobRepository struct {
	col *mongo.Collection
}

var _ ports.JobRepository = (*JobRepository)(nil)

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var job domain.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound(domain.ResourceJob, id)
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": job.ID}, job)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound(domain.ResourceJob, job.ID)
	}
	return nil
}

// Delete removes the job together with its applications.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound(domain.ResourceJob, id)
	}

	apps := r.col.Database().Collection(collectionApplications)
	if _, err := apps.DeleteMany(ctx, bson.M{"job_id": id}); err != nil {
		return fmt.Errorf("delete applications of job: %w", err)
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, f ports.JobFilter) ([]domain.JobSummary, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	jobs, total, err := aggregatePage[domain.JobSummary](ctx, r.col, jobPipeline(f))
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

// industryLookup joins the industry name of a document whose industry id
// lives at localField, storing it at as.
func industryLookup(localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionIndustries,
			"localField":   localField,
			"foreignField": "_id",
			"as":           "_industry",
		}}},
		{{Key: "$set", Value: bson.M{
			as: bson.M{"$arrayElemAt": bson.A{"$_industry.name", 0}},
		}}},
		{{Key: "$unset", Value: "_industry"}},
	}
}

// jobPipeline builds the summary listing: filter, join the industry name,
// search, sort, then page.
func jobPipeline(f ports.JobFilter) mongo.Pipeline {
	match := bson.M{}
	if f.IndustryID != "" {
		match["industry_id"] = f.IndustryID
	}
	if f.PostedBy != "" {
		match["posted_by"] = f.PostedBy
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, industryLookup("industry_id", "industry_name")...)
	if f.Search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: anyFieldContains(f.Search,
			"title", "company", "location", "types", "industry_name")}})
	}

	order := -1
	if f.Oldest {
		order = 1
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "posted_at", Value: order}, {Key: "_id", Value: 1}}}},
		facetPage(f.Window),
	)
	return pipeline
}
