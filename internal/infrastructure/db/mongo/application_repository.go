package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// ApplicationRepository implements ports.ApplicationRepository. The unique
// (job_id, applicant_id) index created by EnsureIndexes is what rejects
// duplicate submissions, including concurrent ones.
type ApplicationRepository struct {
	col *mongo.Collection
}

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.ApplicationView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}, jobJoin()...)
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	defer cur.Close(ctx)

	var views []domain.ApplicationView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	if len(views) == 0 {
		return nil, domain.NewNotFound(domain.ResourceApplication, id)
	}
	return &views[0], nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound(domain.ResourceApplication, id)
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound(domain.ResourceApplication, id)
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, f ports.ApplicationFilter) ([]domain.ApplicationView, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	views, total, err := aggregatePage[domain.ApplicationView](ctx, r.col, applicationPipeline(f))
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return views, total, nil
}

// jobJoin attaches the job summary, with its industry name, under "job".
func jobJoin() []bson.D {
	stages := []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionJobs,
			"localField":   "job_id",
			"foreignField": "_id",
			"as":           "job",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$job", "preserveNullAndEmptyArrays": true}}},
	}
	return append(stages, industryLookup("job.industry_id", "job.industry_name")...)
}

func applicationPipeline(f ports.ApplicationFilter) mongo.Pipeline {
	match := bson.M{}
	if f.EmployerID != "" {
		match["job_posted_by"] = f.EmployerID
	}
	if f.ApplicantID != "" {
		match["applicant_id"] = f.ApplicantID
	}
	if f.JobID != "" {
		match["job_id"] = f.JobID
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, jobJoin()...)
	if f.Search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: anyFieldContains(f.Search,
			"job.title", "job.company", "job.industry_name", "status")}})
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "applied_at", Value: -1}, {Key: "_id", Value: 1}}}},
		facetPage(f.Window),
	)
}
