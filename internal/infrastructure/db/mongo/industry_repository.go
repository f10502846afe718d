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

type IndustryRepository struct {
	col *mongo.Collection
}

var _ ports.IndustryRepository = (*IndustryRepository)(nil)

func NewIndustryRepository(db *mongo.Database) *IndustryRepository {
	return &IndustryRepository{col: db.Collection(collectionIndustries)}
}

func (r *IndustryRepository) Create(ctx context.Context, ind *domain.Industry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, ind); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrIndustryExists
		}
		return fmt.Errorf("insert industry: %w", err)
	}
	return nil
}

func (r *IndustryRepository) FindByID(ctx context.Context, id string) (*domain.Industry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ind domain.Industry
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ind); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound(domain.ResourceIndustry, id)
		}
		return nil, fmt.Errorf("find industry: %w", err)
	}
	return &ind, nil
}

func (r *IndustryRepository) Update(ctx context.Context, ind *domain.Industry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": ind.ID}, ind)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrIndustryExists
		}
		return fmt.Errorf("update industry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound(domain.ResourceIndustry, ind.ID)
	}
	return nil
}

// Delete removes the industry and detaches its jobs.
func (r *IndustryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete industry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound(domain.ResourceIndustry, id)
	}

	jobs := r.col.Database().Collection(collectionJobs)
	if _, err := jobs.UpdateMany(ctx, bson.M{"industry_id": id}, bson.M{"$unset": bson.M{"industry_id": ""}}); err != nil {
		return fmt.Errorf("detach jobs from industry: %w", err)
	}
	return nil
}

// industryOrder lists the newest industries first.
var industryOrder = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}

func (r *IndustryRepository) List(ctx context.Context, f ports.IndustryFilter) ([]domain.Industry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Search != "" {
		filter["name"] = contains(f.Search)
	}
	items, total, err := findPage[domain.Industry](ctx, r.col, filter, industryOrder, f.Window)
	if err != nil {
		return nil, 0, fmt.Errorf("list industries: %w", err)
	}
	return items, total, nil
}
