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

// ProfileRepository stores applicant and employer profiles in separate
// collections, each unique on user_id.
type ProfileRepository struct {
	users     *mongo.Collection
	employers *mongo.Collection
}

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		users:     db.Collection(collectionUserProfiles),
		employers: db.Collection(collectionEmployerProfiles),
	}
}

func (r *ProfileRepository) CreateUserProfile(ctx context.Context, p *domain.UserProfile) error {
	return insertProfile(ctx, r.users, p)
}

func (r *ProfileRepository) UserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := findProfile(ctx, r.users, userID, &p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound(domain.ResourceUserProfile, userID)
		}
		return nil, fmt.Errorf("find user profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) SaveUserProfile(ctx context.Context, p *domain.UserProfile) error {
	return replaceProfile(ctx, r.users, p.ID, p, domain.ResourceUserProfile)
}

func (r *ProfileRepository) DeleteUserProfile(ctx context.Context, userID string) error {
	return deleteProfile(ctx, r.users, userID, domain.ResourceUserProfile)
}

func (r *ProfileRepository) CreateEmployerProfile(ctx context.Context, p *domain.EmployerProfile) error {
	return insertProfile(ctx, r.employers, p)
}

func (r *ProfileRepository) EmployerProfile(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	var p domain.EmployerProfile
	if err := findProfile(ctx, r.employers, userID, &p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound(domain.ResourceEmployerProfile, userID)
		}
		return nil, fmt.Errorf("find employer profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) SaveEmployerProfile(ctx context.Context, p *domain.EmployerProfile) error {
	return replaceProfile(ctx, r.employers, p.ID, p, domain.ResourceEmployerProfile)
}

func (r *ProfileRepository) DeleteEmployerProfile(ctx context.Context, userID string) error {
	return deleteProfile(ctx, r.employers, userID, domain.ResourceEmployerProfile)
}

func insertProfile(ctx context.Context, col *mongo.Collection, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	return nil
}

func findProfile(ctx context.Context, col *mongo.Collection, userID string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return col.FindOne(ctx, bson.M{"user_id": userID}).Decode(out)
}

func replaceProfile(ctx context.Context, col *mongo.Collection, id string, doc any, rt domain.ResourceType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("save %s: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound(rt, id)
	}
	return nil
}

func deleteProfile(ctx context.Context, col *mongo.Collection, userID string, rt domain.ResourceType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("delete %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound(rt, userID)
	}
	return nil
}
