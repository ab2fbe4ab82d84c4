package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/octobees/lead-enrichment/internal/entity"
)

// CompaniesRepository describes the cache of enriched company records.
type CompaniesRepository interface {
	FindByDomain(ctx context.Context, domain string) (*entity.Company, error)
	Insert(ctx context.Context, company *entity.Company) error
}

// ErrCompanyNotFound indicates no cached record exists for the domain.
var ErrCompanyNotFound = errors.New("company not found")

// MongoCompaniesRepository implements CompaniesRepository on top of the
// searched_companies collection.
type MongoCompaniesRepository struct {
	c *mongo.Collection
}

// NewMongoCompaniesRepository wires a mongo backed repository.
func NewMongoCompaniesRepository(db *mongo.Database) *MongoCompaniesRepository {
	return &MongoCompaniesRepository{c: db.Collection("searched_companies")}
}

// FindByDomain performs an exact-match lookup. At most one record is
// expected per domain; the first match wins if duplicates ever race in.
func (r *MongoCompaniesRepository) FindByDomain(ctx context.Context, domain string) (*entity.Company, error) {
	var company entity.Company
	err := r.c.FindOne(ctx, bson.M{"domain": domain}).Decode(&company)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find company by domain: %w", err)
	}
	return &company, nil
}

// Insert appends a new record. Uniqueness per domain is a convention of
// the workflow, not a constraint enforced by the store.
func (r *MongoCompaniesRepository) Insert(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}
	if _, err := r.c.InsertOne(ctx, company); err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

var _ CompaniesRepository = (*MongoCompaniesRepository)(nil)
