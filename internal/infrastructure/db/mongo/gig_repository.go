package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

const collectionGigs = "gigs"

type GigRepository struct {
	coll *mongo.Collection
}

func NewGigRepository(db *mongo.Database) *GigRepository {
	return &GigRepository{coll: db.Collection(collectionGigs)}
}

type mongoGig struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	Category     string             `bson:"category"`
	Image        string             `bson:"image"`
	DurationDays int                `bson:"duration_days"`
	FreelancerID string             `bson:"freelancer_id"`
	Rating       float64            `bson:"rating"`
	TotalReviews int                `bson:"total_reviews"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mg *mongoGig) toDomain() *domain.Gig {
	return &domain.Gig{
		ID:           mg.ID.Hex(),
		Title:        mg.Title,
		Description:  mg.Description,
		Price:        mg.Price,
		Category:     mg.Category,
		Image:        mg.Image,
		DurationDays: mg.DurationDays,
		FreelancerID: mg.FreelancerID,
		Rating:       mg.Rating,
		TotalReviews: mg.TotalReviews,
		CreatedAt:    mg.CreatedAt,
		UpdatedAt:    mg.UpdatedAt,
	}
}

func fromDomainGig(g *domain.Gig) mongoGig {
	return mongoGig{
		Title:        g.Title,
		Description:  g.Description,
		Price:        g.Price,
		Category:     g.Category,
		Image:        g.Image,
		DurationDays: g.DurationDays,
		FreelancerID: g.FreelancerID,
		Rating:       g.Rating,
		TotalReviews: g.TotalReviews,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func (r *GigRepository) Create(ctx context.Context, g *domain.Gig) (*domain.Gig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, fromDomainGig(g))
	if err != nil {
		return nil, fmt.Errorf("insert gig: %w", err)
	}

	created := *g
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GigRepository) FindByID(ctx context.Context, id string) (*domain.Gig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGigNotFound
	}

	var mg mongoGig
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGigNotFound
		}
		return nil, fmt.Errorf("find gig: %w", err)
	}
	return mg.toDomain(), nil
}

func (r *GigRepository) FindByFreelancer(ctx context.Context, freelancerID string) ([]*domain.Gig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"freelancer_id": freelancerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find gigs by freelancer: %w", err)
	}
	return decodeGigs(ctx, cur)
}

// List applies search/category/price filters with sorting and pagination.
func (r *GigRepository) List(ctx context.Context, filter ports.ListGigsFilter) ([]*domain.Gig, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count gigs: %w", err)
	}

	sortField := filter.SortBy
	if sortField == "" {
		sortField = "created_at"
	}
	sortDir := -1
	if filter.Order == "asc" {
		sortDir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list gigs: %w", err)
	}

	gigs, err := decodeGigs(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return gigs, total, nil
}

func (r *GigRepository) Update(ctx context.Context, g *domain.Gig) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(g.ID)
	if err != nil {
		return domain.ErrGigNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":         g.Title,
		"description":   g.Description,
		"price":         g.Price,
		"category":      g.Category,
		"image":         g.Image,
		"duration_days": g.DurationDays,
		"updated_at":    g.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update gig: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGigNotFound
	}
	return nil
}

func (r *GigRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGigNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete gig: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGigNotFound
	}
	return nil
}

func (r *GigRepository) SetRating(ctx context.Context, gigID string, rating float64, totalReviews int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(gigID)
	if err != nil {
		return domain.ErrGigNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"rating":        rating,
		"total_reviews": totalReviews,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set gig rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrGigNotFound
	}
	return nil
}

func decodeGigs(ctx context.Context, cur *mongo.Cursor) ([]*domain.Gig, error) {
	defer cur.Close(ctx)

	var gigs []*domain.Gig
	for cur.Next(ctx) {
		var mg mongoGig
		if err := cur.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode gig: %w", err)
		}
		gigs = append(gigs, mg.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate gigs: %w", err)
	}
	return gigs, nil
}
