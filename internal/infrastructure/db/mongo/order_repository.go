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

const collectionOrders = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(collectionOrders)}
}

type mongoOrder struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty"`
	GigID                   string             `bson:"gig_id"`
	ClientID                string             `bson:"client_id"`
	FreelancerID            string             `bson:"freelancer_id"`
	Status                  string             `bson:"status"`
	Price                   float64            `bson:"price"`
	Requirements            string             `bson:"requirements"`
	DueDate                 time.Time          `bson:"due_date"`
	DeliveryFile            string             `bson:"delivery_file,omitempty"`
	DeliveryNotes           string             `bson:"delivery_notes,omitempty"`
	CancellationReason      string             `bson:"cancellation_reason,omitempty"`
	CancellationRequestedBy string             `bson:"cancellation_requested_by,omitempty"`
	CancellationApproved    bool               `bson:"cancellation_approved"`
	CreatedAt               time.Time          `bson:"created_at"`
	UpdatedAt               time.Time          `bson:"updated_at"`
}

func (mo *mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:                      mo.ID.Hex(),
		GigID:                   mo.GigID,
		ClientID:                mo.ClientID,
		FreelancerID:            mo.FreelancerID,
		Status:                  domain.OrderStatus(mo.Status),
		Price:                   mo.Price,
		Requirements:            mo.Requirements,
		DueDate:                 mo.DueDate,
		DeliveryFile:            mo.DeliveryFile,
		DeliveryNotes:           mo.DeliveryNotes,
		CancellationReason:      mo.CancellationReason,
		CancellationRequestedBy: mo.CancellationRequestedBy,
		CancellationApproved:    mo.CancellationApproved,
		CreatedAt:               mo.CreatedAt,
		UpdatedAt:               mo.UpdatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		GigID:        o.GigID,
		ClientID:     o.ClientID,
		FreelancerID: o.FreelancerID,
		Status:       string(o.Status),
		Price:        o.Price,
		Requirements: o.Requirements,
		DueDate:      o.DueDate,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *o
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"client_id": clientID})
}

func (r *OrderRepository) ListByFreelancer(ctx context.Context, freelancerID string) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"freelancer_id": freelancerID})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

// ApplyTransition executes the compare-and-swap status write. The filter
// matches the order only while its status is still one of from, making the
// precondition check and the write a single storage operation; a concurrent
// transition that got there first leaves nothing to match and the call
// returns domain.ErrOrderNotFound without writing.
func (r *OrderRepository) ApplyTransition(ctx context.Context, orderID string, from []domain.OrderStatus, patch ports.TransitionPatch) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	statuses := make(bson.A, 0, len(from))
	for _, s := range from {
		statuses = append(statuses, string(s))
	}
	filter := bson.M{"_id": oid, "status": bson.M{"$in": statuses}}

	set := bson.M{
		"status":     string(patch.Status),
		"updated_at": time.Now().UTC(),
	}
	update := bson.M{"$set": set}

	if patch.SetDelivery {
		set["delivery_file"] = patch.DeliveryFile
		set["delivery_notes"] = patch.DeliveryNotes
	}
	if patch.SetCancellationRequest {
		set["cancellation_reason"] = patch.CancellationReason
		set["cancellation_requested_by"] = patch.CancellationRequestedBy
	}
	if patch.ApproveCancellation {
		set["cancellation_approved"] = true
	}
	if patch.ClearCancellationRequest {
		update["$unset"] = bson.M{
			"cancellation_reason":       "",
			"cancellation_requested_by": "",
		}
	}

	var mo mongoOrder
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("apply transition: %w", err)
	}
	return mo.toDomain(), nil
}
