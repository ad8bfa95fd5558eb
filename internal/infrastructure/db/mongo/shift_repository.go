package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

const (
	collectionSwaps  = "shift_swaps"
	collectionTrades = "shift_trades"
)

// SwapRepository persists directed shift-swap requests.
type SwapRepository struct {
	col *mongo.Collection
}

func NewSwapRepository(db *mongo.Database) *SwapRepository {
	return &SwapRepository{col: db.Collection(collectionSwaps)}
}

type mongoSwap struct {
	ID            string            `bson:"_id"`
	RequesterID   string            `bson:"requester_id"`
	RequesterName string            `bson:"requester_name"`
	RecipientID   string            `bson:"recipient_id"`
	RecipientName string            `bson:"recipient_name,omitempty"`
	ShiftTime     string            `bson:"shift_time"`
	Status        domain.SwapStatus `bson:"status"`
	CreatedAt     time.Time         `bson:"created_at"`
}

func (ms mongoSwap) toDomain() *domain.ShiftSwapRequest {
	return &domain.ShiftSwapRequest{
		ID:            ms.ID,
		RequesterID:   ms.RequesterID,
		RequesterName: ms.RequesterName,
		RecipientID:   ms.RecipientID,
		RecipientName: ms.RecipientName,
		ShiftTime:     ms.ShiftTime,
		Status:        ms.Status,
		CreatedAt:     ms.CreatedAt,
	}
}

func (r *SwapRepository) Insert(ctx context.Context, req *domain.ShiftSwapRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if req.ID == "" {
		req.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoSwap{
		ID:            req.ID,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		RecipientID:   req.RecipientID,
		RecipientName: req.RecipientName,
		ShiftTime:     req.ShiftTime,
		Status:        req.Status,
		CreatedAt:     req.CreatedAt,
	})
	return err
}

func (r *SwapRepository) FindByID(ctx context.Context, id string) (*domain.ShiftSwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSwap
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ms.toDomain(), nil
}

func (r *SwapRepository) UpdateStatus(ctx context.Context, id string, status domain.SwapStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SwapRepository) ListByRecipient(ctx context.Context, recipientID string) ([]*domain.ShiftSwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var swaps []*domain.ShiftSwapRequest
	for cursor.Next(ctx) {
		var ms mongoSwap
		if err := cursor.Decode(&ms); err != nil {
			return nil, err
		}
		swaps = append(swaps, ms.toDomain())
	}
	return swaps, cursor.Err()
}

// TradeRepository persists open shift trades.
type TradeRepository struct {
	col *mongo.Collection
}

func NewTradeRepository(db *mongo.Database) *TradeRepository {
	return &TradeRepository{col: db.Collection(collectionTrades)}
}

type mongoTrade struct {
	ID            string             `bson:"_id"`
	RequesterID   string             `bson:"requester_id"`
	RequesterName string             `bson:"requester_name"`
	ShiftDate     string             `bson:"shift_date"`
	Description   string             `bson:"description,omitempty"`
	Volunteers    []string           `bson:"volunteers"`
	AssignedTo    string             `bson:"assigned_to,omitempty"`
	Status        domain.TradeStatus `bson:"status"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (mt mongoTrade) toDomain() *domain.ShiftTrade {
	return &domain.ShiftTrade{
		ID:            mt.ID,
		RequesterID:   mt.RequesterID,
		RequesterName: mt.RequesterName,
		ShiftDate:     mt.ShiftDate,
		Description:   mt.Description,
		Volunteers:    mt.Volunteers,
		AssignedTo:    mt.AssignedTo,
		Status:        mt.Status,
		CreatedAt:     mt.CreatedAt,
	}
}

func (r *TradeRepository) Insert(ctx context.Context, trade *domain.ShiftTrade) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if trade.ID == "" {
		trade.ID = primitive.NewObjectID().Hex()
	}
	if trade.Volunteers == nil {
		trade.Volunteers = []string{}
	}
	_, err := r.col.InsertOne(ctx, mongoTrade{
		ID:            trade.ID,
		RequesterID:   trade.RequesterID,
		RequesterName: trade.RequesterName,
		ShiftDate:     trade.ShiftDate,
		Description:   trade.Description,
		Volunteers:    trade.Volunteers,
		AssignedTo:    trade.AssignedTo,
		Status:        trade.Status,
		CreatedAt:     trade.CreatedAt,
	})
	return err
}

func (r *TradeRepository) FindByID(ctx context.Context, id string) (*domain.ShiftTrade, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTrade
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mt.toDomain(), nil
}

// AddVolunteer appends once; $addToSet makes re-volunteering a no-op.
func (r *TradeRepository) AddVolunteer(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"volunteers": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TradeRepository) Assign(ctx context.Context, id, userID string, status domain.TradeStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"assigned_to": userID, "status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TradeRepository) UpdateStatus(ctx context.Context, id string, status domain.TradeStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TradeRepository) ListOpen(ctx context.Context) ([]*domain.ShiftTrade, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"status": domain.TradeOpen}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trades []*domain.ShiftTrade
	for cursor.Next(ctx) {
		var mt mongoTrade
		if err := cursor.Decode(&mt); err != nil {
			return nil, err
		}
		trades = append(trades, mt.toDomain())
	}
	return trades, cursor.Err()
}
