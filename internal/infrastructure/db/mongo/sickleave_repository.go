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

const collectionSickLeave = "sick_leave"

// SickLeaveRepository persists sick-leave submissions.
type SickLeaveRepository struct {
	col *mongo.Collection
}

func NewSickLeaveRepository(db *mongo.Database) *SickLeaveRepository {
	return &SickLeaveRepository{col: db.Collection(collectionSickLeave)}
}

type mongoSickLeave struct {
	ID        string                 `bson:"_id"`
	UserID    string                 `bson:"user_id"`
	UserName  string                 `bson:"user_name"`
	StartDate string                 `bson:"start_date"`
	EndDate   string                 `bson:"end_date"`
	Status    domain.SickLeaveStatus `bson:"status"`
	CreatedAt time.Time              `bson:"created_at"`
}

func (ml mongoSickLeave) toDomain() *domain.SickLeaveEntry {
	return &domain.SickLeaveEntry{
		ID:        ml.ID,
		UserID:    ml.UserID,
		UserName:  ml.UserName,
		StartDate: ml.StartDate,
		EndDate:   ml.EndDate,
		Status:    ml.Status,
		CreatedAt: ml.CreatedAt,
	}
}

func (r *SickLeaveRepository) Insert(ctx context.Context, entry *domain.SickLeaveEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoSickLeave{
		ID:        entry.ID,
		UserID:    entry.UserID,
		UserName:  entry.UserName,
		StartDate: entry.StartDate,
		EndDate:   entry.EndDate,
		Status:    entry.Status,
		CreatedAt: entry.CreatedAt,
	})
	return err
}

func (r *SickLeaveRepository) FindByID(ctx context.Context, id string) (*domain.SickLeaveEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoSickLeave
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ml.toDomain(), nil
}

func (r *SickLeaveRepository) UpdateStatus(ctx context.Context, id string, status domain.SickLeaveStatus) error {
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

func (r *SickLeaveRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SickLeaveEntry, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *SickLeaveRepository) ListAll(ctx context.Context) ([]*domain.SickLeaveEntry, error) {
	return r.list(ctx, bson.M{})
}

func (r *SickLeaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.SickLeaveEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*domain.SickLeaveEntry
	for cursor.Next(ctx) {
		var ml mongoSickLeave
		if err := cursor.Decode(&ml); err != nil {
			return nil, err
		}
		entries = append(entries, ml.toDomain())
	}
	return entries, cursor.Err()
}
