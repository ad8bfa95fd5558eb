package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID         string    `bson:"_id"`
	SenderID   string    `bson:"sender_id"`
	ReceiverID string    `bson:"receiver_id,omitempty"`
	Text       string    `bson:"text"`
	IsAI       bool      `bson:"is_ai,omitempty"`
	Timestamp  time.Time `bson:"timestamp"`
}

func (r *MessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if msg.ID == "" {
		msg.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoMessage{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Text,
		IsAI:       msg.IsAI,
		Timestamp:  msg.Timestamp,
	})
	return err
}

// Conversation selects (sender=a AND receiver=b) OR (sender=b AND
// receiver=a), ordered by timestamp ascending. The store expresses the
// OR-of-ANDs predicate natively, so no client-side merge is needed.
func (r *MessageRepository) Conversation(ctx context.Context, a, b string, limit int64) ([]domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"sender_id": a, "receiver_id": b},
		{"sender_id": b, "receiver_id": a},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	for cursor.Next(ctx) {
		var mm mongoMessage
		if err := cursor.Decode(&mm); err != nil {
			return nil, err
		}
		messages = append(messages, domain.Message{
			ID:         mm.ID,
			SenderID:   mm.SenderID,
			ReceiverID: mm.ReceiverID,
			Text:       mm.Text,
			IsAI:       mm.IsAI,
			Timestamp:  mm.Timestamp,
		})
	}
	return messages, cursor.Err()
}

// EnsureIndexes creates the compound indexes backing the conversation query.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
