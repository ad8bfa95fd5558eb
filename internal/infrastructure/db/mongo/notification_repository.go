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

const collectionNotifications = "notifications"

// NotificationRepository persists per-recipient notifications.
type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

type mongoNotification struct {
	ID        string                  `bson:"_id"`
	UserID    string                  `bson:"user_id"`
	Type      domain.NotificationType `bson:"type"`
	Title     string                  `bson:"title"`
	Message   string                  `bson:"message"`
	Read      bool                    `bson:"read"`
	Data      domain.NotificationData `bson:"data,omitempty"`
	CreatedAt time.Time               `bson:"created_at"`
}

func (mn mongoNotification) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:        mn.ID,
		UserID:    mn.UserID,
		Type:      mn.Type,
		Title:     mn.Title,
		Message:   mn.Message,
		Read:      mn.Read,
		Data:      mn.Data,
		CreatedAt: mn.CreatedAt,
	}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if n.ID == "" {
		n.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoNotification{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	})
	return err
}

// MarkRead flips read to true; marking an already-read notification is a
// no-op. The filter includes user_id, so a foreign id reports not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []*domain.Notification
	for cursor.Next(ctx) {
		var mn mongoNotification
		if err := cursor.Decode(&mn); err != nil {
			return nil, err
		}
		list = append(list, mn.toDomain())
	}
	return list, cursor.Err()
}
