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

const (
	collectionVoice = "voice_messages"
	collectionFiles = "file_shares"
)

// UploadRepository persists metadata for objects stored out-of-band.
type UploadRepository struct {
	voice *mongo.Collection
	files *mongo.Collection
}

func NewUploadRepository(db *mongo.Database) *UploadRepository {
	return &UploadRepository{
		voice: db.Collection(collectionVoice),
		files: db.Collection(collectionFiles),
	}
}

type mongoVoice struct {
	ID         string    `bson:"_id"`
	SenderID   string    `bson:"sender_id"`
	SenderName string    `bson:"sender_name,omitempty"`
	ReceiverID string    `bson:"receiver_id,omitempty"`
	Duration   int       `bson:"duration"`
	URL        string    `bson:"url"`
	MimeType   string    `bson:"mime_type"`
	CreatedAt  time.Time `bson:"created_at"`
}

type mongoFile struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Size           int64     `bson:"size"`
	MimeType       string    `bson:"mime_type"`
	URL            string    `bson:"url"`
	UploadedBy     string    `bson:"uploaded_by"`
	ConversationID string    `bson:"conversation_id,omitempty"`
	UploadedAt     time.Time `bson:"uploaded_at"`
}

func (r *UploadRepository) InsertVoice(ctx context.Context, msg *domain.VoiceMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if msg.ID == "" {
		msg.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.voice.InsertOne(ctx, mongoVoice{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		ReceiverID: msg.ReceiverID,
		Duration:   msg.Duration,
		URL:        msg.URL,
		MimeType:   msg.MimeType,
		CreatedAt:  msg.CreatedAt,
	})
	return err
}

func (r *UploadRepository) ListVoiceByReceiver(ctx context.Context, receiverID string) ([]*domain.VoiceMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.voice.Find(ctx, bson.M{"receiver_id": receiverID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []*domain.VoiceMessage
	for cursor.Next(ctx) {
		var mv mongoVoice
		if err := cursor.Decode(&mv); err != nil {
			return nil, err
		}
		msgs = append(msgs, &domain.VoiceMessage{
			ID:         mv.ID,
			SenderID:   mv.SenderID,
			SenderName: mv.SenderName,
			ReceiverID: mv.ReceiverID,
			Duration:   mv.Duration,
			URL:        mv.URL,
			MimeType:   mv.MimeType,
			CreatedAt:  mv.CreatedAt,
		})
	}
	return msgs, cursor.Err()
}

func (r *UploadRepository) InsertFile(ctx context.Context, file *domain.FileShare) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if file.ID == "" {
		file.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.files.InsertOne(ctx, mongoFile{
		ID:             file.ID,
		Name:           file.Name,
		Size:           file.Size,
		MimeType:       file.MimeType,
		URL:            file.URL,
		UploadedBy:     file.UploadedBy,
		ConversationID: file.ConversationID,
		UploadedAt:     file.UploadedAt,
	})
	return err
}

func (r *UploadRepository) ListFiles(ctx context.Context, limit int64) ([]*domain.FileShare, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.files.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []*domain.FileShare
	for cursor.Next(ctx) {
		var mf mongoFile
		if err := cursor.Decode(&mf); err != nil {
			return nil, err
		}
		files = append(files, &domain.FileShare{
			ID:             mf.ID,
			Name:           mf.Name,
			Size:           mf.Size,
			MimeType:       mf.MimeType,
			URL:            mf.URL,
			UploadedBy:     mf.UploadedBy,
			ConversationID: mf.ConversationID,
			UploadedAt:     mf.UploadedAt,
		})
	}
	return files, cursor.Err()
}
