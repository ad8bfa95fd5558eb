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

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID        string    `bson:"_id"`
	AuthorID  string    `bson:"author_id"`
	Content   string    `bson:"content"`
	Image     string    `bson:"image,omitempty"`
	Likes     int64     `bson:"likes"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *PostRepository) Insert(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if post.ID == "" {
		post.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoPost{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Content:   post.Content,
		Image:     post.Image,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
	})
	return err
}

func (r *PostRepository) List(ctx context.Context, limit int64) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*domain.Post
	for cursor.Next(ctx) {
		var mp mongoPost
		if err := cursor.Decode(&mp); err != nil {
			return nil, err
		}
		posts = append(posts, &domain.Post{
			ID:        mp.ID,
			AuthorID:  mp.AuthorID,
			Content:   mp.Content,
			Image:     mp.Image,
			Likes:     mp.Likes,
			CreatedAt: mp.CreatedAt,
		})
	}
	return posts, cursor.Err()
}

// Like increments the counter server-side; concurrent likes commute.
func (r *PostRepository) Like(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByAuthor removes all posts of a deleted user.
func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"author_id": authorID})
	return err
}
