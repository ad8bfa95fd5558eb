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
	collectionMentoring = "mentoring_tasks"
	collectionKnowledge = "knowledge_articles"
)

// MentoringRepository persists mentoring tasks.
type MentoringRepository struct {
	col *mongo.Collection
}

func NewMentoringRepository(db *mongo.Database) *MentoringRepository {
	return &MentoringRepository{col: db.Collection(collectionMentoring)}
}

type mongoTask struct {
	ID          string     `bson:"_id"`
	MentorID    string     `bson:"mentor_id"`
	MenteeID    string     `bson:"mentee_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description,omitempty"`
	DueDate     string     `bson:"due_date,omitempty"`
	Completed   bool       `bson:"completed"`
	CompletedAt *time.Time `bson:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
}

func (mt mongoTask) toDomain() *domain.MentoringTask {
	return &domain.MentoringTask{
		ID:          mt.ID,
		MentorID:    mt.MentorID,
		MenteeID:    mt.MenteeID,
		Title:       mt.Title,
		Description: mt.Description,
		DueDate:     mt.DueDate,
		Completed:   mt.Completed,
		CompletedAt: mt.CompletedAt,
		CreatedAt:   mt.CreatedAt,
	}
}

func (r *MentoringRepository) Insert(ctx context.Context, task *domain.MentoringTask) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if task.ID == "" {
		task.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoTask{
		ID:          task.ID,
		MentorID:    task.MentorID,
		MenteeID:    task.MenteeID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
	})
	return err
}

// Complete is scoped to the task's mentor or mentee; other actors match
// nothing and get not found.
func (r *MentoringRepository) Complete(ctx context.Context, id, actorID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id": id,
		"$or": []bson.M{{"mentor_id": actorID}, {"mentee_id": actorID}},
	}
	res, err := r.col.UpdateOne(ctx, filter,
		bson.M{"$set": bson.M{"completed": true, "completed_at": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MentoringRepository) ListByMentee(ctx context.Context, menteeID string) ([]*domain.MentoringTask, error) {
	return r.list(ctx, bson.M{"mentee_id": menteeID})
}

func (r *MentoringRepository) ListByMentor(ctx context.Context, mentorID string) ([]*domain.MentoringTask, error) {
	return r.list(ctx, bson.M{"mentor_id": mentorID})
}

func (r *MentoringRepository) list(ctx context.Context, filter bson.M) ([]*domain.MentoringTask, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []*domain.MentoringTask
	for cursor.Next(ctx) {
		var mt mongoTask
		if err := cursor.Decode(&mt); err != nil {
			return nil, err
		}
		tasks = append(tasks, mt.toDomain())
	}
	return tasks, cursor.Err()
}

// KnowledgeRepository persists knowledge-base articles.
type KnowledgeRepository struct {
	col *mongo.Collection
}

func NewKnowledgeRepository(db *mongo.Database) *KnowledgeRepository {
	return &KnowledgeRepository{col: db.Collection(collectionKnowledge)}
}

type mongoArticle struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Category  string    `bson:"category,omitempty"`
	Tags      []string  `bson:"tags,omitempty"`
	Views     int64     `bson:"views"`
	AuthorID  string    `bson:"author_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (ma mongoArticle) toDomain() *domain.KnowledgeArticle {
	return &domain.KnowledgeArticle{
		ID:        ma.ID,
		Title:     ma.Title,
		Content:   ma.Content,
		Category:  ma.Category,
		Tags:      ma.Tags,
		Views:     ma.Views,
		AuthorID:  ma.AuthorID,
		CreatedAt: ma.CreatedAt,
		UpdatedAt: ma.UpdatedAt,
	}
}

func (r *KnowledgeRepository) Insert(ctx context.Context, article *domain.KnowledgeArticle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if article.ID == "" {
		article.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, mongoArticle{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Category:  article.Category,
		Tags:      article.Tags,
		Views:     article.Views,
		AuthorID:  article.AuthorID,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	})
	return err
}

// FindByID counts the read as a view via an atomic increment.
func (r *KnowledgeRepository) FindByID(ctx context.Context, id string) (*domain.KnowledgeArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ma mongoArticle
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ma.toDomain(), nil
}

func (r *KnowledgeRepository) ListAll(ctx context.Context) ([]*domain.KnowledgeArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var articles []*domain.KnowledgeArticle
	for cursor.Next(ctx) {
		var ma mongoArticle
		if err := cursor.Decode(&ma); err != nil {
			return nil, err
		}
		articles = append(articles, ma.toDomain())
	}
	return articles, cursor.Err()
}
