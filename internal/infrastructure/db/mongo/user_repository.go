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

const collectionUsers = "users"

// UserRepository stores profile documents. Role/lock fields and the score
// counters live in the same document but are written through disjoint
// update paths, so owner edits and authority edits never race on a field.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           string     `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email,omitempty"`
	PasswordHash string     `bson:"password_hash,omitempty"`
	Role         string     `bson:"role"`
	Avatar       string     `bson:"avatar,omitempty"`
	Score        int64      `bson:"score"`
	Badges       []string   `bson:"badges,omitempty"`
	IsAdmin      bool       `bson:"is_admin"`
	Locked       bool       `bson:"locked,omitempty"`
	LockedAt     *time.Time `bson:"locked_at,omitempty"`
	Birthday     string     `bson:"birthday,omitempty"`
	MentorID     string     `bson:"mentor_id,omitempty"`
	Mentees      int64      `bson:"mentees,omitempty"`
	GamesPlayed  int64      `bson:"games_played,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Avatar:       u.Avatar,
		Score:        u.Score,
		Badges:       u.Badges,
		IsAdmin:      u.IsAdmin,
		Locked:       u.Locked,
		LockedAt:     u.LockedAt,
		Birthday:     u.Birthday,
		MentorID:     u.MentorID,
		Mentees:      u.Mentees,
		GamesPlayed:  u.GamesPlayed,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Avatar:       mu.Avatar,
		Score:        mu.Score,
		Badges:       mu.Badges,
		IsAdmin:      mu.IsAdmin,
		Locked:       mu.Locked,
		LockedAt:     mu.LockedAt,
		Birthday:     mu.Birthday,
		MentorID:     mu.MentorID,
		Mentees:      mu.Mentees,
		GamesPlayed:  mu.GamesPlayed,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return mu.toDomain(), nil
}

// UpdateProfile writes owner-editable display fields only.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, name, avatar, birthday string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"name":       name,
		"avatar":     avatar,
		"birthday":   birthday,
		"updated_at": time.Now().UTC(),
	}})
}

// UpdateDisplayRole mirrors an authority role change into the profile.
func (r *UserRepository) UpdateDisplayRole(ctx context.Context, id string, role string, isAdmin bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"role":       role,
		"is_admin":   isAdmin,
		"updated_at": time.Now().UTC(),
	}})
}

func (r *UserRepository) SetLocked(ctx context.Context, id string, locked bool, at time.Time) error {
	update := bson.M{"$set": bson.M{"locked": locked, "updated_at": at}}
	if locked {
		update["$set"].(bson.M)["locked_at"] = at
	} else {
		update["$unset"] = bson.M{"locked_at": ""}
	}
	return r.updateOne(ctx, id, update)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// IncrementScore adds delta server-side and returns the resulting score,
// so concurrent awards for the same user never lose updates.
func (r *UserRepository) IncrementScore(ctx context.Context, id string, delta int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"score": delta}, "$set": bson.M{"updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return mu.Score, nil
}

// AddBadges set-unions via $addToSet, so concurrent unlocks commute.
func (r *UserRepository) AddBadges(ctx context.Context, id string, badges []string) error {
	return r.updateOne(ctx, id, bson.M{"$addToSet": bson.M{"badges": bson.M{"$each": badges}}})
}

func (r *UserRepository) SetMentor(ctx context.Context, menteeID, mentorID string) error {
	return r.updateOne(ctx, menteeID, bson.M{"$set": bson.M{"mentor_id": mentorID}})
}

func (r *UserRepository) IncrementMentees(ctx context.Context, mentorID string) error {
	return r.updateOne(ctx, mentorID, bson.M{"$inc": bson.M{"mentees": 1}})
}

func (r *UserRepository) IncrementGamesPlayed(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"games_played": 1}})
}

func (r *UserRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByScore returns up to limit users ordered by score descending.
func (r *UserRepository) ListByScore(ctx context.Context, limit int64) ([]*domain.User, error) {
	return r.list(ctx, options.Find().SetSort(bson.D{{Key: "score", Value: -1}}).SetLimit(limit))
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *UserRepository) list(ctx context.Context, opts *options.FindOptions) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, err
		}
		users = append(users, mu.toDomain())
	}
	return users, cursor.Err()
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "score", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
