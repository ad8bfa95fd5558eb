package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

const collectionClaims = "auth_claims"

// ClaimsRepository is the trust-claim store, kept in a separate collection
// from the client-writable profile so a profile write can never elevate a
// principal.
type ClaimsRepository struct {
	col *mongo.Collection
}

func NewClaimsRepository(db *mongo.Database) *ClaimsRepository {
	return &ClaimsRepository{col: db.Collection(collectionClaims)}
}

// Get returns the claims for a principal. A principal without a claims
// document has zero-value claims.
func (r *ClaimsRepository) Get(ctx context.Context, principalID string) (domain.TrustClaims, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bson.M
	err := r.col.FindOne(ctx, bson.M{"_id": principalID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.TrustClaims{}, nil
		}
		return domain.TrustClaims{}, err
	}

	claims := domain.TrustClaims{Extra: map[string]any{}}
	for key, value := range doc {
		switch key {
		case "_id":
		case "role":
			claims.Role, _ = value.(string)
		case "admin":
			claims.Admin, _ = value.(bool)
		default:
			claims.Extra[key] = value
		}
	}
	return claims, nil
}

// SetRole merges the role and admin fields into the claims document,
// leaving unrelated claims untouched. The upsert covers principals that
// never had claims before.
func (r *ClaimsRepository) SetRole(ctx context.Context, principalID, role string, admin bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": principalID},
		bson.M{"$set": bson.M{"role": role, "admin": admin}},
		options.Update().SetUpsert(true),
	)
	return err
}
