package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
)

type TokenRepo struct {
	col *mongo.Collection
}

func (r TokenRepo) InsertRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID.IsZero() {
		token.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, token)
	return translate(err)
}

func (r TokenRepo) FindActiveRefreshToken(ctx context.Context, tokenHash string) (models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.col.FindOne(ctx, bson.M{
		"tokenHash": tokenHash,
		"revoked":   false,
		"expiresAt": bson.M{"$gt": time.Now()},
	}).Decode(&token)
	return token, translate(err)
}

func (r TokenRepo) RevokeRefreshToken(ctx context.Context, id primitive.ObjectID, replacedBy *primitive.ObjectID) error {
	set := bson.M{"revoked": true}
	if replacedBy != nil {
		set["replacedByToken"] = *replacedBy
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r TokenRepo) RevokeRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"tokenHash": tokenHash, "revoked": false},
		bson.M{"$set": bson.M{"revoked": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
