package repository

import (
	"context"
	"errors"
	"fmt"

	"study_portal_service/internal/social/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrPostNotFound returned when the post id does not exist
var ErrPostNotFound = errors.New("post not found")

// PostRepository storage for social feed posts
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List newest posts first, capped at limit
	List(ctx context.Context, limit int64) ([]domain.Post, error)
	// Replace store the whole mutated post back (likes, comments, votes,
	// views are all arrays inside the document)
	Replace(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository create a PostRepository backed by the posts
// collection
func NewMongoPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{
		coll: db.Collection("posts"),
	}
}

func (r *postRepository) Insert(ctx context.Context, post *domain.Post) error {
	_, err := r.coll.InsertOne(ctx, post)
	return err
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit int64) ([]domain.Post, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts error: %w", err)
	}

	posts := make([]domain.Post, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Replace(ctx context.Context, post *domain.Post) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}
