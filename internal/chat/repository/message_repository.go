package repository

import (
	"context"
	"fmt"

	"study_portal_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository durable append-only record of chat messages
type MessageRepository interface {
	// Insert append one message, exactly once per send
	Insert(ctx context.Context, m *domain.Message) error
	// MarkDelivered best-effort flag set after a successful live push
	MarkDelivered(ctx context.Context, id string) error
	// FindPairHistory messages between viewer and counterpart in either
	// direction, ascending by created_at, capped at limit
	FindPairHistory(ctx context.Context, viewerID, counterpartID string, limit int64) ([]domain.Message, error)
	// AggregateInbox newest message per counterpart for the viewer, newest
	// conversation first
	AggregateInbox(ctx context.Context, viewerID string) ([]domain.ConversationSummary, error)
}

type messageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository backed by the
// messages collection
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{
		coll: db.Collection("messages"),
	}
}

func (r *messageRepository) Insert(ctx context.Context, m *domain.Message) error {
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *messageRepository) MarkDelivered(ctx context.Context, id string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"delivered": true}}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}

func (r *messageRepository) FindPairHistory(ctx context.Context, viewerID, counterpartID string, limit int64) ([]domain.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": viewerID, "recipient_id": counterpartID},
			bson.M{"sender_id": counterpartID, "recipient_id": viewerID},
		},
	}
	opts := options.Find().
		SetSort(bson.M{"created_at": 1}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find history error: %w", err)
	}

	messages := make([]domain.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) AggregateInbox(ctx context.Context, viewerID string) ([]domain.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		// every message the viewer sent or received
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "$or", Value: bson.A{
				bson.D{{Key: "sender_id", Value: viewerID}},
				bson.D{{Key: "recipient_id", Value: viewerID}},
			}},
		}}},
		// newest first so $first picks the latest message per group
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
		}}},
		// group by the far side of each message; the counterpart name is the
		// sender_name of any message the counterpart sent ($max skips the
		// nulls produced for the viewer's own messages)
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$sender_id", viewerID}}},
				"$recipient_id",
				"$sender_id",
			}}}},
			{Key: "last_message_body", Value: bson.D{{Key: "$first", Value: "$body"}}},
			{Key: "last_message_time", Value: bson.D{{Key: "$first", Value: "$created_at"}}},
			{Key: "counterpart_name", Value: bson.D{{Key: "$max", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$sender_id", viewerID}}},
				nil,
				"$sender_name",
			}}}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "last_message_time", Value: -1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}

	summaries := make([]domain.ConversationSummary, 0)
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	return summaries, nil
}
