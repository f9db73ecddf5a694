package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// WatchOrders pushes the complete order list to fn once immediately and then
// again after every change to the orders collection. Each invocation carries
// a full, self-consistent snapshot; consumers replace their state with it
// rather than patching. Blocks until ctx is cancelled or the change stream
// fails.
func WatchOrders(ctx context.Context, db *mongo.Database, fn func([]models.Order)) error {
	orders, err := listOrders(ctx, db)
	if err != nil {
		return err
	}
	fn(orders)

	stream, err := db.Collection("orders").Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		orders, err := listOrders(ctx, db)
		if err != nil {
			log.Println("[ORDERS] [ERROR] snapshot after change failed:", err)
			continue
		}
		fn(orders)
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func listOrders(ctx context.Context, db *mongo.Database) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection("orders").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
