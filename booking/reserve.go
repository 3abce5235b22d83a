package booking

import (
	"context"
	"errors"
	"time"

	"lnzh/db"
	"lnzh/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotFull is returned when a reservation would push a slot counter past
// its capacity. Nothing is written in that case.
var ErrSlotFull = errors.New("slot full")

// SlotReserver applies the check-then-increment on a slot counter and the
// order insert as one atomic unit. Either both happen or neither does.
type SlotReserver interface {
	Reserve(ctx context.Context, key string, capacity int, order models.Order) error
	Release(ctx context.Context, key string) error
}

// MongoReserver backs SlotReserver with a Mongo client session so the
// counter check, the increment and the order insert share one transaction.
type MongoReserver struct {
	Client   *mongo.Client
	Counters *mongo.Collection
	Orders   *mongo.Collection
}

func NewMongoReserver() *MongoReserver {
	return &MongoReserver{
		Client:   db.Client,
		Counters: db.SlotCountersCollection,
		Orders:   db.OrdersCollection,
	}
}

func (m *MongoReserver) Reserve(ctx context.Context, key string, capacity int, order models.Order) error {
	session, err := m.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		var counter models.SlotCounter
		err := m.Counters.FindOne(sc, bson.M{"_id": key}).Decode(&counter)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, err
		}
		if counter.Count >= capacity {
			return nil, ErrSlotFull
		}

		_, err = m.Counters.UpdateOne(sc,
			bson.M{"_id": key},
			bson.M{
				"$set": bson.M{
					"date":      order.PickupDate,
					"time":      order.PickupTime,
					"updatedAt": time.Now(),
				},
				"$inc": bson.M{"count": 1},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}

		_, err = m.Orders.InsertOne(sc, order)
		return nil, err
	})
	return err
}

// Release decrements a slot counter after an order is deleted. The count
// filter keeps the counter from going negative if the counter was already
// purged.
func (m *MongoReserver) Release(ctx context.Context, key string) error {
	_, err := m.Counters.UpdateOne(ctx,
		bson.M{"_id": key, "count": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"count": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
