package orders

import (
	"log"
	"time"

	"lnzh/db"
	"lnzh/globals"
	"lnzh/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const retentionDays = 14

// StartPurgeWorker deletes orders and slot counters older than the
// retention window once a day. The Redis marker keeps restarts from
// rerunning a day that already ran.
func StartPurgeWorker() {
	go func() {
		runPurge()
		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			runPurge()
		}
	}()
}

func runPurge() {
	today := time.Now().Format("2006-01-02")
	if !rdx.MarkPurgeRun(today) {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	cutoffDate := cutoff.Format("2006-01-02")

	res, err := db.OrdersCollection.DeleteMany(globals.Ctx, bson.M{
		"createdAt": bson.M{"$lt": cutoff},
	})
	if err != nil {
		log.Println("Order purge error:", err)
		return
	}

	slotRes, err := db.SlotCountersCollection.DeleteMany(globals.Ctx, bson.M{
		"date": bson.M{"$lt": cutoffDate},
	})
	if err != nil {
		log.Println("Slot counter purge error:", err)
		return
	}

	if res.DeletedCount > 0 || slotRes.DeletedCount > 0 {
		log.Printf("Purged %d orders, %d slot counters older than %s", res.DeletedCount, slotRes.DeletedCount, cutoffDate)
	}
}
