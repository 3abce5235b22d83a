package rdx

import (
	"log"
	"net/http"
	"os"
	"time"

	"lnzh/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

const visitorCookie = "lnzh_visitor"
const reactionTTL = 90 * 24 * time.Hour

// VisitorID reads the anonymous visitor cookie. Empty when the client sent
// none; reaction bookkeeping is skipped in that case.
func VisitorID(r *http.Request) string {
	c, err := r.Cookie(visitorCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// TrackReaction records or clears one visitor's reaction to an entity. The
// set is a hint for the UI only; visitors clearing their cookie can react
// again, which is accepted.
func TrackReaction(visitor, entityType, entityID string, reacted bool) {
	key := "reacted:" + entityType + ":" + visitor
	var err error
	if reacted {
		err = Conn.SAdd(globals.Ctx, key, entityID).Err()
		Conn.Expire(globals.Ctx, key, reactionTTL)
	} else {
		err = Conn.SRem(globals.Ctx, key, entityID).Err()
	}
	if err != nil {
		log.Println("Redis reaction tracking error:", err)
	}
}

// ReactedIDs lists the entity ids one visitor has reacted to.
func ReactedIDs(visitor, entityType string) []string {
	ids, err := Conn.SMembers(globals.Ctx, "reacted:"+entityType+":"+visitor).Result()
	if err != nil {
		log.Println("Redis reaction lookup error:", err)
		return nil
	}
	return ids
}

// MarkPurgeRun records that the retention purge ran, keyed by day, so a
// restart does not rerun it. Returns false when today's run already
// happened.
func MarkPurgeRun(day string) bool {
	ok, err := Conn.SetNX(globals.Ctx, "purge:last:"+day, "1", 48*time.Hour).Result()
	if err != nil {
		log.Println("Redis purge marker error:", err)
		// On Redis trouble, let the purge run; it is idempotent.
		return true
	}
	return ok
}
