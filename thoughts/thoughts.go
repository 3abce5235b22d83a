package thoughts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lnzh/db"
	"lnzh/models"
	"lnzh/rdx"
	"lnzh/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// All like counters live in a single document, one numeric field per
// thought: { _id: "likes", thought_0: 3, thought_1: 0, ... }. Thought
// entries themselves sit in the same collection, keyed by index.
const likesDocID = "likes"

func likeField(index int) string {
	return fmt.Sprintf("thought_%d", index)
}

// ListThoughts returns the stream filtered and sorted per the query
// string. Favs mode uses the visitor's recorded likes.
//
// GET /api/thoughts?mode=all&sort=date&search=&reversed=true
func ListThoughts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	all, err := utils.FindAndDecode[models.Thought](ctx, db.ThoughtLikesCollection,
		bson.M{"index": bson.M{"$exists": true}},
		options.Find().SetSort(bson.D{{Key: "index", Value: 1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load thoughts")
		return
	}

	likes := loadLikes(ctx)
	for i := range all {
		all[i].Likes = int(likes[all[i].Index])
	}

	q := Query{
		Mode:     r.URL.Query().Get("mode"),
		Sort:     r.URL.Query().Get("sort"),
		Search:   r.URL.Query().Get("search"),
		Reversed: r.URL.Query().Get("reversed") == "true",
	}
	if q.Mode == "" {
		q.Mode = ModeAll
	}
	if q.Mode == ModeFavs {
		if visitor := rdx.VisitorID(r); visitor != "" {
			for _, id := range rdx.ReactedIDs(visitor, "thought") {
				if i, err := strconv.Atoi(id); err == nil {
					q.Favs = append(q.Favs, i)
				}
			}
		}
	}

	res := FilterStream(all, q)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"thoughts": res.Thoughts,
		"shown":    res.Shown,
		"total":    res.Total,
	})
}

func loadLikes(ctx context.Context) map[int]int64 {
	var doc bson.M
	err := db.ThoughtLikesCollection.FindOne(ctx, bson.M{"_id": likesDocID}).Decode(&doc)
	if err != nil {
		return map[int]int64{}
	}
	likes := map[int]int64{}
	for field, value := range doc {
		idx, ok := strings.CutPrefix(field, "thought_")
		if !ok {
			continue
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			continue
		}
		switch v := value.(type) {
		case int32:
			likes[i] = int64(v)
		case int64:
			likes[i] = v
		case float64:
			likes[i] = int64(v)
		}
	}
	return likes
}

// GetLikes returns the full thought index -> like count map.
//
// GET /api/thoughts/likes
func GetLikes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"likes": loadLikes(ctx)})
}

// ToggleLike applies an atomic like or unlike to one thought counter.
// Unlikes are guarded so the counter never goes negative.
//
// POST /api/thoughts/:index/like
func ToggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil || index < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid thought index")
		return
	}

	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.Delta != 1 && body.Delta != -1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Delta must be 1 or -1")
		return
	}

	field := likeField(index)
	filter := bson.M{"_id": likesDocID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if body.Delta > 0 {
		opts.SetUpsert(true)
	} else {
		filter[field] = bson.M{"$gt": 0}
	}

	res := db.ThoughtLikesCollection.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{field: body.Delta}},
		opts,
	)

	count := int64(0)
	var doc bson.M
	if err := res.Decode(&doc); err != nil {
		// A guarded unlike on a zero counter matches nothing; report zero.
		if body.Delta > 0 {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update like")
			return
		}
	} else {
		switch v := doc[field].(type) {
		case int32:
			count = int64(v)
		case int64:
			count = v
		case float64:
			count = int64(v)
		}
	}

	if visitor := rdx.VisitorID(r); visitor != "" {
		rdx.TrackReaction(visitor, "thought", strconv.Itoa(index), body.Delta > 0)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "count": count})
}
