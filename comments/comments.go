package comments

import (
	"context"
	"encoding/json"
	"net/http"
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

const maxTextLength = 280
const maxNameLength = 40

// GetComments returns the full thread, sorted roots first.
//
// GET /api/comments?sort=new|old|likes&reversed=true
func GetComments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sortBy := r.URL.Query().Get("sort")
	reversed := r.URL.Query().Get("reversed") == "true"

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	all, err := utils.FindAndDecode[models.Comment](ctx, db.CommentsCollection, bson.M{}, findOptions)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	roots := SortRoots(BuildThread(all), sortBy, reversed)
	if roots == nil {
		roots = []*ThreadedComment{}
	}

	resp := utils.M{
		"comments": roots,
		"count":    len(all),
	}
	if avg, ok := AverageRating(roots); ok {
		resp["averageRating"] = avg
		resp["stars"] = Stars(avg)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// CreateComment adds a root comment or a reply.
//
// POST /api/comments
func CreateComment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name     string `json:"name"`
		Text     string `json:"text"`
		ParentID string `json:"parentId"`
		Rating   int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text := strings.TrimSpace(body.Text)
	if text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}
	if len(text) > maxTextLength {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment too long")
		return
	}
	name := strings.TrimSpace(body.Name)
	if len(name) > maxNameLength {
		utils.RespondWithError(w, http.StatusBadRequest, "Name too long")
		return
	}

	// Ratings only attach to roots.
	if body.ParentID != "" {
		body.Rating = 0
	}
	if body.Rating != 0 && (body.Rating < 1 || body.Rating > 5) {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	comment := models.Comment{
		CommentID: utils.GenerateRandomString(16),
		Name:      name,
		Text:      text,
		ParentID:  body.ParentID,
		Rating:    body.Rating,
		CreatedAt: time.Now(),
	}

	if _, err := db.CommentsCollection.InsertOne(ctx, comment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

// ReactToComment applies an atomic like/dislike increment. Decrements are
// guarded so a counter never drops below zero.
//
// POST /api/comments/:commentid/react
func ReactToComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	commentID := ps.ByName("commentid")

	var body struct {
		Field string `json:"field"`
		Delta int    `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.Field != "likes" && body.Field != "dislikes" {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown reaction field")
		return
	}
	if body.Delta != 1 && body.Delta != -1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Delta must be 1 or -1")
		return
	}

	filter := bson.M{"commentid": commentID}
	if body.Delta < 0 {
		filter[body.Field] = bson.M{"$gt": 0}
	}

	res := db.CommentsCollection.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{body.Field: body.Delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Comment
	if err := res.Decode(&updated); err != nil {
		// A guarded decrement that matched nothing is a no-op, not an error.
		if body.Delta < 0 {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
			return
		}
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	// Soft per-visitor bookkeeping; clearing it just re-enables the button.
	if visitor := rdx.VisitorID(r); visitor != "" {
		rdx.TrackReaction(visitor, "comment", commentID, body.Delta > 0)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "comment": updated})
}
