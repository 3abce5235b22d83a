package devblog

import (
	"context"
	"net/http"
	"time"

	"lnzh/db"
	"lnzh/models"
	"lnzh/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListEntries returns the coffee dev log, newest first by default, with
// the latest entry surfaced separately for the banner slot regardless of
// the requested order.
//
// GET /api/coffee/devblog?sort=new|old
func ListEntries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sortDoc := utils.ParseSort(r.URL.Query().Get("sort"),
		bson.D{{Key: "createdAt", Value: -1}},
		map[string]bson.D{
			"new": {{Key: "createdAt", Value: -1}},
			"old": {{Key: "createdAt", Value: 1}},
		},
	)

	entries, err := utils.FindAndDecode[models.DevblogEntry](ctx, db.DevblogCollection,
		bson.M{},
		options.Find().SetSort(sortDoc),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load devblog")
		return
	}

	resp := utils.M{"entries": entries, "count": len(entries)}
	if len(entries) > 0 {
		latest := entries[0]
		for _, e := range entries[1:] {
			if e.CreatedAt.After(latest.CreatedAt) {
				latest = e
			}
		}
		resp["latest"] = latest
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
