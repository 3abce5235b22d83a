package blog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"lnzh/db"
	"lnzh/models"
	"lnzh/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ListPosts returns blog cards filtered by tags and ordered by tag
// priority, newest year first. Each card carries its symbol string.
//
// GET /api/blog/posts?tags=philosophy,food
func ListPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	posts, err := utils.FindAndDecode[models.BlogPost](ctx, db.BlogPostsCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	filtered := FilterCards(posts, tags)

	type card struct {
		models.BlogPost
		Symbols string `json:"symbols"`
	}
	cards := make([]card, len(filtered))
	for i, p := range filtered {
		cards[i] = card{BlogPost: p, Symbols: Symbols(p)}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"posts": cards,
		"shown": len(cards),
		"total": len(posts),
	})
}
