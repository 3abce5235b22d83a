package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"lnzh/booking"
	"lnzh/db"
	"lnzh/globals"
	"lnzh/models"
	"lnzh/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func isAdmin(r *http.Request) bool {
	return r.Context().Value(globals.RoleKey) == "admin"
}

// stripPickupCodes clears the secret codes for the public board view.
// The input is not mutated.
func stripPickupCodes(in []models.Order) []models.Order {
	out := make([]models.Order, len(in))
	copy(out, in)
	for i := range out {
		out[i].PickupCode = ""
	}
	return out
}

// ListOrders returns the order log filtered by status and sorted by the
// selected column. Anyone can read the board, matching the public orders
// view page; pickup codes only appear for the admin.
//
// GET /api/orders?status=incomplete|complete&sort=createdAt&dir=desc&page=1&limit=50
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := r.URL.Query().Get("status")
	if status != "complete" {
		status = "incomplete"
	}
	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = "createdAt"
	}
	dir := r.URL.Query().Get("dir")
	if dir == "" {
		dir = "desc"
	}

	all, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	filtered := SortOrders(FilterByStatus(all, status), sortKey, dir)
	if !isAdmin(r) {
		filtered = stripPickupCodes(filtered)
	}

	skip, limit := utils.ParsePagination(r, 50, 200)
	page := []models.Order{}
	if skip < int64(len(filtered)) {
		end := skip + limit
		if end > int64(len(filtered)) {
			end = int64(len(filtered))
		}
		page = filtered[skip:end]
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders": page,
		"shown":  len(page),
		"total":  len(all),
	})
}

// ToggleOrderStatus flips an order between incomplete and complete.
//
// PATCH /api/orders/:orderid/status
func ToggleOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.Status != "incomplete" && body.Status != "complete" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	res := db.OrdersCollection.FindOneAndUpdate(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Order
	if err := res.Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "order": updated})
}

// DeleteOrder removes an order and hands its slot back.
//
// DELETE /api/orders/:orderid
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if _, err := db.OrdersCollection.DeleteOne(ctx, bson.M{"orderid": orderID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Delete failed")
		return
	}

	key := order.PickupDate + "_" + order.PickupTime
	released := true
	if err := booking.Reserver.Release(ctx, key); err != nil {
		// The order is already gone; a stuck counter self-corrects at purge.
		released = false
	}

	utils.RespondWithJSON(w, http.StatusOK, deleteResult(released))
}

// deleteResult is the delete response shape, identical whether or not the
// slot counter could be handed back.
func deleteResult(slotReleased bool) utils.M {
	return utils.M{"ok": true, "slotReleased": slotReleased}
}
