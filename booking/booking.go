package booking

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lnzh/db"
	"lnzh/models"
	"lnzh/slots"
	"lnzh/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Reserver is swapped for a test double in unit tests.
var Reserver SlotReserver

func genID() string {
	return utils.GenerateRandomDigitString(14)
}

func localDateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// requiresTemp reports whether the drink needs a hot/cold choice.
func requiresTemp(drink string) bool {
	return drink == "Latte" || drink == "Americano"
}

// requiresMilk reports whether the drink needs a milk choice.
func requiresMilk(drink string) bool {
	return drink == "Latte"
}

// slotMinutes parses a canonical "HH:MM" slot value. ok is false for
// values that do not sit on the window grid.
func slotMinutes(w slots.Window, value string) (int, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hours, err1 := strconv.Atoi(parts[0])
	mins, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	total := hours*60 + mins
	if total < w.StartMinutes || total > w.EndMinutes || (total-w.StartMinutes)%w.Interval != 0 {
		return 0, false
	}
	return total, true
}

func loadSlotCounts(ctx context.Context, date string) (map[string]int, error) {
	counters, err := utils.FindAndDecode[models.SlotCounter](ctx, db.SlotCountersCollection, bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(counters))
	for _, c := range counters {
		counts[c.Time] = c.Count
	}
	return counts, nil
}

// GET /api/slots/:date
func GetSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	date := ps.ByName("date")
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	now := time.Now()
	today := date == localDateString(now)

	if slots.WindowClosed(slots.CoffeeWindow, now, today) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"slots":        []slots.TimeSlot{},
			"windowClosed": true,
		})
		return
	}

	counts, err := loadSlotCounts(ctx, date)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load slot counts")
		return
	}

	available := slots.Available(slots.CoffeeWindow, now, today, counts)
	if available == nil {
		available = []slots.TimeSlot{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"slots":        available,
		"windowClosed": false,
	})
}

// POST /api/orders
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Name       string `json:"name"`
		Drink      string `json:"drink"`
		Temp       string `json:"temp"`
		Milk       string `json:"milk"`
		PickupDate string `json:"pickupDate"`
		PickupTime string `json:"pickupTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	switch {
	case body.Drink == "":
		utils.RespondWithError(w, http.StatusBadRequest, "Please choose a drink")
		return
	case body.Name == "":
		utils.RespondWithError(w, http.StatusBadRequest, "Please enter your name")
		return
	case requiresTemp(body.Drink) && body.Temp != "hot" && body.Temp != "cold":
		utils.RespondWithError(w, http.StatusBadRequest, "Please choose hot or cold")
		return
	case requiresMilk(body.Drink) && body.Milk != "whole" && body.Milk != "soy":
		utils.RespondWithError(w, http.StatusBadRequest, "Please choose a milk type")
		return
	}

	if !requiresTemp(body.Drink) {
		body.Temp = ""
	}
	if !requiresMilk(body.Drink) {
		body.Milk = ""
	}

	if _, err := time.ParseInLocation("2006-01-02", body.PickupDate, time.Local); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pickup date")
		return
	}

	minutes, ok := slotMinutes(slots.CoffeeWindow, body.PickupTime)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Please select a pickup time")
		return
	}

	now := time.Now()
	today := body.PickupDate == localDateString(now)
	if minutes < slots.EarliestBookable(slots.CoffeeWindow, now, today) {
		utils.RespondWithError(w, http.StatusBadRequest, "That pickup time has already passed")
		return
	}

	order := models.Order{
		OrderID:    genID(),
		Name:       body.Name,
		Drink:      body.Drink,
		Temp:       body.Temp,
		Milk:       body.Milk,
		PickupDate: body.PickupDate,
		PickupTime: body.PickupTime,
		Status:     "incomplete",
		PickupCode: utils.GetUUID(),
		CreatedAt:  now,
	}

	key := body.PickupDate + "_" + body.PickupTime
	capacity := slots.CapacityFor(minutes)

	if err := Reserver.Reserve(ctx, key, capacity, order); err != nil {
		if errors.Is(err, ErrSlotFull) {
			utils.RespondWithError(w, http.StatusConflict, "That pickup time just filled up. Please choose another.")
			return
		}
		log.Printf("reserve failed for %s: %v", key, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong placing your order. Please try again.")
		return
	}

	broadcastSlotUpdate(body.PickupDate)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "order": order})
}
