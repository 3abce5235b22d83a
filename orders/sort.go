package orders

import (
	"sort"
	"strings"

	"lnzh/models"
)

// StyleText joins the drink-dependent attributes the way the admin table
// shows them.
func StyleText(o models.Order) string {
	var parts []string
	if o.Temp != "" {
		parts = append(parts, o.Temp)
	}
	if o.Milk != "" {
		parts = append(parts, o.Milk)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " / ")
}

func sortValue(o models.Order, key string) string {
	switch key {
	case "name":
		return strings.ToLower(o.Name)
	case "drink":
		return strings.ToLower(o.Drink)
	case "style":
		return strings.ToLower(StyleText(o))
	case "pickupDate":
		return o.PickupDate
	case "pickupTime":
		return o.PickupTime
	default: // createdAt
		return o.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	}
}

// SortOrders returns a stably sorted copy; ties keep input order.
func SortOrders(in []models.Order, key, dir string) []models.Order {
	out := make([]models.Order, len(in))
	copy(out, in)

	asc := dir != "desc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortValue(out[i], key), sortValue(out[j], key)
		if asc {
			return a < b
		}
		return a > b
	})
	return out
}

// FilterByStatus keeps complete or incomplete orders. Anything that is not
// marked complete counts as incomplete, matching the admin log's two views.
func FilterByStatus(in []models.Order, status string) []models.Order {
	var out []models.Order
	for _, o := range in {
		complete := o.Status == "complete"
		if (status == "complete") == complete {
			out = append(out, o)
		}
	}
	return out
}
