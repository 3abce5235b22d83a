package models

import "time"

// Order is a placed coffee order. Temp and Milk are drink-dependent and
// stay empty for drinks that do not use them.
type Order struct {
	OrderID    string    `json:"orderid" bson:"orderid"`
	Name       string    `json:"name" bson:"name"`
	Drink      string    `json:"drink" bson:"drink"`
	Temp       string    `json:"temp,omitempty" bson:"temp,omitempty"`
	Milk       string    `json:"milk,omitempty" bson:"milk,omitempty"`
	PickupDate string    `json:"pickupDate" bson:"pickupDate"`
	PickupTime string    `json:"pickupTime" bson:"pickupTime"`
	Status     string    `json:"status" bson:"status"` // incomplete, complete
	PickupCode string    `json:"pickupCode,omitempty" bson:"pickupCode,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// SlotCounter tracks reservations against one pickup slot. The document id
// is "<date>_<HH:MM>" and Count never exceeds the slot's capacity.
type SlotCounter struct {
	Key       string    `json:"id" bson:"_id"`
	Date      string    `json:"date" bson:"date"`
	Time      string    `json:"time" bson:"time"`
	Count     int       `json:"count" bson:"count"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Comment is one entry on the coffee page. ParentID is empty for a root
// comment. Rating is 0 when unrated, otherwise 1-5 and only set on roots.
type Comment struct {
	CommentID string    `json:"id" bson:"commentid"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Text      string    `json:"text" bson:"text"`
	ParentID  string    `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Likes     int       `json:"likes" bson:"likes"`
	Dislikes  int       `json:"dislikes" bson:"dislikes"`
	Rating    int       `json:"rating,omitempty" bson:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// BlogPost mirrors one card on the blog index.
type BlogPost struct {
	PostID string   `json:"postid" bson:"postid"`
	Title  string   `json:"title" bson:"title"`
	Tags   []string `json:"tags" bson:"tags"`
	Year   int      `json:"year" bson:"year"`
	Slug   string   `json:"slug,omitempty" bson:"slug,omitempty"`
}

// Thought is one entry in the thoughts stream.
type Thought struct {
	Index int       `json:"index" bson:"index"`
	Text  string    `json:"text" bson:"text"`
	Date  time.Time `json:"date" bson:"date"`
	Likes int       `json:"likes" bson:"likes"`
}

// DevblogEntry is one coffee dev-log entry, newest first.
type DevblogEntry struct {
	EntryID   string    `json:"entryid" bson:"entryid"`
	Title     string    `json:"title" bson:"title"`
	Body      []string  `json:"body" bson:"body"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
