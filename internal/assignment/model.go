package assignment

import "time"

// MyAssignment is what a giver sees: their receiver and the receiver's
// wishlist as it is now, not as it was at draw time.
type MyAssignment struct {
	EventID          string    `json:"event_id"`
	GiverEmail       string    `json:"giver_email"`
	GiverName        string    `json:"giver_name"`
	ReceiverEmail    string    `json:"receiver_email"`
	ReceiverName     string    `json:"receiver_name"`
	ReceiverWishlist string    `json:"receiver_wishlist,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// DrawResult summarises a committed draw without revealing pairings.
type DrawResult struct {
	EventID     string    `json:"event_id"`
	Assignments int       `json:"assignments"`
	DrawnAt     time.Time `json:"drawn_at"`
}

// ResetResult reports how many pairings a reset removed.
type ResetResult struct {
	EventID string `json:"event_id"`
	Removed int64  `json:"removed"`
}
