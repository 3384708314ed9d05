package notification

import "time"

// Job kinds.
const (
	KindAssignment = "assignment"
	KindInvitation = "invitation"
)

// Log statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Job is one message to one recipient. It is what travels over Kafka, so
// every field needed to render the email is carried inline.
type Job struct {
	Kind      string   `json:"kind"`
	EventID   string   `json:"event_id"`
	Recipient string   `json:"recipient"`
	EventName string   `json:"event_name"`
	EventDate string   `json:"event_date"`
	Budget    *float64 `json:"budget,omitempty"`

	// assignment
	GiverName        string `json:"giver_name,omitempty"`
	ReceiverName     string `json:"receiver_name,omitempty"`
	ReceiverWishlist string `json:"receiver_wishlist,omitempty"`

	// invitation
	OrganizerName    string `json:"organizer_name,omitempty"`
	EventDescription string `json:"event_description,omitempty"`
	JoinCode         string `json:"join_code,omitempty"`
}

// NotificationLog - each actual message sent
type NotificationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"type:uuid;not null;index" json:"event_id"`
	Kind      string    `gorm:"size:20;not null" json:"kind"`
	Channel   string    `gorm:"size:20;not null" json:"channel"` // email
	Recipient string    `gorm:"size:255;not null" json:"recipient"`
	Subject   string    `gorm:"size:255" json:"subject,omitempty"`
	Status    string    `gorm:"size:20;default:'pending'" json:"status"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NotificationLog) TableName() string { return "notification_logs" }
