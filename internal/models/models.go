package models

import "time"

// Participant statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// ValidStatus reports whether s is one of the participant statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusAccepted || s == StatusDeclined
}

// Event is one gift exchange. EventDate is kept as YYYY-MM-DD.
type Event struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	EventDate      string    `gorm:"type:varchar(10);not null" json:"event_date"`
	Budget         *float64  `json:"budget,omitempty"`
	OrganizerName  string    `gorm:"type:varchar(255);not null" json:"organizer_name"`
	OrganizerEmail string    `gorm:"type:varchar(255);not null;index" json:"organizer_email"`
	JoinCode       string    `gorm:"type:varchar(12);not null;uniqueIndex" json:"join_code"`
	IsDrawn        bool      `gorm:"not null;default:false" json:"is_drawn"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

type Participant struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     string    `gorm:"type:uuid;not null;index;uniqueIndex:uq_participants_event_email" json:"event_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null;index;uniqueIndex:uq_participants_event_email" json:"email"`
	Wishlist    string    `gorm:"type:text" json:"wishlist,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'accepted'" json:"status"`
	IsOrganizer bool      `gorm:"not null;default:false" json:"is_organizer"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Participant) TableName() string { return "participants" }

// Assignment is one giver→receiver pairing. Names are copied at draw time.
// The two unique indexes make a non-bijective set unstorable.
type Assignment struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       string    `gorm:"type:uuid;not null;index;uniqueIndex:uq_assignments_event_giver;uniqueIndex:uq_assignments_event_receiver" json:"event_id"`
	GiverEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_assignments_event_giver" json:"giver_email"`
	GiverName     string    `gorm:"type:varchar(255);not null" json:"giver_name"`
	ReceiverEmail string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_assignments_event_receiver" json:"receiver_email"`
	ReceiverName  string    `gorm:"type:varchar(255);not null" json:"receiver_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Assignment) TableName() string { return "assignments" }

type Message struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     string    `gorm:"type:uuid;not null;index" json:"event_id"`
	SenderName  string    `gorm:"type:varchar(255);not null" json:"sender_name"`
	SenderEmail string    `gorm:"type:varchar(255);not null" json:"sender_email"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string { return "messages" }
