package event

import "github.com/sharath018/secret-santa-backend/internal/models"

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	EventDate      string   `json:"event_date" binding:"required"` // 🛠 string format: "2006-01-02"
	Budget         *float64 `json:"budget,omitempty"`
	OrganizerName  string   `json:"organizer_name" binding:"required"`
	OrganizerEmail string   `json:"organizer_email" binding:"required"`
}

type CreateEventResponse struct {
	EventID  string `json:"event_id"`
	JoinCode string `json:"join_code"`
}

// ============================
// 🟠 Update Event Request. Nil fields are left untouched.
type UpdateEventRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	EventDate   *string  `json:"event_date,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
}

// EventDetails is an event with its full participant list.
type EventDetails struct {
	Event            models.Event         `json:"event"`
	Participants     []models.Participant `json:"participants"`
	ParticipantCount int                  `json:"participant_count"` // accepted only
}

// EventSummary is one row of a participant's "my events" list.
type EventSummary struct {
	models.Event
	IsOrganizer      bool `json:"is_organizer"`
	ParticipantCount int  `json:"participant_count"`
}
