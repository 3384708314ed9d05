package reports

import "time"

// Export formats.
const (
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
)

// RosterRow is one participant line of the roster. It carries no pairing data.
type RosterRow struct {
	Name        string
	Email       string
	Status      string
	IsOrganizer bool
	Wishlist    string
	JoinedAt    time.Time
}

// Roster is an event header plus its participant rows.
type Roster struct {
	EventName string
	EventDate string
	JoinCode  string
	IsDrawn   bool
	Rows      []RosterRow
}
