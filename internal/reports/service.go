package reports

import (
	"context"
	"strings"

	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/participant"
)

var ErrUnsupportedFormat = apperr.New(apperr.ErrInvalidInput, "unsupported format, use xlsx, pdf or csv")

// Service builds organizer-facing exports. Pairings are never exported.
type Service struct {
	Events       *event.Service
	Participants participant.Repository
	Exporter     RosterExporter
	AuditSvc     auditlog.Service
}

func NewService(events *event.Service, participants participant.Repository, exporter RosterExporter, auditSvc auditlog.Service) *Service {
	return &Service{Events: events, Participants: participants, Exporter: exporter, AuditSvc: auditSvc}
}

// ExportRoster returns the file bytes, filename and content type.
func (s *Service) ExportRoster(ctx context.Context, eventID, callerEmail, format string) ([]byte, string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatExcel
	}
	if format != FormatExcel && format != FormatPDF && format != FormatCSV {
		return nil, "", "", ErrUnsupportedFormat
	}

	ev, err := s.Events.CheckOrganizer(ctx, eventID, callerEmail, "export the roster")
	if err != nil {
		return nil, "", "", err
	}
	participants, err := s.Participants.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	roster := Roster{
		EventName: ev.Name,
		EventDate: ev.EventDate,
		JoinCode:  ev.JoinCode,
		IsDrawn:   ev.IsDrawn,
		Rows:      make([]RosterRow, 0, len(participants)),
	}
	for _, p := range participants {
		roster.Rows = append(roster.Rows, RosterRow{
			Name:        p.Name,
			Email:       p.Email,
			Status:      p.Status,
			IsOrganizer: p.IsOrganizer,
			Wishlist:    p.Wishlist,
			JoinedAt:    p.CreatedAt,
		})
	}

	data, filename, contentType, err := s.Exporter.Export(format, roster)
	status := auditlog.StatusSuccess
	details := map[string]interface{}{"format": format, "rows": len(roster.Rows)}
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	auditlog.Record(ctx, s.AuditSvc, ev.OrganizerEmail, &ev.ID, auditlog.ActionRosterExported, details, status)
	if err != nil {
		return nil, "", "", err
	}
	return data, filename, contentType, nil
}
