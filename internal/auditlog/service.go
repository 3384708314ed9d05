package auditlog

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"gorm.io/datatypes"
)

type Service interface {
	LogAction(ctx context.Context, actorEmail string, eventID *string, action string, details map[string]interface{}, status string) error
	ListByEvent(ctx context.Context, eventID string, page, limit int) (*PaginatedAuditLogs, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type ipKey struct{}

// WithIP attaches the caller's IP so services can audit without taking it as an argument.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

// IPFromContext returns the IP set by WithIP, or "".
func IPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

// LogAction creates a new audit log entry
func (s *service) LogAction(ctx context.Context, actorEmail string, eventID *string, action string, details map[string]interface{}, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return s.repo.Create(ctx, &AuditLog{
		EventID:    eventID,
		ActorEmail: actorEmail,
		Action:     action,
		Details:    datatypes.JSON(detailsJSON),
		IPAddress:  IPFromContext(ctx),
		Status:     status,
	})
}

// ListByEvent retrieves paginated audit logs for one event. Callers check organizer rights.
func (s *service) ListByEvent(ctx context.Context, eventID string, page, limit int) (*PaginatedAuditLogs, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	logs, total, err := s.repo.ListByEvent(ctx, eventID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &PaginatedAuditLogs{
		Data:       logs,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Record is LogAction for callers that must not fail because auditing did.
func Record(ctx context.Context, svc Service, actorEmail string, eventID *string, action string, details map[string]interface{}, status string) {
	if svc == nil {
		return
	}
	if err := svc.LogAction(ctx, actorEmail, eventID, action, details, status); err != nil {
		log.Printf("❌ Audit log error (%s): %v", action, err)
	}
}
