package leads

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ares-site-service/internal/domain"
)

// Recorder persists leads locally. The local copy is best-effort; the
// workspace relay is the primary sink.
type Recorder interface {
	InsertContact(ctx context.Context, lead domain.Lead) error
	InsertAppointment(ctx context.Context, lead domain.Lead) error
	InsertNewsletter(ctx context.Context, email string) error
}

// Relay forwards a lead to the workspace-notes service.
type Relay interface {
	CreateLead(ctx context.Context, lead domain.Lead) (string, error)
}

// Service handles lead-form submissions: sanitize, validate, record
// locally, then relay. A recorder failure is logged and does not abort
// the relay; a relay failure is the submission's failure.
type Service struct {
	recorder Recorder // may be nil when no database is configured
	relay    Relay
	log      *zap.Logger
}

func NewService(recorder Recorder, relay Relay, log *zap.Logger) *Service {
	return &Service{recorder: recorder, relay: relay, log: log}
}

// Submit processes a contact or appointment lead and returns the remote
// page id. No retries: a failed submission requires the user to act again.
func (s *Service) Submit(ctx context.Context, lead domain.Lead) (string, error) {
	lead = sanitizeLead(lead)
	if lead.Name == "" || lead.Email == "" {
		return "", domain.ErrMissingLeadFields
	}

	// Appointment submissions without free text still produce a readable note.
	if lead.Message == "" && lead.Service != "" {
		lead.Message = fmt.Sprintf("Appointment request for %s on %s at %s", lead.Service, lead.Date, lead.PreferredTime)
	}

	if s.recorder != nil {
		var err error
		switch lead.Kind {
		case domain.LeadAppointment:
			err = s.recorder.InsertAppointment(ctx, lead)
		default:
			err = s.recorder.InsertContact(ctx, lead)
		}
		if err != nil {
			s.log.Warn("record lead failed", zap.String("kind", string(lead.Kind)), zap.Error(err))
		}
	}

	pageID, err := s.relay.CreateLead(ctx, lead)
	if err != nil {
		return "", err
	}
	return pageID, nil
}

// SubscribeNewsletter records a newsletter signup locally only.
func (s *Service) SubscribeNewsletter(ctx context.Context, email string) error {
	email = Sanitize(email)
	if email == "" {
		return domain.ErrMissingLeadFields
	}
	if s.recorder == nil {
		return nil
	}
	return s.recorder.InsertNewsletter(ctx, email)
}

func sanitizeLead(lead domain.Lead) domain.Lead {
	lead.Name = Sanitize(lead.Name)
	lead.Email = Sanitize(lead.Email)
	lead.Company = Sanitize(lead.Company)
	lead.Phone = Sanitize(lead.Phone)
	lead.Service = Sanitize(lead.Service)
	lead.Industry = Sanitize(lead.Industry)
	lead.Message = Sanitize(lead.Message)
	lead.Date = Sanitize(lead.Date)
	lead.PreferredTime = Sanitize(lead.PreferredTime)
	return lead
}
