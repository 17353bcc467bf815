package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"ares-site-service/internal/domain"
)

// LeadRepository keeps the local copy of lead submissions. The relay is
// the primary sink; these tables back the client portal.
type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

func (r *LeadRepository) InsertContact(ctx context.Context, lead domain.Lead) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO contact_messages (name, email, company, service, industry, message)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		lead.Name, lead.Email, lead.Company, lead.Service, lead.Industry, lead.Message,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *LeadRepository) InsertAppointment(ctx context.Context, lead domain.Lead) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO appointments (name, email, phone, company, service, preferred_date, preferred_time, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		lead.Name, lead.Email, lead.Phone, lead.Company, lead.Service, lead.Date, lead.PreferredTime, lead.Message,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *LeadRepository) InsertNewsletter(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO newsletter (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`,
		email,
	)
	if err != nil {
		return fmt.Errorf("insert newsletter signup: %w", err)
	}
	return nil
}
