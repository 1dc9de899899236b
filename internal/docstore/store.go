package docstore

import (
	"context"

	"github.com/uptrace/bun"

	"ms-checkout/internal/models"
)

// Store is the platform document store: an append-only logs collection
// used as the audit trail, and a tickets collection the landing page
// queries to re-resolve item UUIDs into event context.
type Store struct {
	Bun *bun.DB
}

// ---------------- LOGS ----------------

// InsertAuditRecord appends one record to the logs collection.
func (s *Store) InsertAuditRecord(ctx context.Context, record models.AuditRecord) error {
	_, err := s.Bun.NewInsert().Model(&record).Exec(ctx)
	return err
}

// AuditRecordsByPhase fetches audit records for a phase tag, newest
// first. Used by the operations endpoints, not by the checkout path.
func (s *Store) AuditRecordsByPhase(ctx context.Context, phase string, limit int) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	err := s.Bun.NewSelect().
		Model(&records).
		Where("phase = ?", phase).
		Order("ts DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ---------------- TICKETS ----------------

// TicketsByIDs batch-fetches ticket records for the given ids in one
// query (the hasSome lookup). Unknown ids simply produce no row; the
// caller decides whether zero rows is fatal.
func (s *Store) TicketsByIDs(ctx context.Context, ids []string) ([]models.TicketRecord, error) {
	if len(ids) == 0 {
		return []models.TicketRecord{}, nil
	}
	var tickets []models.TicketRecord
	err := s.Bun.NewSelect().
		Model(&tickets).
		Where("ticket_id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CreateTicket inserts one ticket lookup row.
func (s *Store) CreateTicket(ctx context.Context, ticket models.TicketRecord) error {
	_, err := s.Bun.NewInsert().Model(&ticket).Exec(ctx)
	return err
}

// TicketsByEvent fetches all ticket rows for one event.
func (s *Store) TicketsByEvent(ctx context.Context, eventID string) ([]models.TicketRecord, error) {
	var tickets []models.TicketRecord
	err := s.Bun.NewSelect().
		Model(&tickets).
		Where("event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
