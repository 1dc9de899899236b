package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AuditRecord is one row of the append-only logs collection. Every
// pipeline phase writes exactly one record; failures to write are
// logged and swallowed so the audit trail can never fail a checkout.
type AuditRecord struct {
	bun.BaseModel `bun:"table:logs"`

	ID    string         `bun:"id,pk" json:"id"`
	Phase string         `bun:"phase" json:"phase"`
	Data  map[string]any `bun:"data,type:jsonb,nullzero" json:"data,omitempty"`
	TS    time.Time      `bun:"ts" json:"ts"`
}
