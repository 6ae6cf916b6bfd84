// Package storage persists finished deal estimates. The store is
// append-only: each save writes a fresh snapshot row and nothing is ever
// updated in place. Persistence failures are reported to the caller but
// never block or corrupt an estimate.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"cx-cost/core/types"
	"cx-cost/internal/errors"
)

// Deal is one archived estimate snapshot
type Deal struct {
	// ID is the snapshot identifier
	ID string `json:"id"`

	// ClientName identifies the deal
	ClientName string `json:"client_name"`

	// Owner is the deal owner
	Owner string `json:"owner"`

	// Region the estimate was priced in
	Region types.Region `json:"region"`

	// TotalMonthly is the blended monthly run-rate at save time
	TotalMonthly decimal.Decimal `json:"total_monthly"`

	// Year1TCO is the first-year total cost at save time
	Year1TCO decimal.Decimal `json:"year1_tco"`

	// Input is the full input snapshot
	Input *types.EstimateInput `json:"input"`

	// Financials is the full aggregated result
	Financials *types.AggregatedFinancials `json:"financials"`

	// CreatedAt is the save timestamp
	CreatedAt time.Time `json:"created_at"`
}

// DealStore archives deal snapshots to a SQLite database
type DealStore struct {
	db *sql.DB
}

const createDealsTable = `
CREATE TABLE IF NOT EXISTS deals (
	id TEXT PRIMARY KEY,
	client_name TEXT NOT NULL,
	owner TEXT NOT NULL,
	region TEXT NOT NULL,
	total_monthly TEXT NOT NULL,
	year1_tco TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deals_created ON deals(created_at);
`

// Open creates or opens the deal store at the given path and runs
// auto-migration
func Open(path string) (*DealStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Persistence("failed to create deal store directory", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Persistence("failed to open deal store", err)
	}
	if _, err := db.Exec(createDealsTable); err != nil {
		db.Close()
		return nil, errors.Persistence("failed to migrate deal store", err)
	}
	return &DealStore{db: db}, nil
}

// dealPayload is the JSON blob stored alongside the summary columns
type dealPayload struct {
	Input      *types.EstimateInput        `json:"input"`
	Financials *types.AggregatedFinancials `json:"financials"`
}

// Save archives an estimate. The returned deal carries the generated ID
// and timestamp.
func (s *DealStore) Save(ctx context.Context, in *types.EstimateInput, agg *types.AggregatedFinancials) (*Deal, error) {
	payload, err := json.Marshal(dealPayload{Input: in, Financials: agg})
	if err != nil {
		return nil, errors.Persistence("failed to encode deal payload", err)
	}

	deal := &Deal{
		ID:           uuid.NewString(),
		ClientName:   in.Client.Name,
		Owner:        in.Client.Owner,
		Region:       in.Region,
		TotalMonthly: agg.TotalMonthly,
		Year1TCO:     agg.TCO.Year1,
		Input:        in,
		Financials:   agg,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deals (id, client_name, owner, region, total_monthly, year1_tco, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.ClientName, deal.Owner, string(deal.Region),
		deal.TotalMonthly.String(), deal.Year1TCO.String(), string(payload), deal.CreatedAt,
	)
	if err != nil {
		return nil, errors.Persistence("failed to save deal", err)
	}
	return deal, nil
}

// List returns archived deals, newest first, without the full payload
func (s *DealStore) List(ctx context.Context) ([]*Deal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client_name, owner, region, total_monthly, year1_tco, created_at
		 FROM deals ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Persistence("failed to list deals", err)
	}
	defer rows.Close()

	var deals []*Deal
	for rows.Next() {
		var d Deal
		var region, monthly, year1 string
		if err := rows.Scan(&d.ID, &d.ClientName, &d.Owner, &region, &monthly, &year1, &d.CreatedAt); err != nil {
			return nil, errors.Persistence("failed to scan deal row", err)
		}
		d.Region = types.Region(region)
		if d.TotalMonthly, err = decimal.NewFromString(monthly); err != nil {
			return nil, errors.Persistence("corrupt deal total", err).WithContext("deal", d.ID)
		}
		if d.Year1TCO, err = decimal.NewFromString(year1); err != nil {
			return nil, errors.Persistence("corrupt deal TCO", err).WithContext("deal", d.ID)
		}
		deals = append(deals, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("failed to iterate deals", err)
	}
	return deals, nil
}

// Get loads one archived deal with its full payload
func (s *DealStore) Get(ctx context.Context, id string) (*Deal, error) {
	var d Deal
	var region, monthly, year1, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, client_name, owner, region, total_monthly, year1_tco, payload, created_at
		 FROM deals WHERE id = ?`, id).
		Scan(&d.ID, &d.ClientName, &d.Owner, &region, &monthly, &year1, &payload, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("deal", id)
	}
	if err != nil {
		return nil, errors.Persistence("failed to load deal", err)
	}

	d.Region = types.Region(region)
	if d.TotalMonthly, err = decimal.NewFromString(monthly); err != nil {
		return nil, errors.Persistence("corrupt deal total", err).WithContext("deal", id)
	}
	if d.Year1TCO, err = decimal.NewFromString(year1); err != nil {
		return nil, errors.Persistence("corrupt deal TCO", err).WithContext("deal", id)
	}
	var p dealPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, errors.Persistence("corrupt deal payload", err).WithContext("deal", id)
	}
	d.Input = p.Input
	d.Financials = p.Financials
	return &d, nil
}

// Close releases the underlying database
func (s *DealStore) Close() error {
	return s.db.Close()
}
