package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Opportunity is a captured job posting. ID is opaque to the store.
type Opportunity struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	Site            string    `json:"site,omitempty"`
	Position        string    `json:"position,omitempty"`
	Company         string    `json:"company,omitempty"`
	Location        string    `json:"location,omitempty"`
	WorkArrangement string    `json:"workArrangement,omitempty"`
	Description     string    `json:"description,omitempty"`
	Compensation    string    `json:"compensation,omitempty"`
	PostedDate      string    `json:"postedDate,omitempty"`
	CapturedAt      time.Time `json:"capturedAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

const opportunityColumns = `id, url, site, position, company, location, work_arrangement, description, compensation, posted_date, captured_at, updated_at`

// SaveOpportunity inserts o or replaces the record with the same ID. The
// first capture time is kept on update.
func (s *Store) SaveOpportunity(ctx context.Context, o Opportunity) error {
	if o.ID == "" {
		return errors.New("opportunity id is required")
	}
	now := time.Now().UTC()
	if o.CapturedAt.IsZero() {
		o.CapturedAt = now
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
INSERT INTO opportunities (`+opportunityColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    url = EXCLUDED.url,
    site = EXCLUDED.site,
    position = EXCLUDED.position,
    company = EXCLUDED.company,
    location = EXCLUDED.location,
    work_arrangement = EXCLUDED.work_arrangement,
    description = EXCLUDED.description,
    compensation = EXCLUDED.compensation,
    posted_date = EXCLUDED.posted_date,
    updated_at = EXCLUDED.updated_at
`), o.ID, o.URL, o.Site, o.Position, o.Company, o.Location, o.WorkArrangement,
		o.Description, o.Compensation, o.PostedDate, o.CapturedAt.UTC(), now)
	if err != nil {
		return fmt.Errorf("save opportunity %s: %w", o.ID, err)
	}
	return nil
}

// OpportunityQuery selects a page of opportunities. A record matches when
// its position, company, location or description contains any keyword,
// case-insensitively. No keywords means every record.
type OpportunityQuery struct {
	Keywords []string
	Limit    int
	Offset   int
}

var keywordColumns = []string{"position", "company", "location", "description"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListOpportunities returns the newest matching captures first. Matching
// happens in SQL so limit and offset page through the matches.
func (s *Store) ListOpportunities(ctx context.Context, q OpportunityQuery) ([]Opportunity, error) {
	limit := clampLimit(q.Limit, 20, 200)
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := keywordClause(q.Keywords)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, s.rebind(`
SELECT `+opportunityColumns+`
FROM opportunities`+where+`
ORDER BY captured_at DESC, id
LIMIT ? OFFSET ?
`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Opportunity
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func keywordClause(keywords []string) (string, []any) {
	var (
		terms []string
		args  []any
	)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		pattern := "%" + likeEscaper.Replace(k) + "%"
		cols := make([]string, 0, len(keywordColumns))
		for _, c := range keywordColumns {
			cols = append(cols, "LOWER("+c+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		terms = append(terms, "("+strings.Join(cols, " OR ")+")")
	}
	if len(terms) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(terms, " OR "), args
}

func (s *Store) GetOpportunity(ctx context.Context, id string) (Opportunity, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
SELECT `+opportunityColumns+`
FROM opportunities
WHERE id = ?
`), id)
	o, err := scanOpportunity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Opportunity{}, ErrNotFound
	}
	return o, err
}

func (s *Store) DeleteOpportunity(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM opportunities WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOlderThan removes captures made before cutoff.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`
DELETE FROM opportunities
WHERE captured_at < ?
`), cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row scanner) (Opportunity, error) {
	var o Opportunity
	err := row.Scan(
		&o.ID,
		&o.URL,
		&o.Site,
		&o.Position,
		&o.Company,
		&o.Location,
		&o.WorkArrangement,
		&o.Description,
		&o.Compensation,
		&o.PostedDate,
		&o.CapturedAt,
		&o.UpdatedAt,
	)
	return o, err
}
