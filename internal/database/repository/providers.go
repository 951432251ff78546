package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx, so the same
// repo can run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ProviderRepo handles the tile-provider catalog.
type ProviderRepo struct {
	db DBTX
}

func NewProviderRepo(db DBTX) *ProviderRepo {
	return &ProviderRepo{db: db}
}

func (r *ProviderRepo) Upsert(ctx context.Context, p Provider) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO providers(id, name, url, attribution, category, source, requires_token)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
	 url=excluded.url,
	 attribution=excluded.attribution,
	 category=excluded.category,
	 source=excluded.source,
	 requires_token=excluded.requires_token;
	`, p.ID, p.Name, p.URL, p.Attribution, p.Category, p.Source, boolToInt(p.RequiresToken))
	return err
}

// List returns providers in a category ordered by name. An empty
// category returns the whole catalog.
func (r *ProviderRepo) List(ctx context.Context, category string) ([]Provider, error) {
	q := `SELECT id, name, url, attribution, category, source, requires_token, created_at
	      FROM providers`
	var args []any
	if category != "" {
		q += ` WHERE category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

// Get returns the provider with the given name, or sql.ErrNoRows.
func (r *ProviderRepo) Get(ctx context.Context, name string) (Provider, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, url, attribution, category, source, requires_token, created_at
	 FROM providers WHERE name = ?`, name)
	var p Provider
	var tok int
	if err := row.Scan(&p.ID, &p.Name, &p.URL, &p.Attribution, &p.Category, &p.Source, &tok, &p.CreatedAt); err != nil {
		return Provider{}, err
	}
	p.RequiresToken = tok != 0
	return p, nil
}

// Search matches keyword against provider names: substring hits rank
// first, then close names by Levenshtein distance. QMS-sourced entries
// are excluded unless includeQMS is set. The catalog is small, so the
// ranking runs in memory over the full list.
func (r *ProviderRepo) Search(ctx context.Context, keyword string, includeQMS bool) ([]Provider, error) {
	all, err := r.List(ctx, "")
	if err != nil {
		return nil, err
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, nil
	}

	type ranked struct {
		p        Provider
		contains bool
		dist     int
	}
	var hits []ranked
	for _, p := range all {
		if p.Source == SourceQMS && !includeQMS {
			continue
		}
		name := strings.ToLower(p.Name)
		contains := strings.Contains(name, keyword)
		dist := tokenDistance(keyword, name)
		if !contains && dist > searchDistanceCutoff(keyword) {
			continue
		}
		hits = append(hits, ranked{p: p, contains: contains, dist: dist})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].contains != hits[j].contains {
			return hits[i].contains
		}
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].p.Name < hits[j].p.Name
	})

	out := make([]Provider, len(hits))
	for i, h := range hits {
		out[i] = h.p
	}
	return out, nil
}

// tokenDistance is the smallest edit distance between the keyword and
// any dot/space/dash-separated token of the name, so "postron" still
// finds "CartoDB.Positron".
func tokenDistance(keyword, name string) int {
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == ' ' || r == '-' || r == '_'
	})
	best := levenshtein.ComputeDistance(keyword, name)
	for _, tok := range tokens {
		if d := levenshtein.ComputeDistance(keyword, tok); d < best {
			best = d
		}
	}
	return best
}

// searchDistanceCutoff loosens the fuzzy match for longer keywords.
func searchDistanceCutoff(keyword string) int {
	c := len(keyword) / 3
	if c < 3 {
		c = 3
	}
	return c
}

func scanProviders(rows *sql.Rows) ([]Provider, error) {
	var out []Provider
	for rows.Next() {
		var p Provider
		var tok int
		if err := rows.Scan(&p.ID, &p.Name, &p.URL, &p.Attribution, &p.Category, &p.Source, &tok, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.RequiresToken = tok != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
