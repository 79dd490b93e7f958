package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"hackernews-report/internal/model"
	"hackernews-report/internal/search"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const postColumns = "id, title, author, score, url, created_at, type, category, fetched_at, tags"

// PostgresStore renders compiled predicates into parameterized SQL. The
// migrations create the secondary indexes search relies on for performance;
// queries are correct without them.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects to url and applies pending migrations.
func NewPostgresStore(ctx context.Context, url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping postgres: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("storage: load migrations: %w", err)
	}
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("storage: migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("storage: init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("storage: run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertPost(ctx context.Context, p model.Post) (bool, error) {
	var created bool
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			score = EXCLUDED.score,
			url = EXCLUDED.url,
			created_at = EXCLUDED.created_at,
			type = EXCLUDED.type,
			category = EXCLUDED.category,
			fetched_at = EXCLUDED.fetched_at,
			tags = EXCLUDED.tags
		RETURNING (xmax = 0)`,
		p.ID, p.Title, p.Author, p.Score, p.URL, p.CreatedAt,
		p.Type, string(p.Category), p.FetchedAt, pq.Array(p.Tags),
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("storage: upsert post %d: %w", p.ID, err)
	}
	return created, nil
}

func (s *PostgresStore) GetPost(ctx context.Context, id int) (model.Post, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, ErrNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("storage: get post %d: %w", id, err)
	}
	return p, nil
}

func (s *PostgresStore) FindPosts(ctx context.Context, preds []search.Predicate, order model.OrderBy, limit, offset int) ([]model.Post, error) {
	where, args := renderWhere(preds)
	q := "SELECT " + postColumns + " FROM posts WHERE " + where + orderClause(order)
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: find posts: %w", err)
	}
	defer rows.Close()
	var out []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: find posts: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountPosts(ctx context.Context, preds []search.Predicate) (int, error) {
	where, args := renderWhere(preds)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE "+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: count posts: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) PostsByCategory(ctx context.Context, category model.Category, order model.OrderBy) ([]model.Post, error) {
	q := "SELECT " + postColumns + " FROM posts"
	var args []any
	if category != "" {
		q += " WHERE category = $1"
		args = append(args, string(category))
	}
	if order == model.OrderRelevance {
		order = model.OrderDateDesc
	}
	q += orderClause(order)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: posts by category: %w", err)
	}
	defer rows.Close()
	var out []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: posts by category: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CategoryCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM posts GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("storage: category counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("storage: category counts: %w", err)
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (model.Post, error) {
	var p model.Post
	var tags pq.StringArray
	var category string
	err := r.Scan(&p.ID, &p.Title, &p.Author, &p.Score, &p.URL,
		&p.CreatedAt, &p.Type, &category, &p.FetchedAt, &tags)
	if err != nil {
		return model.Post{}, err
	}
	p.Category = model.Category(category)
	p.Tags = []string(tags)
	return p, nil
}

// renderWhere converts predicates into a WHERE expression with positional
// arguments. The same composition drives both COUNT and SELECT so totals
// always reflect page-filter semantics.
func renderWhere(preds []search.Predicate) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	for _, pr := range preds {
		switch pr.Kind {
		case search.KindText:
			for _, w := range pr.Words {
				conds = append(conds, "LOWER(title) LIKE "+arg("%"+w+"%"))
			}
		case search.KindAuthor:
			conds = append(conds, "LOWER(author) LIKE "+arg("%"+pr.Substring+"%"))
		case search.KindTags:
			conds = append(conds, "tags && "+arg(pq.Array(pr.Tags)))
		case search.KindScore:
			if pr.MinScore != nil {
				conds = append(conds, "score >= "+arg(*pr.MinScore))
			}
			if pr.MaxScore != nil {
				conds = append(conds, "score <= "+arg(*pr.MaxScore))
			}
		case search.KindDate:
			if pr.MinTime != nil {
				conds = append(conds, "created_at >= "+arg(*pr.MinTime))
			}
			if pr.MaxTime != nil {
				conds = append(conds, "created_at <= "+arg(*pr.MaxTime))
			}
		}
	}
	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}

func orderClause(order model.OrderBy) string {
	switch order {
	case model.OrderDateDesc:
		return " ORDER BY created_at DESC"
	case model.OrderDateAsc:
		return " ORDER BY created_at ASC"
	case model.OrderScoreDesc:
		return " ORDER BY score DESC"
	case model.OrderScoreAsc:
		return " ORDER BY score ASC"
	default:
		// Relevance ranking happens in the search service; keep a stable
		// natural order for the full fetch.
		return " ORDER BY id"
	}
}
