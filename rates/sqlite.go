package rates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS observations (
	pair TEXT NOT NULL,
	date TEXT NOT NULL,
	rate REAL NOT NULL,
	source TEXT NOT NULL,
	confidence REAL NOT NULL,
	PRIMARY KEY (pair, date)
);

CREATE INDEX IF NOT EXISTS idx_observations_pair ON observations(pair);
`

// Store is a SQLite-backed observation cache. The engine itself never
// persists anything; the store exists on the collaborator side so repeated
// analyses of the same period don't refetch market data.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the observation database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open rate store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init rate store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Put upserts one observation.
func (s *Store) Put(ctx context.Context, pair Pair, o Observation) error {
	if err := o.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO observations (pair, date, rate, source, confidence)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(pair, date) DO UPDATE SET
			rate = excluded.rate,
			source = excluded.source,
			confidence = excluded.confidence`,
		pair.String(), dayKey(o.Date), o.Rate, o.Source, o.Confidence,
	)
	return err
}

// PutSeries stores a whole history in one transaction.
func (s *Store) PutSeries(ctx context.Context, series *Series) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (pair, date, rate, source, confidence)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(pair, date) DO UPDATE SET
			rate = excluded.rate,
			source = excluded.source,
			confidence = excluded.confidence`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for _, o := range series.Observations() {
		if _, err := stmt.ExecContext(ctx, series.Pair().String(), dayKey(o.Date),
			o.Rate, o.Source, o.Confidence); err != nil {
			return n, err
		}
		n++
	}
	return n, tx.Commit()
}

// Spot implements Source.
func (s *Store) Spot(ctx context.Context, pair Pair, date time.Time) (Observation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT date, rate, source, confidence FROM observations
		WHERE pair = ? AND date = ?`,
		pair.String(), dayKey(date),
	)

	var day string
	var o Observation
	if err := row.Scan(&day, &o.Rate, &o.Source, &o.Confidence); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Observation{}, ErrUnavailable
		}
		return Observation{}, fmt.Errorf("query rate store: %w", err)
	}

	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return Observation{}, fmt.Errorf("corrupt date %q in rate store: %w", day, err)
	}
	o.Date = d
	return o, nil
}

// Range loads the stored history for pair between from and to inclusive.
func (s *Store) Range(ctx context.Context, pair Pair, from, to time.Time) (*Series, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, rate, source, confidence FROM observations
		WHERE pair = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		pair.String(), dayKey(from), dayKey(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query rate store: %w", err)
	}
	defer rows.Close()

	var obs []Observation
	for rows.Next() {
		var day string
		var o Observation
		if err := rows.Scan(&day, &o.Rate, &o.Source, &o.Confidence); err != nil {
			return nil, err
		}
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q in rate store: %w", day, err)
		}
		o.Date = d
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return NewSeries(pair, obs), nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Cached chains a store in front of a slower origin Source. Hits come from
// the store; misses go to the origin and are written back.
type Cached struct {
	Store  *Store
	Origin Source
}

// Spot implements Source.
func (c *Cached) Spot(ctx context.Context, pair Pair, date time.Time) (Observation, error) {
	o, err := c.Store.Spot(ctx, pair, date)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return Observation{}, err
	}

	o, err = c.Origin.Spot(ctx, pair, date)
	if err != nil {
		return Observation{}, err
	}
	if putErr := c.Store.Put(ctx, pair, o); putErr != nil {
		return Observation{}, fmt.Errorf("write back observation: %w", putErr)
	}
	return o, nil
}
