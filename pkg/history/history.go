// Package history keeps a local sqlite log of seller scorings so score
// movements can be tracked and served without hitting the backend.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/verible/verible-cli/pkg/trustview"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS seller_snapshots (
  id                       INTEGER PRIMARY KEY,
  profile_url              TEXT NOT NULL,
  platform                 TEXT NOT NULL,
  name                     TEXT,
  pulse_score              INTEGER NOT NULL,
  confidence_level         TEXT NOT NULL,
  trust_label              TEXT NOT NULL,
  star_rating              REAL NOT NULL,
  marketplace_verification TEXT NOT NULL,
  captured_at              DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_snapshots_seller ON seller_snapshots(profile_url, captured_at);
CREATE TABLE IF NOT EXISTS score_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  profile_url TEXT NOT NULL,
  platform    TEXT NOT NULL,
  name        TEXT,
  old_score   INTEGER NOT NULL,
  new_score   INTEGER NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('first-seen','improved','declined'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON score_changes(occurred_at);
	`); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// NormalizeProfileURL ensures consistent seller identity across captures.
func NormalizeProfileURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if u, err := url.Parse(s); err == nil && u.Host != "" {
		u.Host = strings.ToLower(u.Host)
		if strings.HasSuffix(u.Path, "/") && len(u.Path) > 1 {
			u.Path = strings.TrimRight(u.Path, "/")
		}
		if u.Scheme == "" {
			u.Scheme = "https"
		}
		u.Fragment = ""
		return u.String()
	}
	return s
}

// RecordView appends a snapshot built from a normalized view and logs a
// score-change event when the score moved since the previous capture.
// The returned Change is nil when the score was unchanged.
func (d *DB) RecordView(ctx context.Context, profileURL string, v *trustview.SellerTrustView) (*Change, error) {
	if v == nil {
		return nil, errors.New("nil view")
	}
	profileURL = NormalizeProfileURL(profileURL)
	if profileURL == "" {
		return nil, errors.New("empty profile url")
	}
	now := time.Now().UTC()
	nowStr := now.Format(sqliteTimeLayout)

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var prevScore sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT pulse_score FROM seller_snapshots WHERE profile_url = ? ORDER BY captured_at DESC, id DESC LIMIT 1",
		profileURL).Scan(&prevScore)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	err = nil

	_, err = tx.ExecContext(ctx, `INSERT INTO seller_snapshots(profile_url, platform, name, pulse_score, confidence_level, trust_label, star_rating, marketplace_verification, captured_at) VALUES(?,?,?,?,?,?,?,?,?)`,
		profileURL, v.Platform, nullIfEmpty(v.SellerIdentity.Name), v.TrustScore, v.ConfidenceLevel, v.TrustLabel, v.StarRating, v.MarketplaceVerification, nowStr)
	if err != nil {
		return nil, err
	}

	var change *Change
	switch {
	case !prevScore.Valid:
		change = &Change{ChangeType: ChangeFirstSeen, NewScore: v.TrustScore}
	case int(prevScore.Int64) < v.TrustScore:
		change = &Change{ChangeType: ChangeImproved, OldScore: int(prevScore.Int64), NewScore: v.TrustScore}
	case int(prevScore.Int64) > v.TrustScore:
		change = &Change{ChangeType: ChangeDeclined, OldScore: int(prevScore.Int64), NewScore: v.TrustScore}
	}

	if change != nil {
		change.OccurredAt = now
		change.ProfileURL = profileURL
		change.Platform = v.Platform
		change.Name = v.SellerIdentity.Name
		_, err = tx.ExecContext(ctx, `INSERT INTO score_changes(occurred_at, profile_url, platform, name, old_score, new_score, change_type) VALUES(?,?,?,?,?,?,?)`,
			nowStr, profileURL, v.Platform, nullIfEmpty(v.SellerIdentity.Name), change.OldScore, change.NewScore, change.ChangeType)
		if err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return change, nil
}

// ListLatest returns the most recent snapshot per tracked seller.
func (d *DB) ListLatest(ctx context.Context, opts ListOptions) ([]Snapshot, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if opts.Platform != "" && opts.Platform != "all" {
		where += " AND s.platform = ?"
		args = append(args, opts.Platform)
	}
	if opts.SearchFilter != "" {
		where += " AND (s.profile_url LIKE ? OR s.name LIKE ?)"
		pattern := fmt.Sprintf("%%%s%%", opts.SearchFilter)
		args = append(args, pattern, pattern)
	}
	if !opts.Since.IsZero() {
		where += " AND s.captured_at >= ?"
		args = append(args, opts.Since.UTC().Format(sqliteTimeLayout))
	}

	// Join against the newest snapshot id per seller so captures landing in
	// the same second still resolve deterministically.
	q := `SELECT s.profile_url, s.platform, s.name, s.pulse_score, s.confidence_level, s.trust_label, s.star_rating, s.marketplace_verification, s.captured_at
FROM seller_snapshots s
JOIN (SELECT profile_url, MAX(id) AS max_id FROM seller_snapshots GROUP BY profile_url) latest
  ON s.id = latest.max_id
` + where + `
ORDER BY s.profile_url`
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListSnapshots returns the full capture history of one seller, oldest first.
func (d *DB) ListSnapshots(ctx context.Context, profileURL string) ([]Snapshot, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT profile_url, platform, name, pulse_score, confidence_level, trust_label, star_rating, marketplace_verification, captured_at
FROM seller_snapshots WHERE profile_url = ? ORDER BY captured_at, id`,
		NormalizeProfileURL(profileURL))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSnapshot(rows *sql.Rows) (Snapshot, error) {
	var s Snapshot
	var name sql.NullString
	var capturedAt string
	if err := rows.Scan(&s.ProfileURL, &s.Platform, &name, &s.PulseScore, &s.ConfidenceLevel, &s.TrustLabel, &s.StarRating, &s.MarketplaceVerification, &capturedAt); err != nil {
		return Snapshot{}, err
	}
	s.Name = name.String
	s.CapturedAt = parseSQLiteTime(capturedAt)
	return s, nil
}

// ListRecentChanges returns the most recent N score changes across sellers.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.sql.QueryContext(ctx,
		"SELECT occurred_at, profile_url, platform, name, old_score, new_score, change_type FROM score_changes ORDER BY occurred_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []Change{}
	for rows.Next() {
		var c Change
		var name sql.NullString
		var occurredAt string
		if err := rows.Scan(&occurredAt, &c.ProfileURL, &c.Platform, &name, &c.OldScore, &c.NewScore, &c.ChangeType); err != nil {
			return nil, err
		}
		c.Name = name.String
		c.OccurredAt = parseSQLiteTime(occurredAt)
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func (d *DB) GetStats(ctx context.Context) ([]PlatformStats, error) {
	q := `
		SELECT platform, COUNT(DISTINCT profile_url), AVG(pulse_score)
		FROM seller_snapshots
		GROUP BY platform
		ORDER BY platform;
	`
	rows, err := d.sql.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PlatformStats
	for rows.Next() {
		var s PlatformStats
		if err := rows.Scan(&s.Platform, &s.SellerCount, &s.AvgScore); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

// parseSQLiteTime handles both CURRENT_TIMESTAMP and RFC3339 storage formats.
func parseSQLiteTime(raw string) time.Time {
	if t, err := time.Parse(sqliteTimeLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
