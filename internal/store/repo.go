package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/starford/seoscout/internal/models"
)

// SaveKeyword inserts or updates a keyword. Nil metrics and empty labels keep
// whatever the row already holds.
func (db *DB) SaveKeyword(ctx context.Context, k models.Keyword) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO keywords (word, search_volume, trend_score, intent_type, competition_level, updated_at)
		VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?)
		ON CONFLICT(word) DO UPDATE SET
			search_volume     = COALESCE(excluded.search_volume, keywords.search_volume),
			trend_score       = COALESCE(excluded.trend_score, keywords.trend_score),
			intent_type       = COALESCE(excluded.intent_type, keywords.intent_type),
			competition_level = COALESCE(excluded.competition_level, keywords.competition_level),
			updated_at        = excluded.updated_at
	`, k.Word, k.SearchVolume, k.TrendScore, k.IntentType, k.CompetitionLevel, db.now())
	if err != nil {
		return fmt.Errorf("store: save keyword: %w", err)
	}
	return nil
}

// Keywords returns keywords, most recently saved first.
func (db *DB) Keywords(ctx context.Context, limit int) ([]models.Keyword, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT word, search_volume, trend_score, intent_type, competition_level, updated_at
		FROM keywords ORDER BY updated_at DESC, word LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("store: list keywords: %w", err)
	}
	defer rows.Close()

	out := []models.Keyword{}
	for rows.Next() {
		var (
			k           models.Keyword
			volume      sql.NullInt64
			score       sql.NullFloat64
			intent, cmp sql.NullString
		)
		if err := rows.Scan(&k.Word, &volume, &score, &intent, &cmp, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan keyword: %w", err)
		}
		if volume.Valid {
			v := int(volume.Int64)
			k.SearchVolume = &v
		}
		if score.Valid {
			s := score.Float64
			k.TrendScore = &s
		}
		k.IntentType = intent.String
		k.CompetitionLevel = cmp.String
		out = append(out, k)
	}
	return out, rows.Err()
}

// AddPlan appends a site plan and returns its row id.
func (db *DB) AddPlan(ctx context.Context, p models.SitePlan) (int64, error) {
	structure := p.Structure
	if structure == nil {
		structure = []string{}
	}
	structJSON, _ := json.Marshal(structure)

	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO site_plans (analysis_id, keyword, site_type, outline_kind, core_feature, tech_stack, headline, structure, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.AnalysisID, p.Keyword, p.SiteType, p.OutlineKind, p.CoreFeature, p.TechStack, p.Headline, string(structJSON), db.now())
	if err != nil {
		return 0, fmt.Errorf("store: add plan: %w", err)
	}
	return res.LastInsertId()
}

const planColumns = `id, analysis_id, keyword, site_type, outline_kind, core_feature, tech_stack, headline, structure, created_at`

// Plans returns site plans, newest first.
func (db *DB) Plans(ctx context.Context, limit int) ([]models.SitePlan, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+planColumns+` FROM site_plans ORDER BY id DESC LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("store: list plans: %w", err)
	}
	return scanPlans(rows)
}

// PlansFor returns the plans stored for keyword, newest first.
func (db *DB) PlansFor(ctx context.Context, keyword string, limit int) ([]models.SitePlan, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+planColumns+` FROM site_plans WHERE keyword = ? ORDER BY id DESC LIMIT ?`, keyword, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("store: plans for keyword: %w", err)
	}
	return scanPlans(rows)
}

func scanPlans(rows *sql.Rows) ([]models.SitePlan, error) {
	defer rows.Close()
	out := []models.SitePlan{}
	for rows.Next() {
		var (
			p          models.SitePlan
			structJSON string
		)
		if err := rows.Scan(&p.ID, &p.AnalysisID, &p.Keyword, &p.SiteType, &p.OutlineKind,
			&p.CoreFeature, &p.TechStack, &p.Headline, &structJSON, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(structJSON), &p.Structure); err != nil {
			return nil, fmt.Errorf("store: decode plan structure %d: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecordSearch logs one search engine request.
func (db *DB) RecordSearch(ctx context.Context, keyword, engine string, results int) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO search_history (keyword, engine, results_count, timestamp) VALUES (?, ?, ?, ?)`,
		keyword, engine, results, db.now())
	if err != nil {
		return fmt.Errorf("store: record search: %w", err)
	}
	return nil
}

// History returns logged searches, newest first.
func (db *DB) History(ctx context.Context, limit int) ([]models.Search, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, keyword, engine, results_count, timestamp
		FROM search_history ORDER BY id DESC LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("store: list history: %w", err)
	}
	defer rows.Close()

	out := []models.Search{}
	for rows.Next() {
		var s models.Search
		if err := rows.Scan(&s.ID, &s.Keyword, &s.Engine, &s.ResultsCount, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("store: scan search: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
