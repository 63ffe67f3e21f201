// Package models defines the persisted records for seoscout.
package models

import "time"

// Keyword is one row of the keyword table. Nil metrics mean "not measured".
type Keyword struct {
	Word             string    `json:"word"`
	SearchVolume     *int      `json:"search_volume,omitempty"`
	TrendScore       *float64  `json:"trend_score,omitempty"`
	IntentType       string    `json:"intent_type,omitempty"`
	CompetitionLevel string    `json:"competition_level,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SitePlan is an appended site plan.
type SitePlan struct {
	ID          int64     `json:"id"`
	AnalysisID  string    `json:"analysis_id"`
	Keyword     string    `json:"keyword"`
	SiteType    string    `json:"site_type"`
	OutlineKind string    `json:"outline_kind"`
	CoreFeature string    `json:"core_feature"`
	TechStack   string    `json:"tech_stack"`
	Headline    string    `json:"headline"`
	Structure   []string  `json:"structure"`
	CreatedAt   time.Time `json:"created_at"`
}

// Search is one logged search engine request.
type Search struct {
	ID           int64     `json:"id"`
	Keyword      string    `json:"keyword"`
	Engine       string    `json:"engine"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
}
