package api

import (
	"github.com/starford/seoscout/internal/intent"
	"github.com/starford/seoscout/internal/models"
	"github.com/starford/seoscout/internal/outline"
	"github.com/starford/seoscout/internal/seo"
)

// ClassifyResponse is the intent of a single keyword.
type ClassifyResponse struct {
	Keyword string          `json:"keyword" example:"ai generator" validate:"required"`
	Intent  intent.Category `json:"intent" example:"transactional" validate:"required"`
}

// AnalyzeRequest is the request body for analysing a keyword.
type AnalyzeRequest struct {
	Keyword  string `json:"keyword" example:"ai generator" validate:"required"`
	Longtail *int   `json:"longtail,omitempty" example:"20"`
	Save     bool   `json:"save,omitempty"`
}

// AnalyzeResponse wraps a report and, when saved, the files written for it.
type AnalyzeResponse struct {
	*seo.Report
	Files []string `json:"files,omitempty"`
}

// OutlineResponse is a generated outline.
type OutlineResponse = outline.Result

// BatchRequest is the request body for analysing several keywords.
type BatchRequest struct {
	Keywords []string `json:"keywords" validate:"required"`
	Longtail *int     `json:"longtail,omitempty" example:"20"`
}

// BatchResponse wraps per-keyword batch results.
type BatchResponse struct {
	Results   []seo.BatchResult `json:"results" validate:"required"`
	Succeeded int               `json:"succeeded" example:"3" validate:"required"`
}

// RelatedResponse lists keywords related to a query.
type RelatedResponse struct {
	Keyword string   `json:"keyword" example:"pdf tools" validate:"required"`
	Related []string `json:"related" validate:"required"`
}

// KeywordListResponse wraps stored keywords.
type KeywordListResponse struct {
	Keywords []models.Keyword `json:"keywords" validate:"required"`
}

// PlanListResponse wraps stored site plans.
type PlanListResponse struct {
	Plans []models.SitePlan `json:"plans" validate:"required"`
}

// HistoryResponse wraps logged searches.
type HistoryResponse struct {
	Searches []models.Search `json:"searches" validate:"required"`
}
