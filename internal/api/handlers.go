package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starford/seoscout/internal/apperr"
	"github.com/starford/seoscout/internal/intent"
	"github.com/starford/seoscout/internal/planfile"
	"github.com/starford/seoscout/internal/seo"
)

// maxBatchKeywords bounds a single POST /batch request.
const maxBatchKeywords = 100

// Handler holds API route handlers.
type Handler struct {
	svc      *seo.Service
	longtail int
}

// NewHandler creates a new Handler. longtail is used when a request does not
// carry its own count; values below one fall back to seo.DefaultLongtailCount.
func NewHandler(svc *seo.Service, longtail int) *Handler {
	if longtail < 1 {
		longtail = seo.DefaultLongtailCount
	}
	return &Handler{svc: svc, longtail: longtail}
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidKeyword):
		writeJSON(w, http.StatusBadRequest, errorBody("keyword is required"))
	case errors.Is(err, apperr.ErrInvalidPlan):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("backend unavailable"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (h *Handler) longtailCount(v *int) (int, bool) {
	if v == nil {
		return h.longtail, true
	}
	return *v, *v >= 0
}

func queryLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

// Classify handles GET /api/classify.
//
//	@Summary		Classify the search intent of a keyword
//	@Tags			analysis
//	@Produce		json
//	@Param			q	query		string	true	"Keyword"
//	@Success		200	{object}	ClassifyResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/classify [get]
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	kw := intent.Normalize(r.URL.Query().Get("q"))
	if kw == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	writeJSON(w, http.StatusOK, ClassifyResponse{Keyword: kw, Intent: intent.Classify(kw)})
}

// Analyze handles POST /api/analyze.
//
//	@Summary		Analyse a keyword into longtails and a site plan
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AnalyzeRequest	true	"Keyword to analyse"
//	@Success		201		{object}	AnalyzeResponse
//	@Failure		400		{object}	errResponse
//	@Failure		503		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/analyze [post]
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	count, ok := h.longtailCount(req.Longtail)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("longtail must not be negative"))
		return
	}

	report, err := h.svc.Analyze(r.Context(), req.Keyword, count)
	if err != nil {
		writeServiceError(w, "analyze", err)
		return
	}

	resp := AnalyzeResponse{Report: report}
	if req.Save {
		files, err := h.svc.SaveReport(report)
		if err != nil {
			writeServiceError(w, "save report", err)
			return
		}
		resp.Files = files
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Outline handles POST /api/outline.
//
//	@Summary		Generate a content outline from a site plan
//	@Description	Accepts the flat plan record or a full analysis report.
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	OutlineResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/outline [post]
func (h *Handler) Outline(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "{") {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	src, err := planfile.Parse("request.json", body)
	if err != nil {
		writeServiceError(w, "outline", err)
		return
	}
	res, err := h.svc.Outline(r.Context(), src)
	if err != nil {
		writeServiceError(w, "outline", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Batch handles POST /api/batch.
//
//	@Summary		Analyse several keywords
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		BatchRequest	true	"Keywords to analyse"
//	@Success		200		{object}	BatchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/batch [post]
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if len(req.Keywords) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("keywords are required"))
		return
	}
	if len(req.Keywords) > maxBatchKeywords {
		writeJSON(w, http.StatusBadRequest, errorBody("too many keywords"))
		return
	}
	count, ok := h.longtailCount(req.Longtail)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("longtail must not be negative"))
		return
	}

	results, err := h.svc.AnalyzeBatch(r.Context(), req.Keywords, count)
	if err != nil {
		writeServiceError(w, "batch", err)
		return
	}
	writeJSON(w, http.StatusOK, BatchResponse{Results: results, Succeeded: seo.Succeeded(results)})
}

// Related handles GET /api/related.
//
//	@Summary		Find keywords related to a query through the search backend
//	@Tags			analysis
//	@Produce		json
//	@Param			q	query		string	true	"Keyword"
//	@Success		200	{object}	RelatedResponse
//	@Failure		400	{object}	errResponse
//	@Failure		503	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/related [get]
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	words, err := h.svc.Related(r.Context(), q)
	if err != nil {
		writeServiceError(w, "related", err)
		return
	}
	writeJSON(w, http.StatusOK, RelatedResponse{Keyword: intent.Normalize(q), Related: words})
}

// ListKeywords handles GET /api/keywords.
//
//	@Summary		List stored keywords
//	@Tags			store
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	KeywordListResponse
//	@Security		BearerAuth
//	@Router			/keywords [get]
func (h *Handler) ListKeywords(w http.ResponseWriter, r *http.Request) {
	kws, err := h.svc.Keywords(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, "list keywords", err)
		return
	}
	writeJSON(w, http.StatusOK, KeywordListResponse{Keywords: kws})
}

// ListPlans handles GET /api/plans.
//
//	@Summary		List stored site plans
//	@Tags			store
//	@Produce		json
//	@Param			keyword	query		string	false	"Only plans for this keyword"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	PlanListResponse
//	@Security		BearerAuth
//	@Router			/plans [get]
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.Plans(r.Context(), r.URL.Query().Get("keyword"), queryLimit(r))
	if err != nil {
		writeServiceError(w, "list plans", err)
		return
	}
	writeJSON(w, http.StatusOK, PlanListResponse{Plans: plans})
}

// History handles GET /api/history.
//
//	@Summary		List logged search engine requests
//	@Tags			store
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	HistoryResponse
//	@Security		BearerAuth
//	@Router			/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	searches, err := h.svc.History(r.Context(), queryLimit(r))
	if err != nil {
		writeServiceError(w, "history", err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Searches: searches})
}
