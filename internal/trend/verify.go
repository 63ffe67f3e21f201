package trend

import (
	"context"
	"log/slog"

	"github.com/starford/seoscout/internal/metrics"
)

// DefaultBatchSize is how many keywords are sent to the backend per request.
const DefaultBatchSize = 5

// Source is the trends collaborator. Keywords missing from the returned map
// have no data.
type Source interface {
	Interest(ctx context.Context, keywords []string) (map[string]Stats, error)
}

// Verifier checks keyword lists against a Source in batches.
type Verifier struct {
	source    Source
	batchSize int
	logger    *slog.Logger
}

// NewVerifier creates a Verifier. A batchSize below one uses DefaultBatchSize.
func NewVerifier(source Source, batchSize int, logger *slog.Logger) *Verifier {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{source: source, batchSize: batchSize, logger: logger}
}

// Lookup returns one record per keyword in input order, including keywords
// without data (zero values). A failed batch is logged and its keywords are
// dropped; only context cancellation aborts the run.
func (v *Verifier) Lookup(ctx context.Context, keywords []string) ([]Record, error) {
	out := make([]Record, 0, len(keywords))
	batches := (len(keywords) + v.batchSize - 1) / v.batchSize

	for i := 0; i < len(keywords); i += v.batchSize {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		batch := keywords[i:min(i+v.batchSize, len(keywords))]
		v.logger.Debug("trend: processing batch",
			slog.Int("batch", i/v.batchSize+1),
			slog.Int("batches", batches))

		data, err := v.source.Interest(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			v.logger.Error("trend: batch failed", slog.String("error", err.Error()))
			metrics.RecordTrendLookup(metrics.OutcomeError)
			continue
		}

		for _, kw := range batch {
			st := data[kw]
			rec := Record{
				Keyword:      kw,
				SearchVolume: st.AvgVolume,
				MaxVolume:    st.MaxVolume,
				TrendScore:   st.TrendScore,
				IsRising:     st.IsRising,
			}
			if !rec.HasData() {
				v.logger.Debug("trend: no data", slog.String("keyword", kw))
				metrics.RecordTrendLookup(metrics.OutcomeEmpty)
				out = append(out, Record{Keyword: kw})
				continue
			}
			metrics.RecordTrendLookup(metrics.OutcomeFound)
			out = append(out, rec)
		}
	}
	return out, nil
}

// Verify looks up keywords and keeps those with a positive search volume,
// ordered by trend score, highest first.
func (v *Verifier) Verify(ctx context.Context, keywords []string) ([]Record, error) {
	if len(keywords) == 0 {
		v.logger.Warn("trend: no keywords to verify")
		return []Record{}, nil
	}
	v.logger.Info("trend: verifying keywords", slog.Int("count", len(keywords)))

	all, err := v.Lookup(ctx, keywords)
	if err != nil {
		return nil, err
	}

	valid := make([]Record, 0, len(all))
	for _, r := range all {
		if r.SearchVolume > 0 {
			valid = append(valid, r)
		}
	}
	valid = Top(valid, -1)

	v.logger.Info("trend: verification complete",
		slog.Int("valid", len(valid)),
		slog.Int("total", len(keywords)))
	return valid, nil
}
