package verdicts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/pagination"
	"github.com/JaimeStill/reviewguard/pkg/telemetry"
)

type service struct {
	text             Source
	url              Source
	ledger           ledger.System
	metrics          *Metrics
	reporter         telemetry.Reporter
	logger           *slog.Logger
	pagination       pagination.Config
	maxBatch         int
	batchConcurrency int
}

// New creates the verdict system. text scores review text and url scores
// product URLs. metrics may be nil; a nil reporter discards captures.
func New(
	text, url Source,
	ledger ledger.System,
	cfg *Config,
	metrics *Metrics,
	reporter telemetry.Reporter,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	if reporter == nil {
		reporter = telemetry.Nop()
	}

	return &service{
		text:             text,
		url:              url,
		ledger:           ledger,
		metrics:          metrics,
		reporter:         reporter,
		logger:           logger.With("system", "verdicts"),
		pagination:       pagination,
		maxBatch:         cfg.MaxBatch,
		batchConcurrency: cfg.BatchConcurrency,
	}
}

func (s *service) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, s.pagination, s.maxBatch, maxBodySize)
}

func (s *service) Submit(ctx context.Context, owner *identity.Identity, sub Submission) (*Verdict, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	src := s.text
	if sub.IsURLAnalysis {
		src = s.url
	}

	start := time.Now()
	out, err := src.Score(ctx, sub)
	s.metrics.observeScore(src.Name(), out.Result.Prediction, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	v := &Verdict{
		Prediction: out.Result.Prediction,
		Confidence: out.Result.Confidence,
		Reasons: Augment(AugmentInput{
			Reasons:          out.Result.Reasons,
			Prediction:       out.Result.Prediction,
			Text:             sub.Text,
			Rating:           sub.Rating,
			VerifiedPurchase: sub.VerifiedPurchase,
			IsURLAnalysis:    sub.IsURLAnalysis,
		}),
		Scan: out.Scan,
	}

	if owner == nil {
		return v, nil
	}

	rec, err := s.ledger.Append(ctx, sub.appendCommand(owner, v))
	if err != nil {
		s.logger.Error("verdict returned but not recorded", "owner", owner.OwnerID, "error", err)
		s.metrics.observeAppendFailure()
		s.reporter.Capture(err, map[string]string{
			"operation": "ledger.append",
			"source":    src.Name(),
		})
		return v, nil
	}

	v.ID = &rec.ID
	return v, nil
}

func (s *service) SubmitBatch(ctx context.Context, owner *identity.Identity, subs []Submission) ([]BatchResult, error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", ErrMalformedSubmission)
	}
	if len(subs) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d submissions, limit %d", ErrBatchTooLarge, len(subs), s.maxBatch)
	}

	results := make([]BatchResult, len(subs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, sub := range subs {
		g.Go(func() error {
			res := BatchResult{Index: i, Status: http.StatusOK}

			v, err := s.Submit(gctx, owner, sub)
			if err != nil {
				res.Status = MapHTTPStatus(err)
				res.Error = err.Error()
			} else {
				res.Verdict = v
			}

			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *service) History(ctx context.Context, owner identity.Identity) ([]ledger.Record, error) {
	return s.ledger.ListByOwner(ctx, owner.OwnerID)
}

func (s *service) AdminHistory(ctx context.Context) ([]ledger.Record, error) {
	return s.ledger.ListAll(ctx)
}

func (s *service) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters ledger.Filters,
) (*pagination.PageResult[ledger.Record], error) {
	return s.ledger.Search(ctx, page, filters)
}

func (s *service) Find(ctx context.Context, caller identity.Identity, id uuid.UUID) (*ledger.Record, error) {
	rec, err := s.ledger.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(rec.OwnerID) {
		return nil, identity.ErrForbidden
	}
	return rec, nil
}

func (s *service) Delete(ctx context.Context, caller identity.Identity, id uuid.UUID) error {
	if _, err := s.Find(ctx, caller, id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("verdict deleted", "id", id, "by", caller.OwnerID)
	return nil
}
