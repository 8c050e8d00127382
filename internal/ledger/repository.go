package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/pkg/pagination"
	"github.com/JaimeStill/reviewguard/pkg/query"
	"github.com/JaimeStill/reviewguard/pkg/repository"
)

const upsertOwner = `
	INSERT INTO owners(id, display_name)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET
		display_name = CASE
			WHEN EXCLUDED.display_name = '' THEN owners.display_name
			ELSE EXCLUDED.display_name
		END,
		updated_at = NOW()`

const insertVerdict = `
	INSERT INTO verdicts(
		id, owner_id, source_text, product_name, product_url, reviewer_name,
		rating, review_date, verified_purchase, is_url_analysis,
		prediction, confidence, detection_reasons
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a PostgreSQL-backed ledger implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "ledger"),
		pagination: pagination,
	}
}

func (r *repo) Append(ctx context.Context, cmd AppendCommand) (*Record, error) {
	if cmd.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	cmd.normalize()

	reasonsJSON, err := json.Marshal(cmd.DetectionReasons)
	if err != nil {
		return nil, persistence("marshal detection reasons", err)
	}

	id := uuid.New()
	insertArgs := []any{
		id,
		cmd.OwnerID,
		cmd.SourceText,
		cmd.ProductName,
		cmd.ProductURL,
		cmd.ReviewerName,
		cmd.Rating,
		cmd.ReviewDate,
		cmd.VerifiedPurchase,
		cmd.IsURLAnalysis,
		string(cmd.Prediction),
		cmd.Confidence,
		reasonsJSON,
	}

	createdAt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (time.Time, error) {
		if _, err := tx.ExecContext(ctx, upsertOwner, cmd.OwnerID, cmd.OwnerName); err != nil {
			return time.Time{}, fmt.Errorf("upsert owner: %w", err)
		}

		return repository.QueryOne(ctx, tx, insertVerdict, insertArgs, func(s repository.Scanner) (time.Time, error) {
			var t time.Time
			err := s.Scan(&t)
			return t, err
		})
	})

	if err != nil {
		return nil, persistence("append verdict", err)
	}

	rec := cmd.record(id, createdAt)
	r.logger.Info("verdict recorded", "id", id, "owner", cmd.OwnerID, "prediction", cmd.Prediction)
	return &rec, nil
}

func (r *repo) ListByOwner(ctx context.Context, ownerID string) ([]Record, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("OwnerID", ownerID).
		Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, persistence("list owner verdicts", err)
	}
	return records, nil
}

func (r *repo) ListAll(ctx context.Context) ([]Record, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	records, err := repository.QueryMany(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, persistence("list verdicts", err)
	}
	return records, nil
}

func (r *repo) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, persistence("count verdicts", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, persistence("query verdicts", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rec, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, persistence("find verdict", err)
	}
	return &rec, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := repository.ExecAffected(ctx, r.db, "DELETE FROM verdicts WHERE id = $1", id)
	if err != nil {
		return persistence("delete verdict", err)
	}

	if n == 0 {
		r.logger.Debug("delete of missing verdict", "id", id)
		return nil
	}

	r.logger.Info("verdict deleted", "id", id)
	return nil
}
