package verdicts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/pagination"
)

// System defines the public contract for verdict operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Submit scores one submission. A nil owner scores anonymously and
	// records nothing.
	Submit(ctx context.Context, owner *identity.Identity, sub Submission) (*Verdict, error)

	// SubmitBatch scores every submission concurrently. Per-item failures
	// are reported in the results; only batch-level problems return an error.
	SubmitBatch(ctx context.Context, owner *identity.Identity, subs []Submission) ([]BatchResult, error)

	History(ctx context.Context, owner identity.Identity) ([]ledger.Record, error)
	AdminHistory(ctx context.Context) ([]ledger.Record, error)

	Search(
		ctx context.Context,
		page pagination.PageRequest,
		filters ledger.Filters,
	) (*pagination.PageResult[ledger.Record], error)

	Find(ctx context.Context, caller identity.Identity, id uuid.UUID) (*ledger.Record, error)
	Delete(ctx context.Context, caller identity.Identity, id uuid.UUID) error
}
