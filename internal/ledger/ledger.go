package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/pkg/pagination"
)

// System defines the public contract for verdict ledger operations.
type System interface {
	Append(ctx context.Context, cmd AppendCommand) (*Record, error)

	// ListByOwner returns every record owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]Record, error)

	// ListAll returns every record annotated with its owner's display name,
	// newest first.
	ListAll(ctx context.Context) ([]Record, error)

	Search(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)

	// Delete removes a record. Deleting a missing id is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
