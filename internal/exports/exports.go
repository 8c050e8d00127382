// Package exports snapshots the verdict ledger to blob storage as JSON
// documents that admins can list, download, and remove.
package exports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/internal/identity"
	"github.com/JaimeStill/reviewguard/internal/ledger"
	"github.com/JaimeStill/reviewguard/pkg/formatting"
	"github.com/JaimeStill/reviewguard/pkg/storage"
)

// Prefix is the blob key prefix under which snapshots are written.
const Prefix = "exports/"

const contentType = "application/json"

// ErrInvalidName indicates an export name that is empty or nested.
var ErrInvalidName = errors.New("invalid export name")

// Export describes a written snapshot.
type Export struct {
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	Records   int       `json:"records"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot is the document stored for each export.
type Snapshot struct {
	CreatedBy string          `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
	Records   []ledger.Record `json:"records"`
}

// System defines the public contract for ledger exports.
type System interface {
	Handler(maxListSize int32) *Handler

	// Create writes every ledger record to a new snapshot blob.
	Create(ctx context.Context, caller identity.Identity) (*Export, error)

	// List returns one page of snapshot blobs.
	List(ctx context.Context, marker string, maxResults int32) (*storage.BlobList, error)

	// Open streams the snapshot with the given name. The caller closes Body.
	Open(ctx context.Context, name string) (*storage.BlobContent, error)

	Delete(ctx context.Context, name string) error
}

// Option configures the exports system.
type Option func(*service)

// WithClock sets the time source used for snapshot names.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	ledger ledger.System
	store  storage.System
	now    func() time.Time
	logger *slog.Logger
}

// New creates the exports system.
func New(l ledger.System, store storage.System, logger *slog.Logger, opts ...Option) System {
	s := &service{
		ledger: l,
		store:  store,
		now:    time.Now,
		logger: logger.With("system", "exports"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Handler(maxListSize int32) *Handler {
	return NewHandler(s, s.logger, maxListSize)
}

func (s *service) Create(ctx context.Context, caller identity.Identity) (*Export, error) {
	records, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	snap := Snapshot{
		CreatedBy: caller.OwnerID,
		CreatedAt: createdAt,
		Records:   records,
	}
	if snap.Records == nil {
		snap.Records = []ledger.Record{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", createdAt.Format("20060102T150405Z"), uuid.New())
	key := Prefix + name

	if err := s.store.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, err
	}

	s.logger.Info("ledger exported",
		"key", key,
		"records", len(records),
		"size", formatting.FormatBytes(int64(len(data)), 1),
		"by", caller.OwnerID,
	)

	return &Export{
		Name:      name,
		Key:       key,
		Records:   len(records),
		CreatedBy: caller.OwnerID,
		CreatedAt: createdAt,
	}, nil
}

func (s *service) List(ctx context.Context, marker string, maxResults int32) (*storage.BlobList, error) {
	return s.store.List(ctx, Prefix, marker, maxResults)
}

func (s *service) Open(ctx context.Context, name string) (*storage.BlobContent, error) {
	key, err := keyFor(name)
	if err != nil {
		return nil, err
	}
	return s.store.Download(ctx, key)
}

func (s *service) Delete(ctx context.Context, name string) error {
	key, err := keyFor(name)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return err
	}

	s.logger.Info("export deleted", "key", key)
	return nil
}

func keyFor(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return Prefix + name, nil
}
