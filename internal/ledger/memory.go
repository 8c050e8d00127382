package ledger

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/reviewguard/pkg/pagination"
	"github.com/JaimeStill/reviewguard/pkg/query"
)

type entry struct {
	seq    uint64
	record Record
}

type memory struct {
	mu         sync.RWMutex
	seq        uint64
	entries    map[uuid.UUID]entry
	owners     map[string]string
	now        func() time.Time
	logger     *slog.Logger
	pagination pagination.Config
}

// MemoryOption configures an in-memory ledger.
type MemoryOption func(*memory)

// WithClock overrides the time source used to stamp CreatedAt.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *memory) { m.now = now }
}

// NewMemory creates an in-memory ledger implementing the System interface.
// Reads return copies, so callers never observe a record mid-mutation.
func NewMemory(logger *slog.Logger, pagination pagination.Config, opts ...MemoryOption) System {
	m := &memory{
		entries:    make(map[uuid.UUID]entry),
		owners:     make(map[string]string),
		now:        time.Now,
		logger:     logger.With("system", "ledger", "store", "memory"),
		pagination: pagination,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *memory) Append(_ context.Context, cmd AppendCommand) (*Record, error) {
	if cmd.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	cmd.normalize()

	m.mu.Lock()
	defer m.mu.Unlock()

	if cmd.OwnerName != "" {
		m.owners[cmd.OwnerID] = cmd.OwnerName
	}

	m.seq++
	rec := cmd.record(uuid.New(), m.now())
	rec.OwnerName = m.owners[cmd.OwnerID]
	m.entries[rec.ID] = entry{seq: m.seq, record: rec}

	out := rec.Clone()
	return &out, nil
}

func (m *memory) ListByOwner(_ context.Context, ownerID string) ([]Record, error) {
	return m.snapshot(func(r Record) bool { return r.OwnerID == ownerID }, nil), nil
}

func (m *memory) ListAll(_ context.Context) ([]Record, error) {
	return m.snapshot(nil, nil), nil
}

func (m *memory) Search(
	_ context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(m.pagination)

	match := func(r Record) bool {
		if !filters.Match(r) {
			return false
		}
		if page.Search == nil || *page.Search == "" {
			return true
		}
		return containsFold(r.SourceText, *page.Search) ||
			containsFold(r.ProductName, *page.Search) ||
			containsFold(r.ReviewerName, *page.Search)
	}

	all := m.snapshot(match, page.Sort)
	total := len(all)

	start, end := page.Window(total)

	result := pagination.NewPageResult(all[start:end], total, page.Page, page.PageSize)
	return &result, nil
}

func (m *memory) Find(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}

	rec := m.annotate(e.record)
	return &rec, nil
}

func (m *memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// snapshot copies matching records under the read lock, newest first unless
// sort names mapped fields.
func (m *memory) snapshot(match func(Record) bool, sort []query.SortField) []Record {
	m.mu.RLock()
	entries := make([]entry, 0, len(m.entries))
	for _, e := range m.entries {
		e.record = m.annotate(e.record)
		if match != nil && !match(e.record) {
			continue
		}
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	slices.SortFunc(entries, func(a, b entry) int {
		for _, sf := range sort {
			c := compareField(a.record, b.record, sf.Field)
			if sf.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		if c := b.record.CreatedAt.Compare(a.record.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	records := make([]Record, len(entries))
	for i, e := range entries {
		records[i] = e.record
	}
	return records
}

func (m *memory) annotate(r Record) Record {
	r = r.Clone()
	r.OwnerName = m.owners[r.OwnerID]
	return r
}

func compareField(a, b Record, field string) int {
	switch field {
	case "CreatedAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "Confidence":
		return cmp.Compare(a.Confidence, b.Confidence)
	case "Rating":
		return cmp.Compare(a.Rating, b.Rating)
	case "ProductName":
		return strings.Compare(a.ProductName, b.ProductName)
	case "ReviewerName":
		return strings.Compare(a.ReviewerName, b.ReviewerName)
	case "Prediction":
		return strings.Compare(string(a.Prediction), string(b.Prediction))
	}
	return 0
}
