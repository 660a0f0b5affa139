package listservice

import "context"

// Operation names reported in head/tail view responses.
const (
	OperationHead = "head"
	OperationTail = "tail"
)

// ListSlice is the result of a head or tail view: a prefix or suffix of a
// record's items in their original order, plus the full item count.
type ListSlice struct {
	ListID     string   `json:"list_id"`
	Operation  string   `json:"operation"`
	Items      []string `json:"items"`
	Count      int      `json:"count"`
	TotalCount int      `json:"total_count"`
}

// Service implements the list operations on top of a Storage. It holds no
// state of its own and is safe for concurrent use.
type Service struct {
	storage Storage
}

// NewService creates a Service backed by the given storage.
func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// GetFullList returns the complete record or nil when absent.
func (s *Service) GetFullList(ctx context.Context, listID string) (*Record, error) {
	return s.storage.Get(ctx, listID)
}

// GetHead returns the first min(n, len(items)) items of the list plus the
// total item count. Returns nil when the list is absent. Exactly one
// persistence read is made.
func (s *Service) GetHead(ctx context.Context, listID string, n int) (*ListSlice, error) {
	record, err := s.storage.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if n > len(record.Items) {
		n = len(record.Items)
	}
	head := record.Items[:n]

	return &ListSlice{
		ListID:     listID,
		Operation:  OperationHead,
		Items:      head,
		Count:      len(head),
		TotalCount: len(record.Items),
	}, nil
}

// GetTail returns the last min(n, len(items)) items of the list in their
// original order (not reversed) plus the total item count. Returns nil when
// the list is absent.
func (s *Service) GetTail(ctx context.Context, listID string, n int) (*ListSlice, error) {
	record, err := s.storage.Get(ctx, listID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if n > len(record.Items) {
		n = len(record.Items)
	}
	tail := record.Items[len(record.Items)-n:]

	return &ListSlice{
		ListID:     listID,
		Operation:  OperationTail,
		Items:      tail,
		Count:      len(tail),
		TotalCount: len(record.Items),
	}, nil
}

// CreateList stores a new list under a generated identifier.
func (s *Service) CreateList(ctx context.Context, items []string) (*Record, error) {
	return s.storage.Create(ctx, items)
}

// UpdateList replaces the items of an existing list. Returns nil when the
// list is absent; it never creates.
func (s *Service) UpdateList(ctx context.Context, listID string, items []string) (*Record, error) {
	return s.storage.Update(ctx, listID, items)
}

// CreateOrUpdateList upserts a list under a caller-supplied identifier.
func (s *Service) CreateOrUpdateList(ctx context.Context, listID string, items []string) (*Record, error) {
	return s.storage.Put(ctx, listID, items)
}

// GetAllLists returns every stored list with no ordering guarantee.
func (s *Service) GetAllLists(ctx context.Context) ([]Record, error) {
	return s.storage.ScanAll(ctx)
}

// DeleteList removes a list and reports whether it existed.
func (s *Service) DeleteList(ctx context.Context, listID string) (bool, error) {
	return s.storage.Delete(ctx, listID)
}
