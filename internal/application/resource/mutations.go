package resource

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Haleralex/storefront/internal/application/dtos"
	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
	"github.com/Haleralex/storefront/internal/pkg/metrics"
)

// Сообщения для известных конфликтов категорий.
const (
	MsgDuplicateCategory = "Bu isimde bir kategori zaten mevcut"
	MsgCategoryInUse     = "Bu kategoriye ait ürünler var, önce ürünleri taşıyın veya silin"
)

// CategoryWriter is the write side of the category service.
type CategoryWriter interface {
	Create(ctx context.Context, req dtos.CreateCategoryRequest) (*dtos.Category, error)
	Update(ctx context.Context, id string, req dtos.UpdateCategoryRequest) (*dtos.Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryMutations выполняет create/update/delete категорий.
//
// Each operation has its own busy flag. Mutations are not serialized against
// each other or against list fetches; refetch the list afterwards.
type CategoryMutations struct {
	svc    CategoryWriter
	logger *slog.Logger

	mu       sync.Mutex
	creating int
	updating int
	deleting int
}

// NewCategoryMutations creates the mutation helper.
func NewCategoryMutations(svc CategoryWriter, logger *slog.Logger) *CategoryMutations {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryMutations{svc: svc, logger: logger.With("resource", LabelCategories)}
}

// Creating reports whether a create is in flight.
func (m *CategoryMutations) Creating() bool { return m.busy(&m.creating) }

// Updating reports whether an update is in flight.
func (m *CategoryMutations) Updating() bool { return m.busy(&m.updating) }

// Deleting reports whether a delete is in flight.
func (m *CategoryMutations) Deleting() bool { return m.busy(&m.deleting) }

// Create creates a category named name.
func (m *CategoryMutations) Create(ctx context.Context, name string) (*dtos.Category, error) {
	defer m.track(&m.creating)()

	cat, err := m.svc.Create(ctx, dtos.CreateCategoryRequest{Name: name})
	metrics.RecordCategoryMutation("create", err)
	if err != nil {
		return nil, m.translate("create", err)
	}
	return cat, nil
}

// Update renames category id.
func (m *CategoryMutations) Update(ctx context.Context, id, name string) (*dtos.Category, error) {
	defer m.track(&m.updating)()

	cat, err := m.svc.Update(ctx, id, dtos.UpdateCategoryRequest{Name: name})
	metrics.RecordCategoryMutation("update", err)
	if err != nil {
		return nil, m.translate("update", err)
	}
	return cat, nil
}

// Delete removes category id.
func (m *CategoryMutations) Delete(ctx context.Context, id string) error {
	defer m.track(&m.deleting)()

	err := m.svc.Delete(ctx, id)
	metrics.RecordCategoryMutation("delete", err)
	if err != nil {
		return m.translate("delete", err)
	}
	return nil
}

// track raises a busy counter and returns the func that lowers it.
func (m *CategoryMutations) track(counter *int) func() {
	m.mu.Lock()
	*counter++
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		*counter--
		m.mu.Unlock()
	}
}

func (m *CategoryMutations) busy(counter *int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *counter > 0
}

// translate maps known server conflicts to localized messages. Pre-flight
// validation errors come back unchanged; anything else keeps its text.
func (m *CategoryMutations) translate(op string, err error) error {
	m.logger.Warn("category mutation failed", "operation", op, "error", err)

	if domainerrors.IsValidationError(err) {
		return err
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "already exists"):
		return domainerrors.NewDomainError(domainerrors.CodeDuplicateName, MsgDuplicateCategory, err)
	case strings.Contains(lower, "has products"):
		return domainerrors.NewDomainError(domainerrors.CodeHasProducts, MsgCategoryInUse, err)
	default:
		return domainerrors.NewDomainError(domainerrors.CodeMutationFailed, msg, err)
	}
}
