package optimistic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/myliquor/myliquor-server/models"
	"github.com/sirupsen/logrus"
)

type OperationType string

const (
	OpAdd    OperationType = "add"
	OpUpdate OperationType = "update"
	OpDelete OperationType = "delete"
)

// PendingOperation is one ledger entry for an in-flight mutation, keyed by
// record id. The admin UI disables controls on rows with a pending entry.
type PendingOperation struct {
	ID        string
	Type      OperationType
	Timestamp time.Time
}

// ProductAPI is the repository surface the store mutates through.
type ProductAPI interface {
	ListProducts(ctx context.Context, saleID string) ([]models.SaleProduct, error)
	AddProduct(ctx context.Context, product models.SaleProduct) (*models.SaleProduct, error)
	UpdateProduct(ctx context.Context, productID string, patch ProductPatch) (*models.SaleProduct, error)
	DeleteProduct(ctx context.Context, productID string) error
	ReorderProducts(ctx context.Context, saleID string, productIDs []string) error
}

// Notifier receives the toast-style outcome of every mutation.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// LogNotifier reports outcomes through logrus.
type LogNotifier struct{}

func (LogNotifier) Success(title, description string) { logrus.Infof("%s: %s", title, description) }
func (LogNotifier) Error(title, description string)   { logrus.Errorf("%s: %s", title, description) }

// ProductStore keeps an optimistic in-memory view of one sale's products.
// Mutations apply locally first, then hit the API; failures roll the view
// back to its exact pre-operation state.
type ProductStore struct {
	api      ProductAPI
	notifier Notifier
	saleID   string

	mu       sync.Mutex
	products []models.SaleProduct
	pending  map[string]PendingOperation
}

func NewProductStore(saleID string, api ProductAPI, notifier Notifier) *ProductStore {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &ProductStore{
		api:      api,
		notifier: notifier,
		saleID:   saleID,
		pending:  map[string]PendingOperation{},
	}
}

// Sync replaces the view with the authoritative server list.
func (s *ProductStore) Sync(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx, s.saleID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

// Products returns a copy of the current view.
func (s *ProductStore) Products() []models.SaleProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SaleProduct, len(s.products))
	copy(out, s.products)
	return out
}

func (s *ProductStore) IsPending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

func (s *ProductStore) PendingOperationFor(id string) (PendingOperation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.pending[id]
	return op, ok
}

func (s *ProductStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// AddProduct applies a provisional record under a temporary id, then issues
// the real insert. The error is returned so a form can keep itself open.
func (s *ProductStore) AddProduct(ctx context.Context, product models.SaleProduct) error {
	tempID := fmt.Sprintf("temp-%d", time.Now().UnixNano())
	now := time.Now()

	temp := product
	temp.ID = tempID
	temp.SaleID = s.saleID
	temp.CreatedAt = now
	temp.UpdatedAt = now

	s.mu.Lock()
	s.products = append(s.products, temp)
	s.pending[tempID] = PendingOperation{ID: tempID, Type: OpAdd, Timestamp: now}
	s.mu.Unlock()
	defer s.clearPending(tempID)

	product.SaleID = s.saleID
	if _, err := s.api.AddProduct(ctx, product); err != nil {
		s.removeProduct(tempID)
		s.notifier.Error("Error", "Failed to add product: "+RefineMessage(err))
		return err
	}

	s.refresh(ctx)
	s.notifier.Success("Success", "Product added successfully")
	return nil
}

// UpdateProduct merges the patch into the local record before the call and
// restores the prior record on failure.
func (s *ProductStore) UpdateProduct(ctx context.Context, productID string, patch ProductPatch) {
	s.mu.Lock()
	idx := s.indexOf(productID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	prior := s.products[idx]
	updated := prior
	patch.Apply(&updated)
	s.products[idx] = updated
	s.pending[productID] = PendingOperation{ID: productID, Type: OpUpdate, Timestamp: time.Now()}
	s.mu.Unlock()
	defer s.clearPending(productID)

	if _, err := s.api.UpdateProduct(ctx, productID, patch); err != nil {
		s.replaceProduct(productID, prior)
		s.notifier.Error("Error", "Failed to update product: "+RefineMessage(err))
		return
	}

	s.refresh(ctx)
	s.notifier.Success("Success", "Product updated successfully")
}

// DeleteProduct removes the record locally and re-inserts it on failure.
func (s *ProductStore) DeleteProduct(ctx context.Context, productID string) {
	s.mu.Lock()
	idx := s.indexOf(productID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.products[idx]
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.pending[productID] = PendingOperation{ID: productID, Type: OpDelete, Timestamp: time.Now()}
	s.mu.Unlock()
	defer s.clearPending(productID)

	if err := s.api.DeleteProduct(ctx, productID); err != nil {
		s.mu.Lock()
		s.products = append(s.products, removed)
		s.mu.Unlock()
		s.notifier.Error("Error", "Failed to delete product: "+RefineMessage(err))
		return
	}

	s.refresh(ctx)
	s.notifier.Success("Success", "Product deleted successfully")
}

// Reorder reindexes the view to match the given id order (position = index),
// then issues the bulk reorder. Any failure restores the entire prior order.
func (s *ProductStore) Reorder(ctx context.Context, productIDs []string) {
	s.mu.Lock()
	snapshot := make([]models.SaleProduct, len(s.products))
	copy(snapshot, s.products)

	reordered := make([]models.SaleProduct, 0, len(productIDs))
	for index, id := range productIDs {
		if idx := s.indexOf(id); idx >= 0 {
			product := s.products[idx]
			product.Position = index
			reordered = append(reordered, product)
		}
	}
	s.products = reordered
	s.mu.Unlock()

	if err := s.api.ReorderProducts(ctx, s.saleID, productIDs); err != nil {
		s.mu.Lock()
		s.products = snapshot
		s.mu.Unlock()
		s.notifier.Error("Error", "Failed to reorder products: "+RefineMessage(err))
		return
	}

	s.refresh(ctx)
	s.notifier.Success("Success", "Products reordered successfully")
}

// refresh reconciles the view with the server after a successful mutation,
// picking up server-assigned ids and timestamps.
func (s *ProductStore) refresh(ctx context.Context) {
	if err := s.Sync(ctx); err != nil {
		logrus.Errorf("optimistic: failed to refresh products after mutation: %v", err)
	}
}

// indexOf must be called with the lock held.
func (s *ProductStore) indexOf(productID string) int {
	for i := range s.products {
		if s.products[i].ID == productID {
			return i
		}
	}
	return -1
}

func (s *ProductStore) removeProduct(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(productID); idx >= 0 {
		s.products = append(s.products[:idx], s.products[idx+1:]...)
	}
}

func (s *ProductStore) replaceProduct(productID string, product models.SaleProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(productID); idx >= 0 {
		s.products[idx] = product
	}
}

func (s *ProductStore) clearPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}
