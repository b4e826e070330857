package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/myliquor/myliquor-server/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"
)

// fakeAPI serves a mutable product list and fails any operation whose name
// is in failOn. onCall lets a test observe store state mid-operation.
type fakeAPI struct {
	products []models.SaleProduct
	failOn   map[string]error
	onCall   func(op string)
}

func newFakeAPI(products ...models.SaleProduct) *fakeAPI {
	return &fakeAPI{products: products, failOn: map[string]error{}}
}

func (f *fakeAPI) hook(op string) error {
	if f.onCall != nil {
		f.onCall(op)
	}
	return f.failOn[op]
}

func (f *fakeAPI) ListProducts(ctx context.Context, saleID string) ([]models.SaleProduct, error) {
	if err := f.hook("list"); err != nil {
		return nil, err
	}
	out := make([]models.SaleProduct, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeAPI) AddProduct(ctx context.Context, product models.SaleProduct) (*models.SaleProduct, error) {
	if err := f.hook("add"); err != nil {
		return nil, err
	}
	product.ID = "server-id"
	product.Position = len(f.products)
	f.products = append(f.products, product)
	return &product, nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, productID string, patch ProductPatch) (*models.SaleProduct, error) {
	if err := f.hook("update"); err != nil {
		return nil, err
	}
	for i := range f.products {
		if f.products[i].ID == productID {
			patch.Apply(&f.products[i])
			return &f.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, productID string) error {
	if err := f.hook("delete"); err != nil {
		return err
	}
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAPI) ReorderProducts(ctx context.Context, saleID string, productIDs []string) error {
	if err := f.hook("reorder"); err != nil {
		return err
	}
	reordered := make([]models.SaleProduct, 0, len(productIDs))
	for index, id := range productIDs {
		for _, p := range f.products {
			if p.ID == id {
				p.Position = index
				reordered = append(reordered, p)
			}
		}
	}
	f.products = reordered
	return nil
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(title, description string) {
	n.successes = append(n.successes, description)
}

func (n *fakeNotifier) Error(title, description string) {
	n.errors = append(n.errors, description)
}

func spirits(id, name string) models.SaleProduct {
	return models.SaleProduct{
		ID:            id,
		SaleID:        "sale-1",
		ProductName:   name,
		OriginalPrice: decimal.NewFromFloat(39.99),
		SalePrice:     decimal.NewFromFloat(32.99),
		Category:      models.CategorySpirits,
	}
}

func productIDs(products []models.SaleProduct) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestAddProductSuccess(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"))
	notifier := &fakeNotifier{}
	store := NewProductStore("sale-1", api, notifier)
	require.NoError(t, store.Sync(context.Background()))

	err := store.AddProduct(context.Background(), spirits("", "Vodka"))

	require.NoError(t, err)
	products := store.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "server-id", products[1].ID)
	assert.Equal(t, 0, store.PendingCount())
	assert.Equal(t, []string{"Product added successfully"}, notifier.successes)
}

func TestAddProductFailureRollsBackAndReturnsError(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"))
	api.failOn["add"] = errors.New("insert failed")
	notifier := &fakeNotifier{}
	store := NewProductStore("sale-1", api, notifier)
	require.NoError(t, store.Sync(context.Background()))

	before := store.Products()
	err := store.AddProduct(context.Background(), spirits("", "Vodka"))

	require.Error(t, err)
	assert.Equal(t, before, store.Products())
	assert.Equal(t, 0, store.PendingCount())
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "Failed to add product: insert failed", notifier.errors[0])
}

func TestAddProductMarksPendingDuringCall(t *testing.T) {
	api := newFakeAPI()
	store := NewProductStore("sale-1", api, &fakeNotifier{})

	var pendingDuringAdd int
	api.onCall = func(op string) {
		if op == "add" {
			pendingDuringAdd = store.PendingCount()
		}
	}

	require.NoError(t, store.AddProduct(context.Background(), spirits("", "Vodka")))
	assert.Equal(t, 1, pendingDuringAdd)
	assert.Equal(t, 0, store.PendingCount())
}

func TestUpdateProductFailureRestoresPriorRecord(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"))
	api.failOn["update"] = errors.New("update failed")
	notifier := &fakeNotifier{}
	store := NewProductStore("sale-1", api, notifier)
	require.NoError(t, store.Sync(context.Background()))

	store.UpdateProduct(context.Background(), "a", ProductPatch{ProductName: null.StringFrom("Bourbon")})

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Whiskey", products[0].ProductName)
	assert.False(t, store.IsPending("a"))
	require.Len(t, notifier.errors, 1)
}

func TestUpdateProductSuccessAppliesPatch(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"))
	notifier := &fakeNotifier{}
	store := NewProductStore("sale-1", api, notifier)
	require.NoError(t, store.Sync(context.Background()))

	newPrice := decimal.NewFromFloat(29.99)
	store.UpdateProduct(context.Background(), "a", ProductPatch{
		ProductName: null.StringFrom("Bourbon"),
		SalePrice:   &newPrice,
	})

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Bourbon", products[0].ProductName)
	assert.True(t, newPrice.Equal(products[0].SalePrice))
	assert.Equal(t, []string{"Product updated successfully"}, notifier.successes)
}

func TestDeleteProductFailureReinsertsRecord(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"), spirits("b", "Vodka"))
	api.failOn["delete"] = errors.New("delete failed")
	store := NewProductStore("sale-1", api, &fakeNotifier{})
	require.NoError(t, store.Sync(context.Background()))

	var seenDuringDelete int
	api.onCall = func(op string) {
		if op == "delete" {
			seenDuringDelete = len(store.Products())
		}
	}

	store.DeleteProduct(context.Background(), "a")

	// removed optimistically, restored after the failure
	assert.Equal(t, 1, seenDuringDelete)
	assert.Len(t, store.Products(), 2)
	assert.False(t, store.IsPending("a"))
}

func TestDeleteProductSuccess(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"), spirits("b", "Vodka"))
	store := NewProductStore("sale-1", api, &fakeNotifier{})
	require.NoError(t, store.Sync(context.Background()))

	store.DeleteProduct(context.Background(), "a")

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "b", products[0].ID)
}

func TestReorderRoundTrip(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"), spirits("b", "Vodka"), spirits("c", "Gin"))
	store := NewProductStore("sale-1", api, &fakeNotifier{})
	require.NoError(t, store.Sync(context.Background()))

	store.Reorder(context.Background(), []string{"c", "a", "b"})

	products := store.Products()
	require.Equal(t, []string{"c", "a", "b"}, productIDs(products))
	for i, p := range products {
		assert.Equal(t, i, p.Position)
	}
}

func TestReorderFailureRestoresFullOrder(t *testing.T) {
	api := newFakeAPI(spirits("a", "Whiskey"), spirits("b", "Vodka"), spirits("c", "Gin"))
	api.failOn["reorder"] = errors.New("reorder failed")
	store := NewProductStore("sale-1", api, &fakeNotifier{})
	require.NoError(t, store.Sync(context.Background()))

	before := store.Products()
	store.Reorder(context.Background(), []string{"c", "a", "b"})

	assert.Equal(t, before, store.Products())
	assert.Equal(t, 0, store.PendingCount())
}

func TestRefineMessage(t *testing.T) {
	assert.Equal(t, "You do not have permission to make this change",
		RefineMessage(errors.New(`new row violates row-level security policy for table "sale_products"`)))
	assert.Equal(t, "The change conflicts with a data rule. Check the values and try again",
		RefineMessage(errors.New(`insert violates check constraint "positive_price"`)))
	assert.Equal(t, "connection refused", RefineMessage(errors.New("connection refused")))
	assert.Equal(t, "", RefineMessage(nil))
}
