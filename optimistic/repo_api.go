package optimistic

import (
	"context"

	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/models"
)

// RepositoryAPI adapts the dbHelpers repository to the ProductAPI surface,
// so a store can be backed directly by the database.
type RepositoryAPI struct{}

func NewRepositoryAPI() RepositoryAPI {
	return RepositoryAPI{}
}

func (RepositoryAPI) ListProducts(_ context.Context, saleID string) ([]models.SaleProduct, error) {
	return dbHelpers.GetSaleProducts(saleID)
}

func (RepositoryAPI) AddProduct(_ context.Context, product models.SaleProduct) (*models.SaleProduct, error) {
	return dbHelpers.InsertSaleProduct(product.SaleID, product.ProductName, product.ProductImage,
		product.OriginalPrice, product.SalePrice, product.Size, product.Category, product.BadgeText)
}

func (RepositoryAPI) UpdateProduct(_ context.Context, productID string, patch ProductPatch) (*models.SaleProduct, error) {
	current, err := dbHelpers.GetSaleProductByID(productID)
	if err != nil {
		return nil, err
	}
	updated := *current
	patch.Apply(&updated)
	return dbHelpers.UpdateSaleProduct(productID, updated.ProductName, updated.ProductImage,
		updated.OriginalPrice, updated.SalePrice, updated.Size, updated.Category, updated.BadgeText)
}

func (RepositoryAPI) DeleteProduct(_ context.Context, productID string) error {
	return dbHelpers.DeleteSaleProduct(productID)
}

func (RepositoryAPI) ReorderProducts(_ context.Context, saleID string, productIDs []string) error {
	return dbHelpers.ReorderSaleProducts(saleID, productIDs)
}
