package dbHelpers

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/myliquor/myliquor-server/database"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/realtime"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

const productColumns = `id,
			sale_id,
			product_name,
			product_image,
			original_price,
			sale_price,
			size,
			category,
			badge_text,
			position,
			created_at,
			updated_at`

// GetSaleProducts returns all products of a sale in display order
func GetSaleProducts(saleID string) ([]models.SaleProduct, error) {
	SQL := `SELECT ` + productColumns + `
		FROM sale_products
		WHERE sale_id = $1
		ORDER BY position ASC`
	products := make([]models.SaleProduct, 0)

	err := database.MyLiquorDB.Select(&products, SQL, saleID)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetSaleProductByID gets the product details for a given id
func GetSaleProductByID(productID string) (*models.SaleProduct, error) {
	SQL := `SELECT ` + productColumns + `
		FROM sale_products
		WHERE id = $1`

	var product models.SaleProduct
	err := database.MyLiquorDB.Get(&product, SQL, productID)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// InsertSaleProduct creates a new product entry at the end of the sale's
// display order.
func InsertSaleProduct(saleID, productName string, productImage null.String, originalPrice, salePrice decimal.Decimal, size null.String, category models.ProductCategory, badgeText null.String) (*models.SaleProduct, error) {
	SQL := `INSERT INTO sale_products(sale_id, product_name, product_image, original_price, sale_price, size, category, badge_text, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
					(SELECT COALESCE(MAX(position) + 1, 0) FROM sale_products WHERE sale_id = $1))
			RETURNING id`
	var productID string
	err := database.MyLiquorDB.Get(&productID, SQL, saleID, productName, productImage, originalPrice, salePrice, size, category, badgeText)
	if err != nil {
		return nil, err
	}

	product, err := GetSaleProductByID(productID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventInsert, New: *product})
	return product, nil
}

// UpdateSaleProduct modifies a given product in table
func UpdateSaleProduct(productID, productName string, productImage null.String, originalPrice, salePrice decimal.Decimal, size null.String, category models.ProductCategory, badgeText null.String) (*models.SaleProduct, error) {
	old, err := GetSaleProductByID(productID)
	if err != nil {
		return nil, err
	}

	SQL := `UPDATE sale_products
			SET product_name   = $1,
				product_image  = $2,
				original_price = $3,
				sale_price     = $4,
				size           = $5,
				category       = $6,
				badge_text     = $7,
				updated_at     = now()
			WHERE id = $8`
	_, err = database.MyLiquorDB.Exec(SQL, productName, productImage, originalPrice, salePrice, size, category, badgeText, productID)
	if err != nil {
		return nil, err
	}

	product, err := GetSaleProductByID(productID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventUpdate, New: *product, Old: *old})
	return product, nil
}

// DeleteSaleProduct removes a given product
func DeleteSaleProduct(productID string) error {
	old, err := GetSaleProductByID(productID)
	if err != nil {
		return err
	}

	SQL := `DELETE FROM sale_products
			WHERE id = $1`
	result, err := database.MyLiquorDB.Exec(SQL, productID)
	if err != nil {
		return err
	}
	affectedCount, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affectedCount == 0 {
		return sql.ErrNoRows
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventDelete, Old: *old})
	return nil
}

// ReorderSaleProducts rewrites every product's position in one transaction:
// position = index in the given id list. A stale or foreign id aborts the
// whole reorder, so positions stay dense and contiguous.
func ReorderSaleProducts(saleID string, productIDs []string) error {
	err := database.Tx(func(tx *sqlx.Tx) error {
		SQL := `UPDATE sale_products
				SET position   = $1,
					updated_at = now()
				WHERE id = $2
				AND sale_id = $3`
		for position, productID := range productIDs {
			result, err := tx.Exec(SQL, position, productID, saleID)
			if err != nil {
				return err
			}
			affectedCount, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affectedCount == 0 {
				return fmt.Errorf("product %s does not belong to sale %s", productID, saleID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	products, err := GetSaleProducts(saleID)
	if err != nil {
		return err
	}
	for i := range products {
		realtime.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventUpdate, New: products[i]})
	}
	return nil
}
