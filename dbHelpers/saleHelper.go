package dbHelpers

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/myliquor/myliquor-server/database"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/realtime"
	"github.com/volatiletech/null"
)

const saleColumns = `id,
			name,
			theme,
			theme_id,
			start_date,
			end_date,
			is_active,
			header_image,
			background_color,
			accent_color,
			created_at,
			updated_at`

// GetAllSales returns every sale, newest first
func GetAllSales() ([]models.Sale, error) {
	SQL := `SELECT ` + saleColumns + `
		FROM sales
		ORDER BY created_at DESC`
	sales := make([]models.Sale, 0)

	err := database.MyLiquorDB.Select(&sales, SQL)
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// GetActiveSale returns the single active sale, or nil when no sale is live
func GetActiveSale() (*models.Sale, error) {
	SQL := `SELECT ` + saleColumns + `
		FROM sales
		WHERE is_active = TRUE`

	var sale models.Sale
	err := database.MyLiquorDB.Get(&sale, SQL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetSaleByID gets the sale details for a given id
func GetSaleByID(saleID string) (*models.Sale, error) {
	SQL := `SELECT ` + saleColumns + `
		FROM sales
		WHERE id = $1`

	var sale models.Sale
	err := database.MyLiquorDB.Get(&sale, SQL, saleID)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSaleWithTheme returns a sale joined with its theme record, if any
func GetSaleWithTheme(saleID string) (*models.SaleWithTheme, error) {
	sale, err := GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}

	out := models.SaleWithTheme{Sale: *sale}
	if sale.ThemeID.Valid {
		theme, err := GetThemeByID(sale.ThemeID.String)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		out.ThemeRecord = theme
	}
	return &out, nil
}

// InsertSale creates a new sale entry in table
func InsertSale(name string, theme models.SaleTheme, themeID null.String, startDate, endDate time.Time, headerImage null.String, backgroundColor, accentColor string) (*models.Sale, error) {
	SQL := `INSERT INTO sales(name, theme, theme_id, start_date, end_date, header_image, background_color, accent_color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`
	var saleID string
	err := database.MyLiquorDB.Get(&saleID, SQL, name, theme, themeID, startDate, endDate, headerImage, backgroundColor, accentColor)
	if err != nil {
		return nil, err
	}

	sale, err := GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventInsert, New: *sale})
	return sale, nil
}

// UpdateSale modifies a given sale in table
func UpdateSale(saleID, name string, theme models.SaleTheme, themeID null.String, startDate, endDate time.Time, headerImage null.String, backgroundColor, accentColor string) (*models.Sale, error) {
	old, err := GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}

	SQL := `UPDATE sales
			SET name             = $1,
				theme            = $2,
				theme_id         = $3,
				start_date       = $4,
				end_date         = $5,
				header_image     = $6,
				background_color = $7,
				accent_color     = $8,
				updated_at       = now()
			WHERE id = $9`
	_, err = database.MyLiquorDB.Exec(SQL, name, theme, themeID, startDate, endDate, headerImage, backgroundColor, accentColor, saleID)
	if err != nil {
		return nil, err
	}

	sale, err := GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventUpdate, New: *sale, Old: *old})
	return sale, nil
}

// ActivateSale flips the given sale active and every other sale inactive in
// one transaction, so no window exists with zero or two active sales.
func ActivateSale(saleID string) (*models.Sale, error) {
	err := database.Tx(func(tx *sqlx.Tx) error {
		SQL := `UPDATE sales
				SET is_active  = FALSE,
					updated_at = now()
				WHERE is_active = TRUE
				AND id != $1`
		if _, err := tx.Exec(SQL, saleID); err != nil {
			return err
		}

		SQL = `UPDATE sales
				SET is_active  = TRUE,
					updated_at = now()
				WHERE id = $1`
		result, err := tx.Exec(SQL, saleID)
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
		return nil
	})
	if err != nil {
		return nil, err
	}

	sale, err := GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventUpdate, New: *sale})
	return sale, nil
}

// DeactivateExpiredSales turns off active sales whose end date has passed
// and returns the affected sales.
func DeactivateExpiredSales() ([]models.Sale, error) {
	SQL := `UPDATE sales
			SET is_active  = FALSE,
				updated_at = now()
			WHERE is_active = TRUE
			AND end_date < now()
			RETURNING ` + saleColumns
	expired := make([]models.Sale, 0)

	err := database.MyLiquorDB.Select(&expired, SQL)
	if err != nil {
		return nil, err
	}
	for i := range expired {
		realtime.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventUpdate, New: expired[i]})
	}
	return expired, nil
}
