package dbHelpers

import (
	"database/sql"

	"github.com/myliquor/myliquor-server/database"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/realtime"
	"github.com/volatiletech/null"
)

const themeColumns = `id,
			name,
			background_color,
			accent_color,
			header_image_url,
			created_at,
			updated_at`

// GetAllThemes returns every theme, by name
func GetAllThemes() ([]models.Theme, error) {
	SQL := `SELECT ` + themeColumns + `
		FROM themes
		ORDER BY name ASC`
	themes := make([]models.Theme, 0)

	err := database.MyLiquorDB.Select(&themes, SQL)
	if err != nil {
		return nil, err
	}
	return themes, nil
}

// GetThemeByID gets the theme details for a given id
func GetThemeByID(themeID string) (*models.Theme, error) {
	SQL := `SELECT ` + themeColumns + `
		FROM themes
		WHERE id = $1`

	var theme models.Theme
	err := database.MyLiquorDB.Get(&theme, SQL, themeID)
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// InsertTheme creates a new theme entry in table
func InsertTheme(name, backgroundColor, accentColor string, headerImageURL null.String) (*models.Theme, error) {
	SQL := `INSERT INTO themes(name, background_color, accent_color, header_image_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id`
	var themeID string
	err := database.MyLiquorDB.Get(&themeID, SQL, name, backgroundColor, accentColor, headerImageURL)
	if err != nil {
		return nil, err
	}

	theme, err := GetThemeByID(themeID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableThemes, Type: models.EventInsert, New: *theme})
	return theme, nil
}

// UpdateTheme modifies a given theme in table
func UpdateTheme(themeID, name, backgroundColor, accentColor string, headerImageURL null.String) (*models.Theme, error) {
	old, err := GetThemeByID(themeID)
	if err != nil {
		return nil, err
	}

	SQL := `UPDATE themes
			SET name             = $1,
				background_color = $2,
				accent_color     = $3,
				header_image_url = $4,
				updated_at       = now()
			WHERE id = $5`
	_, err = database.MyLiquorDB.Exec(SQL, name, backgroundColor, accentColor, headerImageURL, themeID)
	if err != nil {
		return nil, err
	}

	theme, err := GetThemeByID(themeID)
	if err != nil {
		return nil, err
	}
	realtime.Publish(models.ChangeEvent{Table: models.TableThemes, Type: models.EventUpdate, New: *theme, Old: *old})
	return theme, nil
}

// DeleteTheme removes a given theme
func DeleteTheme(themeID string) error {
	old, err := GetThemeByID(themeID)
	if err != nil {
		return err
	}

	SQL := `DELETE FROM themes
			WHERE id = $1`
	result, err := database.MyLiquorDB.Exec(SQL, themeID)
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
	realtime.Publish(models.ChangeEvent{Table: models.TableThemes, Type: models.EventDelete, Old: *old})
	return nil
}
