package dbHelpers

import (
	"github.com/myliquor/myliquor-server/database"
	"github.com/myliquor/myliquor-server/models"
)

// GetAdminByEmail gets an admin account for a given email
func GetAdminByEmail(email string) (*models.Admin, error) {
	SQL := `SELECT id,
			name,
			email,
			password,
			created_at
		FROM admins
		WHERE email = $1`

	var admin models.Admin
	err := database.MyLiquorDB.Get(&admin, SQL, email)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// StoreDeviceToken registers a device token for push notifications. Upsert
// keeps re-registration from the same device idempotent.
func StoreDeviceToken(adminID int, token string) error {
	SQL := `INSERT INTO admin_device_tokens(admin_id, token)
			VALUES ($1, $2)
			ON CONFLICT (token) DO UPDATE SET admin_id = $1`
	_, err := database.MyLiquorDB.Exec(SQL, adminID, token)
	return err
}
