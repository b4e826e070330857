package cronJobs

import (
	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/sirupsen/logrus"
)

// DeactivateExpiredSales turns off active sales whose end date has passed,
// so the public site never keeps serving stale prices.
func DeactivateExpiredSales() {
	sales, err := dbHelpers.DeactivateExpiredSales()
	if err != nil {
		logrus.Errorf("DeactivateExpiredSales: error: %v", err)
		return
	}
	for _, sale := range sales {
		logrus.Infof("deactivated expired sale %s (%s)", sale.Name, sale.ID)
	}
}
