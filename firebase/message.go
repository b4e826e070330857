package firebase

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/myliquor/myliquor-server/database"
	"github.com/myliquor/myliquor-server/models"
	"github.com/sirupsen/logrus"
)

type MessageType string

const (
	MessageTypeSaleActivated = "SaleActivatedNotification"
)

// SendSaleActivatedNotification tells registered admin devices that a new
// sale went live.
func SendSaleActivatedNotification(sale models.Sale) error {
	if FirebaseClient == nil {
		logrus.Info("firebase messaging is not configured, skipping sale notification")
		return nil
	}

	SQL := `SELECT token
				FROM admin_device_tokens`
	var registrationTokens []string
	err := database.MyLiquorDB.Select(&registrationTokens, SQL)
	if err != nil {
		return err
	}
	if len(registrationTokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Data: map[string]string{
			"type":      MessageTypeSaleActivated,
			"saleId":    sale.ID,
			"saleName":  sale.Name,
			"startDate": sale.StartDate.Format("2006-01-02"),
			"endDate":   sale.EndDate.Format("2006-01-02"),
			"sentAt":    time.Now().Format(time.RFC3339Nano),
		},
		Tokens: registrationTokens,
	}

	resp, err := FirebaseClient.SendMulticast(context.Background(), message)
	if err != nil {
		logrus.Errorf("SendSaleActivatedNotification: Error while sending push notifications %v", err)
		return err
	}
	logrus.Infof("sale activation notification sent: %s", fmt.Sprintf("%d ok, %d failed", resp.SuccessCount, resp.FailureCount))
	return nil
}
