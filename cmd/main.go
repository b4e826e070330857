package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/myliquor/myliquor-server/cronJobs"
	"github.com/myliquor/myliquor-server/database"
	"github.com/myliquor/myliquor-server/firebase"
	"github.com/myliquor/myliquor-server/server"
	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

func InitiateCronJobs() error {
	logrus.Infof("initiating cron jobs")
	saleExpiry := cron.NewWithLocation(time.Local)
	err := saleExpiry.AddFunc("@hourly", func() {
		cronJobs.DeactivateExpiredSales()
	})
	if err != nil {
		logrus.Errorf("cron job (deactivate expired sales) initiation failed %v", err)
		return err
	}
	saleExpiry.Start()

	logrus.Infof("cron job initiation successful")
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("No .env file found: %v", err)
	}

	if err := database.ConnectAndMigrate(os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_USER_NAME"),
		os.Getenv("DB_PASSWORD"),
		database.SSLModeDisable); err != nil {
		logrus.Panicf("Failed to initialize and migrate database with error: %+v", err)
	}
	logrus.Print("migration successful!!")

	// uploads and push notifications are disabled when firebase is not
	// configured; the rest of the server still works
	if err := firebase.Init(); err != nil {
		logrus.Warnf("Failed to initialize firebase with error: %+v", err)
	}

	if err := InitiateCronJobs(); err != nil {
		logrus.Error("error from cron job ", err)
	}

	// create server instance
	srv := server.SetupRoutes()

	logrus.Print("Server started at ", os.Getenv("SERVER_HOST_PORT"))
	if err := srv.Run(":" + os.Getenv("SERVER_HOST_PORT")); err != nil {
		logrus.Panicf("Failed to run server with error: %+v", err)
	}
}
