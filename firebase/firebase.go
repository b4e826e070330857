package firebase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	storage2 "firebase.google.com/go/storage"
	"github.com/myliquor/myliquor-server/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

var FirebaseClient *messaging.Client
var FirebaseStorageClient *storage2.Client
var fireKey string

// uploadTimeout bounds a single blob upload.
const uploadTimeout = 5 * time.Minute

// Init creates the firebase app used for blob storage and push messaging.
// FIREBASE_KEY must hold the service-account JSON.
func Init() error {
	fireKey = os.Getenv("FIREBASE_KEY")
	if fireKey == "" {
		return errors.New("FIREBASE_KEY is not set")
	}

	opt := option.WithCredentialsJSON([]byte(fireKey))
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing app: %w", err)
	}

	ctx := context.Background()
	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return fmt.Errorf("error getting Storage client: %w", err)
	}

	FirebaseClient = client
	FirebaseStorageClient = storageClient
	return nil
}

// Upload stores a blob in the given bucket at the given path.
func Upload(bucketName, path string, file []byte) error {
	if FirebaseStorageClient == nil {
		return errors.New("firebase storage is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	bucket, err := FirebaseStorageClient.Bucket(bucketName)
	if err != nil {
		return err
	}

	object := bucket.Object(path)
	writer := object.NewWriter(ctx)
	if _, err := io.Copy(writer, bytes.NewReader(file)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	log.Infof("uploaded %s to bucket %s", path, bucketName)
	return nil
}

// GetURL returns a retrieval URL for the given bucket and path
func GetURL(imageInfo *models.Image) (string, error) {
	cfg, err := google.JWTConfigFromJSON([]byte(fireKey))
	if err != nil {
		return "", err
	}

	method := "GET"
	expires := time.Now().Add(time.Minute * 60)

	url, err := storage.SignedURL(imageInfo.Bucket, imageInfo.Path, &storage.SignedURLOptions{
		GoogleAccessID: cfg.Email,
		PrivateKey:     cfg.PrivateKey,
		Method:         method,
		Expires:        expires,
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
