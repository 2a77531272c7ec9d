package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"time"

	"seven_gym_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFile stocke un fichier uploadé (photo de coach) dans MinIO
func UploadFile(bucket string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = database.MinIO.PutObject(context.Background(), bucket, file.Filename, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, file.Filename), nil
}

// ArchiveReceiptPDF archive le PDF d'un reçu (paiement ou remboursement).
// Les reçus restent consultables même si le front change de gabarit.
func ArchiveReceiptPDF(reference string, pdf []byte) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := "receipts/" + reference + ".pdf"

	_, err := database.MinIO.PutObject(context.Background(), bucket, objectName,
		bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// GenerateSignedURL génère une URL signée temporaire vers un objet du bucket
func GenerateSignedURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	reqParams := make(url.Values)
	presignedURL, err := database.MinIO.PresignedGetObject(ctx, os.Getenv("MINIO_BUCKET"), objectName, duration, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
