package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "finance-flow-backend/lib/file-storage"
	s3client "finance-flow-backend/s3"
)

func InitS3() {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("failed to initialize S3 client")
		return
	}
	err = client.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("failed to ensure S3 bucket")
	}
	filestorage.NewHandler(client.GetClient())
	log.Info("S3 client initialized")
}
