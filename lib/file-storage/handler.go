package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"

	"finance-flow-backend/config"
	"finance-flow-backend/db"
	attachmentstore "finance-flow-backend/lib/file-storage/store"
	"finance-flow-backend/models"
	dbmodels "finance-flow-backend/models/db"
)

type Provider interface {
	Upload(ctx context.Context, requestID, uploadedBy, fileName, contentType string, file []byte) (id string, err error)
	Download(ctx context.Context, attachmentID string) (rec *dbmodels.Attachment, data []byte, err error)
	ListByRequest(requestID string) (list []dbmodels.Attachment, err error)
	Delete(ctx context.Context, attachmentID string) error
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = impl{
		s3client: s3client,
		store:    attachmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    attachmentstore.Provider
}

func storageKey(requestID, attachmentID string) string {
	return fmt.Sprintf("requests/%s/%s", requestID, attachmentID)
}

func (i impl) Upload(ctx context.Context, requestID, uploadedBy, fileName, contentType string, file []byte) (string, error) {
	logger := log.WithField("request_id", requestID).WithField("file_name", fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	rec := dbmodels.Attachment{
		RequestID:   requestID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(file)),
		UploadedBy:  uploadedBy,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to store attachment record")
		return "", err
	}
	key := storageKey(requestID, id)
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, key,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.WithError(err).Error("failed to upload attachment")
		delErr := i.store.Delete(id)
		if delErr != nil {
			logger.WithError(delErr).Error("failed to remove orphan attachment record")
		}
		return "", err
	}
	return id, nil
}

func (i impl) Download(ctx context.Context, attachmentID string) (*dbmodels.Attachment, []byte, error) {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, models.NewNotFoundError("attachment")
	}
	key := storageKey(rec.RequestID, rec.ID)
	obj, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, nil, err
	}
	return rec, data, nil
}

func (i impl) ListByRequest(requestID string) ([]dbmodels.Attachment, error) {
	return i.store.ListByRequest(requestID)
}

func (i impl) Delete(ctx context.Context, attachmentID string) error {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFoundError("attachment")
	}
	key := storageKey(rec.RequestID, rec.ID)
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		log.WithField("attachment_id", attachmentID).WithError(err).Error("failed to remove attachment object")
		return err
	}
	return i.store.Delete(attachmentID)
}
