package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "finance-flow-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.AppUser{}); err != nil {
		return errors.Wrap(err, "failed to migrate AppUser")
	}
	if err := DB.AutoMigrate(&dbmodels.FinanceRequest{}); err != nil {
		return errors.Wrap(err, "failed to migrate FinanceRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalStep{}); err != nil {
		return errors.Wrap(err, "failed to migrate ApprovalStep")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalActionRecord{}); err != nil {
		return errors.Wrap(err, "failed to migrate ApprovalActionRecord")
	}
	if err := DB.AutoMigrate(&dbmodels.SLALog{}); err != nil {
		return errors.Wrap(err, "failed to migrate SLALog")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "failed to migrate Notification")
	}
	if err := DB.AutoMigrate(&dbmodels.Attachment{}); err != nil {
		return errors.Wrap(err, "failed to migrate Attachment")
	}
	log.Info("migrations finished")
	return nil
}
