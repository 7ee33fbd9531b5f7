package initializers

import (
	"context"

	"finance-flow-backend/config"
	"finance-flow-backend/fiberlog"
	approvalledger "finance-flow-backend/lib/approval-ledger"
	"finance-flow-backend/lib/auth"
	xlsexport "finance-flow-backend/lib/export/xls"
	financerequest "finance-flow-backend/lib/finance-request"
	"finance-flow-backend/lib/notification"
	"finance-flow-backend/lib/rbac"
	"finance-flow-backend/lib/reports"
	slaclock "finance-flow-backend/lib/sla-clock"
	slasweep "finance-flow-backend/lib/sla-sweep"
	slasweepworker "finance-flow-backend/lib/sla-sweep/worker"
	"finance-flow-backend/lib/workflow"
	connectionhub "finance-flow-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	rbac.NewHandler()
	slaclock.NewHandler()
	notification.NewHandler()
	approvalledger.NewHandler()
	financerequest.NewHandler()
	workflow.NewHandler()
	auth.NewHandler()
	xlsexport.NewHandler()
	reports.NewHandler()
	slasweep.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// deadline and warning sweep over active approval steps
	slasweepworker.StartWorker(ctx)
}
