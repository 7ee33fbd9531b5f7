package slasweepworker

import (
	"context"
	"time"

	"finance-flow-backend/config"
	slasweep "finance-flow-backend/lib/sla-sweep"
	baseworker "finance-flow-backend/lib/utils/base-worker"
)

func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Sla.SweepIntervalMin) * time.Minute
	i := &impl{
		BaseImpl: *baseworker.NewInstance("SlaSweepWorker", 1*time.Minute, interval),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	slasweep.Instance.Sweep(ctx, time.Now())
}
