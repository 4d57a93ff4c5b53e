package schedulers

import (
	"context"
	"fmt"
	"telemora/internal/config"
	"telemora/internal/models"
	"telemora/internal/util"
	"time"

	"github.com/robfig/cron/v3"
)

var log = config.InitLogger()

type Snapshotter interface {
	Snapshot(ctx context.Context) (*models.ContractSnapshot, error)
}

// SnapshotContract returns a job that stores the contract state and reports
// the result on notify when it is not nil.
func SnapshotContract(s Snapshotter, timeout time.Duration, notify chan<- string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		snap, err := s.Snapshot(ctx)
		if err != nil {
			log.Error("Failed to snapshot contract: ", err)
			return
		}

		log.Infof("Snapshot %d: balance %s TON, commission %d", snap.Id.Int64, util.FormatNano(snap.BalanceNano), snap.CommissionBps)

		if notify != nil {
			msg := fmt.Sprintf("📸 Balance of <code>%s</code>: %s TON", snap.Contract, util.FormatNano(snap.BalanceNano))
			select {
			case notify <- msg:
			default:
				log.Warn("Snapshot notification dropped")
			}
		}
	}
}

// Start runs job on the cron spec until ctx is done.
func Start(ctx context.Context, spec string, job func()) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	c.Start()
	log.Infof("Scheduler started with %q", spec)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Infoln("Scheduler stopped")
	}()

	return nil
}
