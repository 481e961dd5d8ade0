// Package verifications mirrors business verification activity into the
// database. Store state stays in memory; this is a write-behind audit trail.
package verifications

import (
	"context"
	"time"

	"github.com/angelmondragon/ownshop-backend/internal/store"
	"github.com/angelmondragon/ownshop-backend/pkg/logger"
)

const defaultWriteTimeout = 5 * time.Second

// Archiver turns store events into archive writes.
type Archiver struct {
	repo    Repository
	logg    *logger.Logger
	timeout time.Duration
}

func NewArchiver(repo Repository, logg *logger.Logger) *Archiver {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Archiver{repo: repo, logg: logg, timeout: defaultWriteTimeout}
}

// Listener returns the store subscriber. Write failures are logged only.
func (a *Archiver) Listener() store.Listener {
	return func(ev store.Event) {
		if ev.Verification == nil {
			return
		}
		switch ev.Kind {
		case store.EventVerificationSubmitted, store.EventVerificationDecided:
		default:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		ctx = a.logg.WithDeviceID(ctx, ev.DeviceID)
		ctx = a.logg.WithField(ctx, "verification_id", ev.Verification.ID)

		if err := a.handle(ctx, ev); err != nil {
			a.logg.Error(ctx, "verification archive write failed", err)
		}
	}
}

func (a *Archiver) handle(ctx context.Context, ev store.Event) error {
	v := *ev.Verification
	if ev.Kind == store.EventVerificationSubmitted {
		return a.repo.Record(ctx, v)
	}

	decidedAt := time.Now().UTC()
	if v.DecidedAt != nil {
		decidedAt = *v.DecidedAt
	}
	found, err := a.repo.Decide(ctx, v.ID, v.Status, decidedAt)
	if err != nil || found {
		return err
	}
	// Submitted before the archive was attached.
	v.DecidedAt = &decidedAt
	return a.repo.Record(ctx, v)
}
