package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultGracePeriod keeps freshly written files whose database row may not be
// committed yet.
const DefaultGracePeriod = time.Hour

// PhotoDirectory is the local photo store as seen by the sweeper.
type PhotoDirectory interface {
	List(ctx context.Context, modifiedBefore time.Time) ([]string, error)
	Delete(ctx context.Context, path string) error
}

// PhotoReferences lists the photo paths a table still points at.
type PhotoReferences interface {
	ListPhotoPaths(ctx context.Context) ([]string, error)
}

// PhotoSweepScheduler periodically deletes photo files that no rating or
// haircut row references.
type PhotoSweepScheduler struct {
	cron        *cron.Cron
	schedule    string
	photos      PhotoDirectory
	references  []PhotoReferences
	gracePeriod time.Duration
	now         func() time.Time
}

func NewPhotoSweepScheduler(schedule string, photos PhotoDirectory, references ...PhotoReferences) *PhotoSweepScheduler {
	return &PhotoSweepScheduler{
		cron:        cron.New(),
		schedule:    schedule,
		photos:      photos,
		references:  references,
		gracePeriod: DefaultGracePeriod,
		now:         time.Now,
	}
}

// Start registers the sweep on the configured cron expression and starts the
// cron runner.
func (s *PhotoSweepScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled photo sweep")

		removed, err := s.Sweep(context.Background())
		if err != nil {
			logger.Error("Photo sweep failed", err)
			return
		}

		logger.Info("Photo sweep finished", logger.Fields{
			"removed": removed,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for photo sweep", err, logger.Fields{
			"schedule": s.schedule,
		})
		return fmt.Errorf("invalid photo sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	logger.Info("Photo sweep scheduler started", logger.Fields{
		"schedule": s.schedule,
	})
	return nil
}

// Stop waits for a running sweep to finish.
func (s *PhotoSweepScheduler) Stop() {
	logger.Info("Stopping photo sweep scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Photo sweep scheduler stopped")
}

// Sweep deletes unreferenced files older than the grace period and returns
// how many were removed.
func (s *PhotoSweepScheduler) Sweep(ctx context.Context) (int, error) {
	referenced := make(map[string]struct{})
	for _, ref := range s.references {
		paths, err := ref.ListPhotoPaths(ctx)
		if err != nil {
			return 0, fmt.Errorf("list referenced photos: %w", err)
		}
		for _, p := range paths {
			referenced[p] = struct{}{}
		}
	}

	files, err := s.photos.List(ctx, s.now().Add(-s.gracePeriod))
	if err != nil {
		return 0, fmt.Errorf("list photo files: %w", err)
	}

	removed := 0
	for _, file := range files {
		if _, ok := referenced[file]; ok {
			continue
		}
		if err := s.photos.Delete(ctx, file); err != nil {
			logger.Warn("Failed to delete unreferenced photo", logger.Fields{
				"path":  file,
				"error": err.Error(),
			})
			continue
		}
		logger.Debug("Deleted unreferenced photo", logger.Fields{"path": file})
		removed++
	}
	return removed, nil
}
