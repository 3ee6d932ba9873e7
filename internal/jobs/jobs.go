package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	applog "mutfago/internal/log"
	"mutfago/internal/modules"
	"mutfago/internal/notify"
	"mutfago/internal/pantry"
	"mutfago/models"
)

const (
	trialWarningWindow  = 3 * 24 * time.Hour
	expiryWarningWindow = 2 * 24 * time.Hour
)

// Scheduler owns the background sweeps: trial-ending warnings every half hour
// and pantry expiry warnings once a day.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers the sweeps and launches the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc("@every 30m", func() {
		defer recoverJob(ctx, "trial sweep")
		if err := s.SweepTrials(ctx); err != nil {
			applog.Error(ctx, "trial sweep failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register trial sweep: %w", err)
	}

	if _, err := s.cron.AddFunc("@daily", func() {
		defer recoverJob(ctx, "expiry sweep")
		if err := s.SweepExpiring(ctx); err != nil {
			applog.Error(ctx, "expiry sweep failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("register expiry sweep: %w", err)
	}

	s.cron.Start()
	applog.Info(ctx, "background jobs started")
	return nil
}

// Stop halts the cron loop and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func recoverJob(ctx context.Context, name string) {
	if r := recover(); r != nil {
		applog.Error(ctx, "job panicked", "job", name, "panic", fmt.Sprint(r))
	}
}

// SweepTrials warns kitchen owners whose module trial ends within three days.
// At most one notification per module and kitchen per day.
func (s *Scheduler) SweepTrials(ctx context.Context) error {
	ending, err := modules.TrialsEndingWithin(ctx, s.db, trialWarningWindow)
	if err != nil {
		return err
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	for _, entitlement := range ending {
		var kitchen models.Kitchen
		if err := s.db.WithContext(ctx).First(&kitchen, entitlement.KitchenID).Error; err != nil {
			applog.Warn(ctx, "trial sweep kitchen lookup failed", "kitchen", entitlement.KitchenID, "error", err)
			continue
		}

		title := fmt.Sprintf("%s denemesi bitiyor", entitlement.Module.Name)
		already, err := notify.ExistsSince(ctx, s.db, kitchen.OwnerID, models.NotificationTrialEnding, title, dayStart)
		if err != nil {
			return err
		}
		if already {
			continue
		}

		message := fmt.Sprintf("%s modülünün deneme süresi %s tarihinde sona eriyor.",
			entitlement.Module.Name, entitlement.TrialEndsAt.Format("02.01.2006"))
		if err := notify.Create(ctx, s.db, kitchen.OwnerID, models.NotificationTrialEnding, title, message); err != nil {
			applog.Warn(ctx, "trial notification failed", "kitchen", kitchen.ID, "error", err)
		}
	}
	return nil
}

// SweepExpiring warns every member of a kitchen with stock expiring within two
// days. One notification per item and user per day.
func (s *Scheduler) SweepExpiring(ctx context.Context) error {
	items, err := pantry.ExpiringSoon(ctx, s.db, expiryWarningWindow)
	if err != nil {
		return err
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	for _, item := range items {
		var members []models.KitchenMember
		if err := s.db.WithContext(ctx).Where("kitchen_id = ?", item.KitchenID).Find(&members).Error; err != nil {
			applog.Warn(ctx, "expiry sweep member lookup failed", "kitchen", item.KitchenID, "error", err)
			continue
		}

		title := fmt.Sprintf("%s son kullanma tarihi yaklaşıyor", item.Name)
		for _, member := range members {
			already, err := notify.ExistsSince(ctx, s.db, member.UserID, models.NotificationPantryExpiring, title, dayStart)
			if err != nil {
				return err
			}
			if already {
				continue
			}
			message := fmt.Sprintf("%s için son kullanma tarihi %s.",
				item.Name, item.ExpiryDate.Format("02.01.2006"))
			if err := notify.Create(ctx, s.db, member.UserID, models.NotificationPantryExpiring, title, message); err != nil {
				applog.Warn(ctx, "expiry notification failed", "user", member.UserID, "error", err)
			}
		}
	}
	return nil
}
