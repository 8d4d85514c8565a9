package scheduler

import (
	"github.com/haungo2109/be-thamhienmauto/internal/app/service"
	"github.com/haungo2109/be-thamhienmauto/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PromotionScheduler sweeps expired promotions off the catalog.
type PromotionScheduler struct {
	cron             *cron.Cron
	promotionService service.PromotionService
}

func NewPromotionScheduler(promotionService service.PromotionService) *PromotionScheduler {
	return &PromotionScheduler{
		cron:             cron.New(),
		promotionService: promotionService,
	}
}

// Start registers the hourly sweep. Each expired promotion is deactivated
// and its product prices are reset, so stale discounts never outlive their
// end date by more than an hour.
func (s *PromotionScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled promotion sweep", nil)

		count, err := s.promotionService.DeactivateExpired()
		if err != nil {
			logger.Error("Failed to sweep expired promotions", err)
			return
		}

		logger.Info("Promotion sweep completed", map[string]interface{}{
			"deactivated": count,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for promotion sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Promotion scheduler started successfully (hourly)", nil)

	return nil
}

// Stop stops the scheduler
func (s *PromotionScheduler) Stop() {
	logger.Info("Stopping promotion scheduler...")
	s.cron.Stop()
	logger.Info("Promotion scheduler stopped")
}
