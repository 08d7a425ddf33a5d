package processor

import (
	"context"
	"log"

	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/service"

	"github.com/robfig/cron/v3"
)

type CronScheduler struct {
	cron        *cron.Cron
	backfillSvc service.BackfillServiceInterface
}

func NewCronScheduler(backfillSvc service.BackfillServiceInterface) *CronScheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &CronScheduler{
		cron:        c,
		backfillSvc: backfillSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	log.Printf("Starting cron scheduler with schedule: %s", schedule)

	_, err := s.cron.AddFunc(schedule, func() {
		log.Println("Cron job triggered: backfilling review sentiment")

		if err := s.backfillSvc.Backfill(ctx); err != nil {
			log.Printf("ERROR: Failed to backfill sentiment: %v", err)
		} else {
			log.Println("Cron job completed: sentiment backfill finished")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started")

	log.Println("Performing initial sentiment backfill...")
	if err := s.backfillSvc.Backfill(ctx); err != nil {
		log.Printf("WARNING: Failed initial sentiment backfill: %v", err)
	} else {
		log.Println("Initial sentiment backfill completed")
	}

	return nil
}

func (s *CronScheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
