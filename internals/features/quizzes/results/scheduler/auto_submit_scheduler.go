package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"hairnerds_backend/internals/features/quizzes/results/model"
	"hairnerds_backend/internals/features/quizzes/results/service"
)

// AutoSubmitScheduler menembakkan auto-submit per attempt pada start+duration.
// Fire-and-forget: tidak ada cancel saat submit manual lebih dulu — handler
// AutoSubmit sudah no-op untuk attempt terminal.
type AutoSubmitScheduler struct {
	Svc *service.QuizResultService
}

func NewAutoSubmitScheduler(svc *service.QuizResultService) *AutoSubmitScheduler {
	return &AutoSubmitScheduler{Svc: svc}
}

func (s *AutoSubmitScheduler) Schedule(resultID uuid.UUID, at time.Time) {
	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.Svc.AutoSubmit(ctx, resultID); err != nil {
			log.Printf("[AUTO-SUBMIT] quiz_result %s gagal: %v", resultID, err)
		}
	})
}

// StartExpiredSweep memasang cron tiap menit untuk menutup attempt kedaluwarsa
// yang job AfterFunc-nya hilang (mis. service restart).
func StartExpiredSweep(db *gorm.DB, svc *service.QuizResultService) {
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		sweepExpired(db, svc)
	})
	if err != nil {
		log.Printf("[AUTO-SUBMIT] gagal pasang sweep: %v", err)
		return
	}
	c.Start()
	log.Println("[AUTO-SUBMIT] expired sweep aktif (tiap 1 menit)")
}

func sweepExpired(db *gorm.DB, svc *service.QuizResultService) {
	var expired []model.QuizResultModel
	// join ke quizzes untuk membandingkan dengan durasinya; duration 0 = tanpa batas
	if err := db.
		Joins("JOIN quizzes ON quizzes.quiz_id = quiz_results.quiz_result_quiz_id").
		Where("quiz_results.quiz_result_is_submitted = FALSE").
		Where("quizzes.quiz_duration_seconds > 0").
		Where("quiz_results.quiz_result_started_at + (quizzes.quiz_duration_seconds || ' seconds')::interval < NOW()").
		Limit(100).
		Find(&expired).Error; err != nil {
		log.Printf("[AUTO-SUBMIT] sweep query gagal: %v", err)
		return
	}

	for _, r := range expired {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := svc.AutoSubmit(ctx, r.QuizResultID); err != nil {
			log.Printf("[AUTO-SUBMIT] sweep quiz_result %s gagal: %v", r.QuizResultID, err)
		}
		cancel()
	}
	if len(expired) > 0 {
		log.Printf("[AUTO-SUBMIT] sweep menutup %d attempt kedaluwarsa", len(expired))
	}
}
