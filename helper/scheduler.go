package helper

import (
	"log"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/model"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var scheduler *cron.Cron
var auditScheduler gocron.Scheduler

func StartCouponExpiryScheduler() {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := scheduler.AddFunc("*/5 * * * *", expireCoupons)
	if err != nil {
		log.Printf("failed to start coupon expiry scheduler: %v", err)
		return
	}

	scheduler.Start()
	log.Println("coupon expiry scheduler started (every 5 minutes)")
}

func StopCouponExpiryScheduler() {
	if scheduler != nil {
		scheduler.Stop()
	}
}

// expireCoupons flags lapsed, unsold coupons. Status only: expired
// coupons still count as unsold, so issuer counters are untouched here.
func expireCoupons() {
	now := time.Now()
	result := database.DB.Model(&model.Coupon{}).
		Where("status = ? AND valid_until < ? AND sale_timestamp IS NULL", constants.CouponIssued, now).
		Update("status", constants.CouponExpired)

	if result.Error != nil {
		log.Printf("failed to expire coupons: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("expired %d lapsed coupons", result.RowsAffected)
	}
}

func StartCounterAuditScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.Local),
	)
	if err != nil {
		log.Printf("failed to create counter audit scheduler: %v", err)
		return
	}
	auditScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 15, 0),
			),
		),
		gocron.NewTask(AuditExecutiveCounters),
	)
	if err != nil {
		log.Printf("failed to schedule counter audit: %v", err)
		return
	}

	s.Start()
}

// AuditExecutiveCounters logs any executive whose aggregates drifted.
// Counters are only ever written inside the generate and sale
// transactions, so a hit here means a bug, not data to "fix".
func AuditExecutiveCounters() {
	var drifted []model.Executive
	if err := database.DB.
		Where("total_sold + total_unsold <> total_issued").
		Find(&drifted).Error; err != nil {
		log.Printf("counter audit query failed: %v", err)
		return
	}

	for _, e := range drifted {
		log.Printf("counter drift for issuer %s: issued=%d sold=%d unsold=%d",
			e.IssuerCode, e.TotalIssued, e.TotalSold, e.TotalUnsold)
	}
}
