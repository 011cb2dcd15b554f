package handler

import (
	"errors"
	"sync"
	"testing"
	"ticketflix/constants"
	"ticketflix/database"
	"ticketflix/model"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection serializes writers, standing in for the row
	// locks Postgres provides in production
	sqlDB.SetMaxOpenConns(1)
	database.Migrate(db)
	return db
}

func seedExecutive(t *testing.T, db *gorm.DB, issuerCode string) *model.Executive {
	t.Helper()
	executive := &model.Executive{
		FirstName:             "Asha",
		LastName:              "Rao",
		Email:                 issuerCode + "@ticketflix.test",
		IssuerCode:            issuerCode,
		AllowCouponGeneration: true,
		AllowSaleRecording:    true,
		IsActive:              true,
	}
	require.NoError(t, db.Create(executive).Error)
	return executive
}

func seedCoupon(t *testing.T, db *gorm.DB, code, issuerCode string, validUntil time.Time) *model.Coupon {
	t.Helper()
	coupon := &model.Coupon{
		Code:        code,
		AmountPaid:  200,
		IssuerCode:  issuerCode,
		SeatClass:   constants.SeatStandard,
		Status:      constants.CouponIssued,
		GeneratedAt: time.Now(),
		ValidUntil:  validUntil,
	}
	require.NoError(t, db.Create(coupon).Error)

	require.NoError(t, db.Model(&model.Executive{}).
		Where("issuer_code = ?", issuerCode).
		Updates(map[string]any{
			"total_issued": gorm.Expr("total_issued + 1"),
			"total_unsold": gorm.Expr("total_unsold + 1"),
		}).Error)
	return coupon
}

func saleInput(code string) model.RecordSaleInput {
	return model.RecordSaleInput{
		CouponCode: code,
		BuyerName:  "Ravi Kumar",
		BuyerPhone: "9876543210",
		BankRef:    "12345",
	}
}

func TestProcessSaleHappyPath(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")
	coupon := seedCoupon(t, db, "TFAAAA1111", "AB1234", time.Now().Add(time.Hour))

	now := time.Now()
	sale, err := processSale(db, saleInput("TFAAAA1111"), executive.ID, now)
	require.NoError(t, err)

	assert.Equal(t, coupon.ID, sale.CouponId)
	assert.Equal(t, "TFAAAA1111", sale.CouponCode)
	assert.Equal(t, 200.0, sale.AmountPaid)
	assert.Equal(t, "12345", sale.BankRef)

	var updated model.Coupon
	require.NoError(t, db.First(&updated, coupon.ID).Error)
	require.NotNil(t, updated.SaleTimestamp)
	assert.Equal(t, constants.CouponSold, updated.Status)
	assert.Equal(t, "Ravi Kumar", updated.BuyerName)

	var exec model.Executive
	require.NoError(t, db.First(&exec, executive.ID).Error)
	assert.Equal(t, int64(1), exec.TotalSold)
	assert.Equal(t, int64(0), exec.TotalUnsold)
	assert.Equal(t, int64(1), exec.TotalIssued)
}

func TestProcessSaleSecondAttemptFailsAlreadySold(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")
	seedCoupon(t, db, "TFAAAA1111", "AB1234", time.Now().Add(time.Hour))

	_, err := processSale(db, saleInput("TFAAAA1111"), executive.ID, time.Now())
	require.NoError(t, err)

	_, err = processSale(db, saleInput("TFAAAA1111"), executive.ID, time.Now())
	assert.ErrorIs(t, err, model.ErrAlreadySold)

	// a failed attempt leaves no trace
	var saleCount int64
	db.Model(&model.SaleRecord{}).Count(&saleCount)
	assert.Equal(t, int64(1), saleCount)
}

func TestProcessSaleUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")

	_, err := processSale(db, saleInput("TFNOPE0000"), executive.ID, time.Now())
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}

func TestProcessSaleExpiryBoundary(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")

	now := time.Now()
	seedCoupon(t, db, "TFPAST0000", "AB1234", now.Add(-time.Second))
	seedCoupon(t, db, "TFNEXT0000", "AB1234", now.Add(time.Second))

	_, err := processSale(db, saleInput("TFPAST0000"), executive.ID, now)
	assert.ErrorIs(t, err, model.ErrCouponExpired)

	_, err = processSale(db, saleInput("TFNEXT0000"), executive.ID, now)
	assert.NoError(t, err)

	// the expired attempt must not have moved counters
	var exec model.Executive
	require.NoError(t, db.First(&exec, executive.ID).Error)
	assert.Equal(t, exec.TotalIssued, exec.TotalSold+exec.TotalUnsold)
	assert.Equal(t, int64(1), exec.TotalSold)
}

func TestProcessSaleAtMostOnceUnderConcurrency(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")
	seedCoupon(t, db, "TFRACE0000", "AB1234", time.Now().Add(time.Hour))

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = processSale(db, saleInput("TFRACE0000"), executive.ID, time.Now())
		}(i)
	}
	wg.Wait()

	succeeded, alreadySold := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case err == model.ErrAlreadySold:
			alreadySold++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, alreadySold)

	var exec model.Executive
	require.NoError(t, db.First(&exec, executive.ID).Error)
	assert.Equal(t, int64(1), exec.TotalSold)
	assert.Equal(t, exec.TotalIssued, exec.TotalSold+exec.TotalUnsold)
}

func TestProcessSaleDriftedCountersRollBack(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")
	coupon := seedCoupon(t, db, "TFAAAA1111", "AB1234", time.Now().Add(time.Hour))

	// simulate drift: the coupon exists but the unsold counter was lost
	require.NoError(t, db.Model(&model.Executive{}).
		Where("issuer_code = ?", "AB1234").
		Update("total_unsold", 0).Error)

	_, err := processSale(db, saleInput("TFAAAA1111"), executive.ID, time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrAlreadySold)
	assert.NotErrorIs(t, err, model.ErrCouponNotFound)

	// the whole transaction rolled back: coupon still unsold, no audit row
	var stored model.Coupon
	require.NoError(t, db.First(&stored, coupon.ID).Error)
	assert.Nil(t, stored.SaleTimestamp)
	assert.Equal(t, constants.CouponIssued, stored.Status)

	var saleCount int64
	db.Model(&model.SaleRecord{}).Count(&saleCount)
	assert.Equal(t, int64(0), saleCount)
}

func TestProcessSaleLookupFailureIsNotBusinessRejection(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")

	// fail the sold-count query that runs after a miss on the unsold
	// lookup; its Dest is the only *int64 in this code path
	require.NoError(t, db.Callback().Query().Before("gorm:query").
		Register("fail_count_queries", func(tx *gorm.DB) {
			if _, ok := tx.Statement.Dest.(*int64); ok {
				tx.AddError(errors.New("storage offline"))
			}
		}))

	_, err := processSale(db, saleInput("TFNOPE0000"), executive.ID, time.Now())
	require.Error(t, err)
	// a storage failure must surface as such, not as a business rejection
	assert.NotErrorIs(t, err, model.ErrCouponNotFound)
	assert.NotErrorIs(t, err, model.ErrAlreadySold)
}

func TestCounterConsistencyAcrossGenerateAndSell(t *testing.T) {
	db := setupTestDB(t)
	executive := seedExecutive(t, db, "AB1234")

	codes := []string{"TFAAAA0001", "TFAAAA0002", "TFAAAA0003"}
	for _, code := range codes {
		seedCoupon(t, db, code, "AB1234", time.Now().Add(time.Hour))
	}

	_, err := processSale(db, saleInput("TFAAAA0002"), executive.ID, time.Now())
	require.NoError(t, err)

	var exec model.Executive
	require.NoError(t, db.First(&exec, executive.ID).Error)
	assert.Equal(t, int64(3), exec.TotalIssued)
	assert.Equal(t, int64(1), exec.TotalSold)
	assert.Equal(t, int64(2), exec.TotalUnsold)
	assert.Equal(t, exec.TotalIssued, exec.TotalSold+exec.TotalUnsold)
}
