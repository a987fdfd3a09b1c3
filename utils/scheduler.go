package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/models"
)

// StartSessionSweeper launches a background goroutine that periodically
// settles dangling attendance sessions. The job body is a plain function so
// tests invoke it directly with a controlled clock.
func StartSessionSweeper(db *gorm.DB, interval time.Duration, loc *time.Location, policy PointsPolicy) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := SweepDanglingSessions(db, time.Now(), loc, policy)
			if err != nil {
				if Sugar != nil {
					Sugar.Warnf("session sweep failed: %v", err)
				}
				continue
			}
			if n > 0 && Sugar != nil {
				Sugar.Infof("session sweep settled %d dangling sessions", n)
			}
		}
	}()
}

// SweepDanglingSessions settles unsettled check-ins from past participation
// days. A session whose check-out exists is settled through the policy (the
// checkout path crashed before crediting); one with no check-out earns 0.
// Each session settles in its own transaction so one bad row cannot wedge
// the sweep.
func SweepDanglingSessions(db *gorm.DB, now time.Time, loc *time.Location, policy PointsPolicy) (int, error) {
	today := ParticipationDay(now, loc)

	var pending []models.AttendanceRecord
	err := db.
		Where("check_kind = ? AND points_awarded = ? AND participation_day < ?", models.CheckIn, false, today).
		Limit(200).
		Find(&pending).Error
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range pending {
		in := pending[i]
		err := db.Transaction(func(tx *gorm.DB) error {
			var locked models.AttendanceRecord
			if err := LockForUpdate(tx).First(&locked, in.ID).Error; err != nil {
				return err
			}
			if locked.PointsAwarded {
				return nil
			}

			points := 0
			var out models.AttendanceRecord
			err := tx.Where("event_id = ? AND customer_id = ? AND participation_day = ? AND check_kind = ?",
				locked.EventID, locked.CustomerID, locked.ParticipationDay, models.CheckOut).
				First(&out).Error
			switch {
			case err == nil:
				points = policy.Settle(locked.TimeCheck, out.TimeCheck)
			case err != gorm.ErrRecordNotFound:
				return err
			}

			if points > 0 {
				var customer models.Customer
				if err := LockForUpdate(tx).
					Where("customer_id = ?", locked.CustomerID).First(&customer).Error; err != nil {
					return err
				}
				if err := tx.Model(&customer).Update("total_point", customer.TotalPoint+points).Error; err != nil {
					return err
				}
			}

			return tx.Model(&locked).Updates(map[string]interface{}{
				"points":         points,
				"points_awarded": true,
			}).Error
		})
		if err != nil {
			if Sugar != nil {
				Sugar.Warnf("sweep: settling record %d failed: %v", in.ID, err)
			}
			continue
		}
		settled++
	}
	return settled, nil
}
