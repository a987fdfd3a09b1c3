package models

import "time"

// CheckKind distinguishes the two halves of an attendance session.
type CheckKind string

const (
	CheckIn  CheckKind = "in"
	CheckOut CheckKind = "out"
)

// AttendanceRecord is one append-only ledger entry. The composite unique index
// over (event, customer, kind, participation day) is the hard guarantee that a
// day holds at most one "in" and one "out" per customer, even under concurrent
// requests racing past the read-time checks.
//
// TimeCheck is an absolute UTC instant; ParticipationDay is the local calendar
// date (configured zone) used as the dedup key. Points is set once, by
// settlement, on the "in" record of a completed session.
type AttendanceRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	EventID          uint      `gorm:"not null;uniqueIndex:idx_attendance_session" json:"event_id"`
	CustomerID       string    `gorm:"size:64;not null;uniqueIndex:idx_attendance_session;index" json:"customer_id"`
	CheckKind        CheckKind `gorm:"size:8;not null;uniqueIndex:idx_attendance_session" json:"check_kind"`
	ParticipationDay string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_session" json:"participation_day"`
	Images           string    `gorm:"type:text" json:"images"` // JSON array of evidence URIs
	TimeCheck        time.Time `gorm:"not null" json:"time_check"`
	Points           *int      `json:"points"`
	PointsAwarded    bool      `gorm:"default:false" json:"points_awarded"`
	CreatedAt        time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
