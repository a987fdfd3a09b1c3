package models

import "time"

// EventType classifies an event as open to normal or special students.
type EventType string

const (
	EventNormal  EventType = "normal"
	EventSpecial EventType = "special"
)

// Event is an admin-created activity. Start/end dates and times-of-day are
// persisted as zone-naive wall-clock components ("2006-01-02", "15:04:05")
// and recombined with the single configured application zone at read time.
// AdminID is nullable: an event without an owning admin accepts no checks.
type Event struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ActivityName string    `gorm:"size:255;not null" json:"activity_name"`
	Course       string    `gorm:"size:255" json:"course"`
	StartDate    string    `gorm:"size:10;not null" json:"start_date"`
	EndDate      string    `gorm:"size:10;not null" json:"end_date"`
	StartTime    string    `gorm:"size:8;not null" json:"start_time"`
	EndTime      string    `gorm:"size:8;not null" json:"end_time"`
	Venue        string    `gorm:"size:255" json:"venue"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	Province     string    `gorm:"size:64" json:"province"`
	AdminID      *uint     `gorm:"index" json:"admin_id"`
	EventType    EventType `gorm:"size:16;not null;default:normal" json:"event_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidEventType reports whether t is a recognized event classification.
func ValidEventType(t EventType) bool {
	return t == EventNormal || t == EventSpecial
}

// MatchesStudent reports whether a customer classification may join this event.
func (e *Event) MatchesStudent(t StudentType) bool {
	return string(e.EventType) == string(t)
}
