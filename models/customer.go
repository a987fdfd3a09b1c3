package models

import "time"

// StudentType classifies a customer; it must match the event classification
// before a check request is accepted.
type StudentType string

const (
	StudentNormal  StudentType = "normal"
	StudentSpecial StudentType = "special"
)

// Customer is a student profile created from a LINE login payload. CustomerID
// is the external identity string; TotalPoint is the redeemable point balance
// and is only ever mutated inside settlement and redemption transactions.
type Customer struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CustomerID  string      `gorm:"size:64;uniqueIndex;not null" json:"customer_id"`
	Name        string      `gorm:"size:255;not null" json:"name"`
	Picture     string      `gorm:"size:512" json:"picture"`
	Email       string      `gorm:"size:255" json:"email"`
	FirstName   string      `gorm:"size:64" json:"first_name"`
	LastName    string      `gorm:"size:64" json:"last_name"`
	UserCode    string      `gorm:"size:32" json:"user_code"`
	GroupSt     string      `gorm:"size:32" json:"group_st"`
	BranchSt    string      `gorm:"size:64" json:"branch_st"`
	StudentType StudentType `gorm:"size:16;default:normal" json:"student_type"`
	LevelSt     string      `gorm:"size:32" json:"level_st"`
	FaceURL     string      `gorm:"size:512" json:"face_url"`
	TotalPoint  int         `gorm:"default:0" json:"total_point"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ValidStudentType reports whether t is a recognized classification.
func ValidStudentType(t StudentType) bool {
	return t == StudentNormal || t == StudentSpecial
}
