package models

import "time"

// RedemptionStatus is the lifecycle state of a redemption. Transitions are
// strictly pending -> used -> completed; nothing moves backwards or skips.
type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionUsed      RedemptionStatus = "used"
	RedemptionCompleted RedemptionStatus = "completed"
)

// CanTransitionTo reports whether next is the single legal successor of s.
func (s RedemptionStatus) CanTransitionTo(next RedemptionStatus) bool {
	switch s {
	case RedemptionPending:
		return next == RedemptionUsed
	case RedemptionUsed:
		return next == RedemptionCompleted
	}
	return false
}

// Redemption records one exchange of points for a reward unit. Code is the
// public reference shown to staff at pickup. RewardURLSnapshot and
// CustomerNameSnapshot are copied at creation so later edits to the reward or
// profile never alter history.
type Redemption struct {
	ID                   uint             `gorm:"primaryKey" json:"id"`
	Code                 string           `gorm:"size:36;uniqueIndex;not null" json:"code"`
	CustomerID           string           `gorm:"size:64;not null;index" json:"customer_id"`
	RewardID             uint             `gorm:"not null;index" json:"reward_id"`
	Status               RedemptionStatus `gorm:"size:16;not null;default:pending" json:"status"`
	RewardURLSnapshot    string           `gorm:"type:text" json:"reward_url_snapshot"`
	CustomerNameSnapshot string           `gorm:"size:255" json:"customer_name_snapshot"`
	CreatedAt            time.Time        `json:"created_at"`
	UsedAt               *time.Time       `json:"used_at"`
	UpdatedAt            time.Time        `json:"updated_at"`

	Reward Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
}
