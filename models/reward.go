package models

import "time"

// Reward is a physical item redeemable for points. Amount is the remaining
// inventory and must never go negative; it is only decremented inside the
// redemption transaction while the row is locked.
type Reward struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	PointsRequired int       `gorm:"not null" json:"points_required"`
	Amount         int       `gorm:"not null;default:0" json:"amount"`
	CanRedeem      bool      `gorm:"default:true" json:"can_redeem"`
	RewardURLs     string    `gorm:"type:text" json:"reward_urls"` // JSON array of image URIs
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
