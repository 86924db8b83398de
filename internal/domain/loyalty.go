package domain

import "time"

// PointsBalance is a customer's loyalty point standing.
type PointsBalance struct {
	UserID          string `json:"userId"`
	TotalPoints     int64  `json:"totalPoints"`
	AvailablePoints int64  `json:"availablePoints"`
	PendingPoints   int64  `json:"pendingPoints"`
	Tier            string `json:"tier"`
}

// PointsTransaction is one earn/redeem entry in a customer's history.
type PointsTransaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Points      int64     `json:"points"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RedeemPointsInput asks the loyalty service to spend points.
type RedeemPointsInput struct {
	UserID string `json:"userId"`
	Points int64  `json:"points"`
	Reason string `json:"reason,omitempty"`
}

// Redemption acknowledges a completed redemption.
type Redemption struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Points          int64     `json:"points"`
	RemainingPoints int64     `json:"remainingPoints"`
	CreatedAt       time.Time `json:"createdAt"`
}
