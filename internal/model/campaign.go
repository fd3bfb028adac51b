package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign represents a time-bounded discount definition that vouchers belong to.
type Campaign struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	ValidFrom time.Time       `json:"validFrom"`
	ValidTo   time.Time       `json:"validTo"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Prefix    string          `json:"prefix"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CampaignRequest represents the request payload for creating a campaign.
type CampaignRequest struct {
	Name      string          `json:"name"`
	ValidFrom time.Time       `json:"validFrom"`
	ValidTo   time.Time       `json:"validTo"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Prefix    string          `json:"prefix"`
}
