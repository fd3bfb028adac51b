package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaign_AmountMarshalsAsNumber(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{name: "whole", amount: decimal.NewFromInt(100), want: `"amount":100,`},
		{name: "fraction", amount: decimal.RequireFromString("49.95"), want: `"amount":49.95,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(Campaign{Amount: tt.amount})
			require.NoError(t, err)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestCampaignRequest_AcceptsNumberOrString(t *testing.T) {
	for _, raw := range []string{`{"amount":100}`, `{"amount":"100"}`} {
		var req CampaignRequest
		require.NoError(t, json.Unmarshal([]byte(raw), &req))
		assert.True(t, req.Amount.Equal(decimal.NewFromInt(100)), raw)
	}
}
