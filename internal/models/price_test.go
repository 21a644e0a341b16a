package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gudang/internal/models"
)

func TestPrice_MarshalJSON(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"10.5", "10.50"},
		{"1000", "1000.00"},
		{"100.57", "100.57"},
		{"-3.1", "-3.10"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			price := models.Price{ID: 1, Currency: "USD", Amount: decimal.RequireFromString(tt.amount), ProductID: 2}

			body, err := json.Marshal(price)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, tt.want, got["amount"])
			assert.Equal(t, "USD", got["currency"])
			assert.EqualValues(t, 2, got["product"])
			assert.NotContains(t, got, "Product")
		})
	}
}
