package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		amount int64
	}{
		{name: "zero", amount: 0, want: "₦0"},
		{name: "under a thousand", amount: 999, want: "₦999"},
		{name: "exactly a thousand", amount: 1000, want: "₦1,000"},
		{name: "typical deposit", amount: 36000, want: "₦36,000"},
		{name: "millions", amount: 1234567, want: "₦1,234,567"},
		{name: "negative withdrawal", amount: -2500, want: "-₦2,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNaira(tt.amount))
		})
	}
}
