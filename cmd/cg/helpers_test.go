package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain number", input: "5000", want: 5000},
		{name: "thousands separators", input: "36,000", want: 36000},
		{name: "naira symbol", input: "₦1,000", want: 1000},
		{name: "NGN prefix", input: "NGN 250,000", want: 250000},
		{name: "surrounding whitespace", input: "  1500 ", want: 1500},
		{name: "negative passes through", input: "-500", want: -500},
		{name: "decimal rejected", input: "1000.50", wantErr: true},
		{name: "words rejected", input: "five thousand", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
