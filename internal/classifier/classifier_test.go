package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		msg           Message
		wantOK        bool
		wantDirection model.TransactionDirection
		wantAmount    int64
		wantSource    string
	}{
		{
			name: "bank credit alert with NGN amount",
			msg: Message{
				Sender: "GTBank",
				Body:   "Credit Alert! Your account has been credited with NGN150,000.00 from ACME LTD",
			},
			wantOK:        true,
			wantDirection: model.DirectionCredit,
			wantAmount:    150000,
			wantSource:    "GTBank",
		},
		{
			name: "debit alert with naira symbol",
			msg: Message{
				Sender: "Kuda",
				Body:   "Your account was debited with ₦2,500.00 for POS purchase",
			},
			wantOK:        true,
			wantDirection: model.DirectionDebit,
			wantAmount:    2500,
			wantSource:    "Kuda",
		},
		{
			name: "salary inflow",
			msg: Message{
				Sender: "AccessBank",
				Body:   "Salary payment of N250,000 received into your account",
			},
			wantOK:        true,
			wantDirection: model.DirectionCredit,
			wantAmount:    250000,
			wantSource:    "Access Bank",
		},
		{
			name: "earliest keyword wins over later credit word",
			msg: Message{
				Sender: "OPay",
				Body:   "Transfer to JOHN DOE successful. ₦3,000 received by beneficiary",
			},
			wantOK:        true,
			wantDirection: model.DirectionDebit,
			wantAmount:    3000,
			wantSource:    "OPay",
		},
		{
			name: "institution alias found in body when sender is a phone number",
			msg: Message{
				Sender: "+2348031234567",
				Body:   "Zenith: your account was credited with ₦12,000.00",
			},
			wantOK:        true,
			wantDirection: model.DirectionCredit,
			wantAmount:    12000,
			wantSource:    "Zenith Bank",
		},
		{
			name: "fractional kobo rounds to whole naira",
			msg: Message{
				Sender: "UBA",
				Body:   "Debit alert: NGN1,999.50 charged for airtime",
			},
			wantOK:        true,
			wantDirection: model.DirectionDebit,
			wantAmount:    2000,
			wantSource:    "UBA",
		},
		{
			name: "OTP message has no parseable amount",
			msg: Message{
				Sender: "GTBank",
				Body:   "Your OTP is 482913. Do not share this code with anyone",
			},
			wantOK: false,
		},
		{
			name: "promo with amount but no direction keyword",
			msg: Message{
				Sender: "LoanCo",
				Body:   "Get up to ₦500,000 today! T&C apply",
			},
			wantOK: false,
		},
		{
			name: "bare number without separator is not an amount",
			msg: Message{
				Sender: "Friend",
				Body:   "I received the 3000 naira thanks",
			},
			wantOK: false,
		},
		{
			name:   "empty body",
			msg:    Message{Sender: "GTBank", Body: ""},
			wantOK: false,
		},
	}

	c := New(WithClock(func() time.Time { return fixed }))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, ok := c.Classify(context.Background(), tt.msg)
			if !tt.wantOK {
				assert.False(t, ok)
				assert.Nil(t, txn)
				return
			}

			require.True(t, ok)
			require.NotNil(t, txn)
			assert.Equal(t, tt.wantDirection, txn.Direction)
			assert.Equal(t, tt.wantAmount, txn.Amount)
			assert.Equal(t, tt.wantSource, txn.Source)
			assert.NotEmpty(t, txn.ID)
			assert.NotEmpty(t, txn.Hash)
		})
	}
}

func TestClassify_FallbackTimestampAndSnippet(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	c := New(WithClock(func() time.Time { return fixed }))

	txn, ok := c.Classify(context.Background(), Message{
		Sender: "08031234567",
		Body:   "You have received ₦4,000.00 from a friend for the weekend trip contribution and groceries",
	})
	require.True(t, ok)

	// No receipt timestamp: classification time is used.
	assert.Equal(t, fixed, txn.Date)

	// Phone-number sender and no institution alias: description snippet
	// stands in for the source.
	assert.Empty(t, txn.Source)
	assert.NotEmpty(t, txn.Description)
	assert.LessOrEqual(t, len([]rune(txn.Description)), snippetLength+1)
}

func TestClassify_CancelledContext(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txn, ok := c.Classify(ctx, Message{
		Sender: "GTBank",
		Body:   "credited with ₦1,000.00",
	})
	assert.False(t, ok)
	assert.Nil(t, txn)
}

func TestClassify_DeterministicHash(t *testing.T) {
	c := New()
	msg := Message{
		Sender:     "GTBank",
		Body:       "Credit Alert! credited with NGN10,000.00",
		ReceivedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}

	first, ok := c.Classify(context.Background(), msg)
	require.True(t, ok)
	second, ok := c.Classify(context.Background(), msg)
	require.True(t, ok)

	// IDs differ but the content hash is stable, so a re-scan deduplicates.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Hash, second.Hash)
}

func TestAggregate(t *testing.T) {
	until := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	txns := []model.Transaction{
		{Date: until.AddDate(0, 0, -1), Direction: model.DirectionCredit, Amount: 200000},
		{Date: until.AddDate(0, 0, -10), Direction: model.DirectionDebit, Amount: 45000},
		{Date: until.AddDate(0, 0, -20), Direction: model.DirectionDebit, Amount: 30000},
		// Outside the window
		{Date: until.AddDate(0, 0, -40), Direction: model.DirectionCredit, Amount: 999999},
		// After the window end
		{Date: until.AddDate(0, 0, 1), Direction: model.DirectionDebit, Amount: 500},
	}

	totals := Aggregate(txns, until, window)

	assert.Equal(t, int64(200000), totals.Credits)
	assert.Equal(t, int64(75000), totals.Debits)
	assert.Equal(t, 3, totals.Count)
}
