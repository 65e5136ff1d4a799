// Package classifier turns raw inbound bank alert messages into typed
// transaction records. Classification is a pure function of the message; a
// miss means the message was not a financial alert, never an error.
package classifier

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/google/uuid"
)

// snippetLength bounds the description fallback taken from the body.
const snippetLength = 48

// Message is one raw inbound message plus its sender metadata.
type Message struct {
	ReceivedAt time.Time
	Sender     string
	Body       string
}

// Classifier evaluates messages against the directional keyword and
// institution rule tables.
type Classifier struct {
	now      func() time.Time
	amountRe *regexp.Regexp
	bareRe   *regexp.Regexp
	digitsRe *regexp.Regexp
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithClock injects the time source used when a message carries no receipt
// timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		c.now = now
	}
}

// New creates a Classifier with pre-compiled patterns.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		now: time.Now,
		// Currency-marked amounts: ₦12,500.00, NGN 3000, N1,000
		amountRe: regexp.MustCompile(`(?i)(?:₦|\b(?:NGN|N))\s?([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?|[0-9]+(?:\.[0-9]{1,2})?)`),
		// Bare amounts need a thousands separator or decimal part so account
		// and reference numbers are not mistaken for money.
		bareRe:   regexp.MustCompile(`([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?|[0-9]+\.[0-9]{1,2})`),
		digitsRe: regexp.MustCompile(`^[0-9+\s-]+$`),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify produces zero or one transaction from a message. The second
// return value is false when the message is non-financial and should be
// discarded. Classification never mutates stored state.
func (c *Classifier) Classify(ctx context.Context, msg Message) (*model.Transaction, bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	amount, ok := c.extractAmount(msg.Body)
	if !ok {
		return nil, false
	}

	direction, ok := detectDirection(msg.Body)
	if !ok {
		return nil, false
	}

	date := msg.ReceivedAt
	if date.IsZero() {
		date = c.now()
	}

	txn := &model.Transaction{
		ID:        uuid.NewString(),
		Date:      date,
		Direction: direction,
		Amount:    amount,
		Sender:    msg.Sender,
	}

	if source := c.extractSource(msg); source != "" {
		txn.Source = source
	} else {
		txn.Description = snippet(msg.Body)
	}

	txn.Hash = txn.GenerateHash()
	return txn, true
}

// extractAmount finds the first parseable monetary amount in the body,
// honoring thousands separators. Fractional kobo are rounded to whole naira.
func (c *Classifier) extractAmount(body string) (int64, bool) {
	match := c.amountRe.FindStringSubmatch(body)
	if match == nil {
		match = c.bareRe.FindStringSubmatch(body)
	}
	if match == nil {
		return 0, false
	}

	raw := strings.ReplaceAll(match[1], ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0, false
	}

	return int64(value + 0.5), true
}

// detectDirection picks the direction whose keyword appears earliest in the
// body. Messages matching neither keyword table are discarded.
func detectDirection(body string) (model.TransactionDirection, bool) {
	lower := strings.ToLower(body)

	creditIdx := earliestMatch(lower, creditKeywords)
	debitIdx := earliestMatch(lower, debitKeywords)

	switch {
	case creditIdx < 0 && debitIdx < 0:
		return "", false
	case debitIdx < 0 || (creditIdx >= 0 && creditIdx <= debitIdx):
		return model.DirectionCredit, true
	default:
		return model.DirectionDebit, true
	}
}

func earliestMatch(lower string, keywords []string) int {
	best := -1
	for _, kw := range keywords {
		if idx := strings.Index(lower, kw); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}

// extractSource resolves a counterparty label: a known institution alias in
// the sender or body wins, then the raw sender ID. Empty means the caller
// must fall back to a body snippet.
func (c *Classifier) extractSource(msg Message) string {
	senderLower := strings.ToLower(msg.Sender)
	bodyLower := strings.ToLower(msg.Body)

	for _, ia := range institutionAliases {
		if strings.Contains(senderLower, ia.alias) {
			return ia.name
		}
	}
	for _, ia := range institutionAliases {
		if strings.Contains(bodyLower, ia.alias) {
			return ia.name
		}
	}

	// Phone-number senders carry no label value
	sender := strings.TrimSpace(msg.Sender)
	if sender != "" && !c.digitsRe.MatchString(sender) {
		return sender
	}

	return ""
}

// snippet truncates the body for display when no source was found.
func snippet(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if len(body) <= snippetLength {
		return body
	}
	cut := body[:snippetLength]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
