package model

import (
	"errors"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrEncodingFailure = errors.New("payment code could not be generated")

const (
	transactionRefPrefix   = "TXN"
	transactionRefLength   = 9
	transactionRefAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// PaymentRequest is the payload of the scannable payment code. Every field is required
// by external scanners.
type PaymentRequest struct {
	PayeeID       string          `json:"payee_id"`
	PayeeName     string          `json:"payee_name"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note"`
	TransactionID string          `json:"transaction_id"`
	Currency      string          `json:"currency"`
	CategoryCode  string          `json:"category_code"`
}

func (r PaymentRequest) URI() string {
	params := []struct{ key, value string }{
		{"pa", r.PayeeID},
		{"pn", r.PayeeName},
		{"am", FormatAmount(r.Amount)},
		{"tn", r.Note},
		{"tr", r.TransactionID},
		{"cu", r.Currency},
		{"mc", r.CategoryCode},
	}

	var b strings.Builder
	b.WriteString("upi://pay?")
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(escapeParam(p.value))
	}
	return b.String()
}

func escapeParam(value string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
	return strings.ReplaceAll(escaped, "%40", "@")
}

// NewTransactionRef returns a display token like TXN4F7K2Q9ZA. It is not unique and
// must not be used to reconcile payments.
func NewTransactionRef() string {
	b := make([]byte, transactionRefLength)
	for i := range b {
		b[i] = transactionRefAlphabet[rand.IntN(len(transactionRefAlphabet))]
	}
	return transactionRefPrefix + string(b)
}
