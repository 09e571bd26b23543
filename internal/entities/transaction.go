package entities

import (
	"encoding/json"
	"iter"
	"slices"
	"time"
)

// Merchant is the merchant category of a transaction.
type Merchant string

const (
	MerchantAmazon  Merchant = "AMAZON"
	MerchantGoogle  Merchant = "GOOGLE"
	MerchantApple   Merchant = "APPLE"
	MerchantNetflix Merchant = "NETFLIX"
	MerchantUber    Merchant = "UBER"
	MerchantUnknown Merchant = "UNKNOWN"
	MerchantPayPal  Merchant = "PAYPAL"
)

// Merchants is the merchant vocabulary in draw order.
var Merchants = []Merchant{
	MerchantAmazon,
	MerchantGoogle,
	MerchantApple,
	MerchantNetflix,
	MerchantUber,
	MerchantUnknown,
	MerchantPayPal,
}

// Country is an ISO-like country code of a transaction.
type Country string

const (
	CountryUS Country = "US"
	CountryUK Country = "UK"
	CountryDE Country = "DE"
	CountryFR Country = "FR"
	CountryIN Country = "IN"
	CountryBR Country = "BR"
)

// Countries is the country vocabulary in draw order.
var Countries = []Country{CountryUS, CountryUK, CountryDE, CountryFR, CountryIN, CountryBR}

// Transaction is a single synthesized ledger record.
type Transaction struct {
	TransactionID string    `json:"transaction_id" yaml:"transaction_id"`
	Timestamp     time.Time `json:"timestamp"      yaml:"timestamp"`
	Amount        float64   `json:"amount"         yaml:"amount"`
	Merchant      Merchant  `json:"merchant"       yaml:"merchant"`
	Country       Country   `json:"country"        yaml:"country"`
	UserID        string    `json:"user_id"        yaml:"user_id"`
	IsFraud       bool      `json:"is_fraud"       yaml:"is_fraud"`
	RiskScore     float64   `json:"risk_score"     yaml:"risk_score"`
}

// Ledger is an immutable ordered sequence of transactions.
type Ledger struct {
	records []Transaction
}

// NewLedger copies records into a new ledger.
func NewLedger(records []Transaction) Ledger {
	return Ledger{records: slices.Clone(records)}
}

func (l Ledger) Len() int {
	return len(l.records)
}

func (l Ledger) IsEmpty() bool {
	return len(l.records) == 0
}

// At returns the i-th record in ledger order. It panics if i is out of range.
func (l Ledger) At(i int) Transaction {
	return l.records[i]
}

// Records iterates the ledger in order.
func (l Ledger) Records() iter.Seq2[int, Transaction] {
	return slices.All(l.records)
}

// Slice returns a copy of the records.
func (l Ledger) Slice() []Transaction {
	return slices.Clone(l.records)
}

// Window returns a copy of at most limit records starting at offset.
func (l Ledger) Window(offset, limit int) []Transaction {
	if offset < 0 || offset >= len(l.records) || limit <= 0 {
		return []Transaction{}
	}
	end := min(offset+limit, len(l.records))
	return slices.Clone(l.records[offset:end])
}

func (l Ledger) MarshalJSON() ([]byte, error) {
	if l.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.records)
}

func (l Ledger) MarshalYAML() (any, error) {
	return l.records, nil
}
