package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/core/ports"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
)

// Format is an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat validates a format name against the allowed set.
func ParseFormat(name string, allowed ...Format) (Format, error) {
	for _, f := range allowed {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

var ledgerHeader = []string{
	"transaction_id",
	"timestamp",
	"amount",
	"merchant",
	"country",
	"user_id",
	"is_fraud",
	"risk_score",
}

// WriteLedgerCSV writes the ledger with a header row, one record per line.
func WriteLedgerCSV(w io.Writer, ledger entities.Ledger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, tx := range ledger.Records() {
		row := []string{
			tx.TransactionID,
			tx.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(tx.Amount, 'f', ports.AmountPlaces, 64),
			string(tx.Merchant),
			string(tx.Country),
			tx.UserID,
			strconv.FormatBool(tx.IsFraud),
			strconv.FormatFloat(tx.RiskScore, 'f', ports.RiskScorePlaces, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
