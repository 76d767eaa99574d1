// Package source discovers and parses JSONL ledger exports.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// Record kinds routed by the top-level "kind" field.
const (
	KindTransaction = "transaction"
	KindSupplier    = "supplier"
	KindCustomer    = "customer"
	KindSKU         = "sku"
)

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	Ledger      model.Ledger
	ParseErrors int
	Err         error
}

// ParseFile reads a JSONL ledger file into a model.Ledger.
//
// Lines are routed by their top-level "kind" field; lines with any other kind
// (or none) are skipped without counting as errors. A line that fails to
// decode or carries an unparseable date, a negative amount, negative days or
// an unknown status is dropped and counted in ParseErrors. Records without an id get a random one.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var (
		ledger      model.Ledger
		parseErrors int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()

		kind := extractTopLevelKind(line)
		if kind == "" {
			continue
		}

		var rec RawRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			parseErrors++
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}

		switch kind {
		case KindTransaction:
			tx, err := toTransaction(rec)
			if err != nil {
				parseErrors++
				continue
			}
			ledger.Transactions = append(ledger.Transactions, tx)

		case KindSupplier:
			if err := checkDays(rec, rec.DPO); err != nil {
				parseErrors++
				continue
			}
			ledger.Suppliers = append(ledger.Suppliers, model.Supplier{
				ID:           rec.ID,
				Name:         rec.Name,
				PaymentTerms: rec.PaymentTerms,
				DPO:          rec.DPO,
			})

		case KindCustomer:
			if err := checkDays(rec, rec.DSO); err != nil {
				parseErrors++
				continue
			}
			ledger.Customers = append(ledger.Customers, model.Customer{
				ID:           rec.ID,
				Name:         rec.Name,
				PaymentTerms: rec.PaymentTerms,
				DSO:          rec.DSO,
			})

		case KindSKU:
			ledger.SKUs = append(ledger.SKUs, model.SKU{
				ID:   rec.ID,
				Code: rec.Code,
				Name: rec.Name,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}

	return ParseResult{
		Ledger:      ledger,
		ParseErrors: parseErrors,
	}
}

func toTransaction(rec RawRecord) (model.Transaction, error) {
	for _, d := range []string{rec.DateIn, rec.DateOut} {
		if d != "" && !validDate(d) {
			return model.Transaction{}, fmt.Errorf("transaction %s: bad date %q", rec.ID, d)
		}
	}
	for _, a := range []*float64{rec.CashIn, rec.CashOut} {
		if a != nil && *a < 0 {
			return model.Transaction{}, fmt.Errorf("transaction %s: negative amount %v", rec.ID, *a)
		}
	}

	status := model.TransactionStatus(rec.Status)
	switch status {
	case "", model.StatusPending, model.StatusCompleted, model.StatusCancelled:
	default:
		return model.Transaction{}, fmt.Errorf("transaction %s: unknown status %q", rec.ID, rec.Status)
	}

	return model.Transaction{
		ID:         rec.ID,
		Label:      rec.Label,
		SKU:        rec.SKU,
		SKUID:      rec.SKUID,
		Category:   rec.Category,
		CategoryID: rec.CategoryID,
		SupplierID: rec.SupplierID,
		CustomerID: rec.CustomerID,
		Status:     status,
		CashIn:     rec.CashIn,
		CashOut:    rec.CashOut,
		DateIn:     rec.DateIn,
		DateOut:    rec.DateOut,
	}, nil
}

// checkDays rejects negative outstanding days and payment terms.
func checkDays(rec RawRecord, outstanding *int) error {
	if outstanding != nil && *outstanding < 0 {
		return fmt.Errorf("%s %s: negative days outstanding %d", rec.Kind, rec.ID, *outstanding)
	}
	if rec.PaymentTerms != nil && *rec.PaymentTerms < 0 {
		return fmt.Errorf("%s %s: negative payment terms %d", rec.Kind, rec.ID, *rec.PaymentTerms)
	}
	return nil
}

// validDate accepts exactly the dates the cashflow engine can bucket.
func validDate(s string) bool {
	_, err := model.ParseDate(s)
	return err == nil
}

// kindKey is the byte sequence for a JSON key named "kind" (with quotes).
var kindKey = []byte(`"kind"`)

// extractTopLevelKind finds the top-level "kind" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "kind" keys are ignored.
func extractTopLevelKind(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], kindKey) {
				val, isKey := classifyKind(line, i+len(kindKey))
				if isKey {
					return val
				}
				// "kind" appeared as a value, not a key. Continue scanning.
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// classifyKind checks whether pos follows a JSON key (expects : then value).
// isKey=false means "kind" appeared as a value and the caller should continue.
func classifyKind(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++ // past opening quote

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 20 {
		return "", true
	}
	v := string(line[i : i+end])
	switch v {
	case KindTransaction, KindSupplier, KindCustomer, KindSKU:
		return v, true
	}
	return "", true
}

// skipJSONString advances past a JSON string starting at the opening quote.
//
//nolint:gosec // manual bounds checking throughout
func skipJSONString(line []byte, i int) int {
	i++ // skip opening quote
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
