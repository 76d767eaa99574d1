package source

// RawRecord is a single line of a JSONL ledger export. Kind selects which
// of the remaining fields are meaningful.
type RawRecord struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`

	// kind "transaction"
	Label      string   `json:"label,omitempty"`
	SKU        string   `json:"sku,omitempty"`
	SKUID      string   `json:"sku_id,omitempty"`
	Category   string   `json:"category,omitempty"`
	CategoryID string   `json:"category_id,omitempty"`
	SupplierID string   `json:"supplier_id,omitempty"`
	CustomerID string   `json:"customer_id,omitempty"`
	Status     string   `json:"status,omitempty"`
	CashIn     *float64 `json:"cash_in,omitempty"`
	CashOut    *float64 `json:"cash_out,omitempty"`
	DateIn     string   `json:"date_in,omitempty"`
	DateOut    string   `json:"date_out,omitempty"`

	// kind "supplier" and "customer"
	Name         string `json:"name,omitempty"`
	PaymentTerms *int   `json:"payment_terms,omitempty"`
	DPO          *int   `json:"dpo,omitempty"`
	DSO          *int   `json:"dso,omitempty"`

	// kind "sku"
	Code string `json:"code,omitempty"`
}

// DiscoveredFile represents a JSONL ledger file found during directory scanning.
type DiscoveredFile struct {
	Path string
	Book string // first directory under the data dir, or the file name for top-level files
}
