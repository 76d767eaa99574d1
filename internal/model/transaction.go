// Package model defines domain types for cashpilot ledgers and metrics.
package model

// TransactionStatus is the settlement state of a ledger transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// CashRecord is the minimal shape the cashflow engine works on.
// A nil amount is absent; an empty date is absent. An amount without its
// paired date still counts toward flat totals but is never bucketed by date.
type CashRecord struct {
	CashIn  *float64
	CashOut *float64
	DateIn  string
	DateOut string
}

// Transaction is one ledger entry as exported by the bookkeeping side.
type Transaction struct {
	ID         string
	Label      string
	SKU        string
	SKUID      string
	Category   string
	CategoryID string
	SupplierID string
	CustomerID string
	Status     TransactionStatus

	CashIn  *float64
	CashOut *float64
	DateIn  string
	DateOut string
}

// Cash narrows the transaction to the fields the engine needs.
func (t Transaction) Cash() CashRecord {
	return CashRecord{
		CashIn:  t.CashIn,
		CashOut: t.CashOut,
		DateIn:  t.DateIn,
		DateOut: t.DateOut,
	}
}

// Supplier is a vendor the business pays.
type Supplier struct {
	ID           string
	Name         string
	PaymentTerms *int
	DPO          *int // days payable outstanding
}

// Customer is a buyer the business collects from.
type Customer struct {
	ID           string
	Name         string
	PaymentTerms *int
	DSO          *int // days sales outstanding
}

// SKU is a stock-keeping unit referenced by transactions.
type SKU struct {
	ID   string
	Code string
	Name string
}

// Ledger groups every record loaded from one or more ledger files.
type Ledger struct {
	Transactions []Transaction
	Suppliers    []Supplier
	Customers    []Customer
	SKUs         []SKU
}

// Merge appends other's records to l.
func (l *Ledger) Merge(other Ledger) {
	l.Transactions = append(l.Transactions, other.Transactions...)
	l.Suppliers = append(l.Suppliers, other.Suppliers...)
	l.Customers = append(l.Customers, other.Customers...)
	l.SKUs = append(l.SKUs, other.SKUs...)
}

// Empty reports whether the ledger holds no records at all.
func (l Ledger) Empty() bool {
	return len(l.Transactions) == 0 && len(l.Suppliers) == 0 &&
		len(l.Customers) == 0 && len(l.SKUs) == 0
}

// Amount returns a pointer to v, for building records in code and tests.
func Amount(v float64) *float64 {
	return &v
}
