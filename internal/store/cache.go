// Package store provides a SQLite-backed cache for parsed ledger files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/cashpilot/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	roleSupplier = "supplier"
	roleCustomer = "customer"
)

// Cache provides SQLite-backed ledger caching, one entry per source file.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFile replaces everything cached for filePath with ledger and records
// the file's mtime and size, all in one transaction.
func (c *Cache) SaveFile(filePath string, ledger model.Ledger, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Cascades to every row parsed from the previous version of the file.
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT INTO file_tracker (file_path, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?)`, filePath, mtimeNs, sizeBytes, now)
	if err != nil {
		return err
	}

	for i, t := range ledger.Transactions {
		_, err = tx.Exec(`INSERT INTO transactions
			(file_path, seq, id, label, sku, sku_id, category, category_id,
			 supplier_id, customer_id, status, cash_in, cash_out, date_in, date_out)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			filePath, i, t.ID, t.Label, t.SKU, t.SKUID, t.Category, t.CategoryID,
			t.SupplierID, t.CustomerID, string(t.Status),
			nullFloat(t.CashIn), nullFloat(t.CashOut), t.DateIn, t.DateOut,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	for i, s := range ledger.Suppliers {
		if err := insertParty(tx, filePath, roleSupplier, i, s.ID, s.Name, s.PaymentTerms, s.DPO); err != nil {
			return err
		}
	}
	for i, cu := range ledger.Customers {
		if err := insertParty(tx, filePath, roleCustomer, i, cu.ID, cu.Name, cu.PaymentTerms, cu.DSO); err != nil {
			return err
		}
	}

	for i, s := range ledger.SKUs {
		_, err = tx.Exec(`INSERT INTO skus (file_path, seq, id, code, name) VALUES (?, ?, ?, ?, ?)`,
			filePath, i, s.ID, s.Code, s.Name)
		if err != nil {
			return fmt.Errorf("inserting sku %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

func insertParty(tx *sql.Tx, filePath, role string, seq int, id, name string, terms, days *int) error {
	_, err := tx.Exec(`INSERT INTO parties
		(file_path, seq, role, id, name, payment_terms, days_outstanding)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		filePath, seq, role, id, name, nullInt(terms), nullInt(days))
	if err != nil {
		return fmt.Errorf("inserting %s %s: %w", role, id, err)
	}
	return nil
}

// LoadFiles reads the cached ledgers of the given files, merged in file
// order and then record order. Untracked paths contribute nothing.
func (c *Cache) LoadFiles(paths []string) (model.Ledger, error) {
	var ledger model.Ledger
	if len(paths) == 0 {
		return ledger, nil
	}

	order := make(map[string]int, len(paths))
	for i, p := range paths {
		order[p] = i
	}
	perFile := make([]model.Ledger, len(paths))

	if err := c.loadTransactions(order, perFile); err != nil {
		return ledger, fmt.Errorf("loading transactions: %w", err)
	}
	if err := c.loadParties(order, perFile); err != nil {
		return ledger, fmt.Errorf("loading parties: %w", err)
	}
	if err := c.loadSKUs(order, perFile); err != nil {
		return ledger, fmt.Errorf("loading skus: %w", err)
	}

	for _, l := range perFile {
		ledger.Merge(l)
	}
	return ledger, nil
}

func (c *Cache) loadTransactions(order map[string]int, perFile []model.Ledger) error {
	rows, err := c.db.Query(`SELECT
		file_path, id, label, sku, sku_id, category, category_id,
		supplier_id, customer_id, status, cash_in, cash_out, date_in, date_out
		FROM transactions ORDER BY file_path, seq`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			path            string
			t               model.Transaction
			status          string
			cashIn, cashOut sql.NullFloat64
		)
		err := rows.Scan(&path, &t.ID, &t.Label, &t.SKU, &t.SKUID, &t.Category, &t.CategoryID,
			&t.SupplierID, &t.CustomerID, &status, &cashIn, &cashOut, &t.DateIn, &t.DateOut)
		if err != nil {
			return err
		}
		idx, ok := order[path]
		if !ok {
			continue
		}
		t.Status = model.TransactionStatus(status)
		t.CashIn = floatPtr(cashIn)
		t.CashOut = floatPtr(cashOut)
		perFile[idx].Transactions = append(perFile[idx].Transactions, t)
	}
	return rows.Err()
}

func (c *Cache) loadParties(order map[string]int, perFile []model.Ledger) error {
	rows, err := c.db.Query(`SELECT
		file_path, role, id, name, payment_terms, days_outstanding
		FROM parties ORDER BY file_path, role, seq`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			path, role, id, name string
			terms, days          sql.NullInt64
		)
		if err := rows.Scan(&path, &role, &id, &name, &terms, &days); err != nil {
			return err
		}
		idx, ok := order[path]
		if !ok {
			continue
		}
		switch role {
		case roleSupplier:
			perFile[idx].Suppliers = append(perFile[idx].Suppliers, model.Supplier{
				ID: id, Name: name, PaymentTerms: intPtr(terms), DPO: intPtr(days),
			})
		case roleCustomer:
			perFile[idx].Customers = append(perFile[idx].Customers, model.Customer{
				ID: id, Name: name, PaymentTerms: intPtr(terms), DSO: intPtr(days),
			})
		}
	}
	return rows.Err()
}

func (c *Cache) loadSKUs(order map[string]int, perFile []model.Ledger) error {
	rows, err := c.db.Query("SELECT file_path, id, code, name FROM skus ORDER BY file_path, seq")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var path string
		var s model.SKU
		if err := rows.Scan(&path, &s.ID, &s.Code, &s.Name); err != nil {
			return err
		}
		if idx, ok := order[path]; ok {
			perFile[idx].SKUs = append(perFile[idx].SKUs, s)
		}
	}
	return rows.Err()
}

// DeleteFile removes a file's tracking entry and every record parsed from it.
func (c *Cache) DeleteFile(filePath string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath)
	return err
}

// TransactionCount returns the number of cached transactions.
func (c *Cache) TransactionCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
