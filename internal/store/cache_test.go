package store

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/cashpilot/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func intp(n int) *int { return &n }

func sampleLedger() model.Ledger {
	return model.Ledger{
		Transactions: []model.Transaction{
			{ID: "t1", Label: "Invoice", SupplierID: "s1", Status: model.StatusPending,
				CashOut: model.Amount(250.75), DateOut: "2024-02-01"},
			{ID: "t2", CustomerID: "c1", Status: model.StatusCompleted,
				CashIn: model.Amount(0), DateIn: "2024-02-03"},
		},
		Suppliers: []model.Supplier{{ID: "s1", Name: "Acme", PaymentTerms: intp(30), DPO: intp(18)}},
		Customers: []model.Customer{{ID: "c1", Name: "Initech"}},
		SKUs:      []model.SKU{{ID: "k1", Code: "WID-1", Name: "Widget"}},
	}
}

func TestCache_SaveAndLoad(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveFile("/data/a.jsonl", sampleLedger(), 100, 2048); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatalf("GetTrackedFiles: %v", err)
	}
	if fi := tracked["/data/a.jsonl"]; fi.MtimeNs != 100 || fi.SizeBytes != 2048 {
		t.Errorf("tracked = %+v, want mtime 100 size 2048", fi)
	}

	got, err := c.LoadFiles([]string{"/data/a.jsonl"})
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("Transactions = %d, want 2", len(got.Transactions))
	}

	t1 := got.Transactions[0]
	if t1.ID != "t1" || t1.Status != model.StatusPending || t1.CashIn != nil {
		t.Errorf("t1 = %+v", t1)
	}
	if t1.CashOut == nil || *t1.CashOut != 250.75 {
		t.Errorf("t1 CashOut = %v, want 250.75", t1.CashOut)
	}
	// A zero amount is present, not absent.
	if t2 := got.Transactions[1]; t2.CashIn == nil || *t2.CashIn != 0 {
		t.Errorf("t2 CashIn = %v, want pointer to 0", t2.CashIn)
	}

	if len(got.Suppliers) != 1 || got.Suppliers[0].DPO == nil || *got.Suppliers[0].DPO != 18 {
		t.Errorf("Suppliers = %+v", got.Suppliers)
	}
	if len(got.Customers) != 1 || got.Customers[0].DSO != nil {
		t.Errorf("Customers = %+v, want one with nil DSO", got.Customers)
	}
	if len(got.SKUs) != 1 || got.SKUs[0].Name != "Widget" {
		t.Errorf("SKUs = %+v", got.SKUs)
	}
}

func TestCache_SaveReplacesPreviousVersion(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveFile("/data/a.jsonl", sampleLedger(), 1, 1); err != nil {
		t.Fatal(err)
	}
	smaller := model.Ledger{Transactions: []model.Transaction{{ID: "only", CashIn: model.Amount(5)}}}
	if err := c.SaveFile("/data/a.jsonl", smaller, 2, 2); err != nil {
		t.Fatal(err)
	}

	n, err := c.TransactionCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("TransactionCount = %d, want 1", n)
	}

	got, err := c.LoadFiles([]string{"/data/a.jsonl"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Suppliers) != 0 || len(got.SKUs) != 0 {
		t.Errorf("stale rows survived: %+v", got)
	}
}

func TestCache_LoadFilesOrderAndFilter(t *testing.T) {
	c := openTestCache(t)

	for _, f := range []struct {
		path, id string
	}{
		{"/data/a.jsonl", "from-a"},
		{"/data/b.jsonl", "from-b"},
		{"/data/c.jsonl", "from-c"},
	} {
		l := model.Ledger{Transactions: []model.Transaction{{ID: f.id}}}
		if err := c.SaveFile(f.path, l, 1, 1); err != nil {
			t.Fatal(err)
		}
	}

	got, err := c.LoadFiles([]string{"/data/c.jsonl", "/data/a.jsonl", "/data/missing.jsonl"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("Transactions = %d, want 2", len(got.Transactions))
	}
	if got.Transactions[0].ID != "from-c" || got.Transactions[1].ID != "from-a" {
		t.Errorf("order = %s, %s; want from-c, from-a", got.Transactions[0].ID, got.Transactions[1].ID)
	}
}

func TestCache_DeleteFile(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveFile("/data/a.jsonl", sampleLedger(), 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteFile("/data/a.jsonl"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatal(err)
	}
	if len(tracked) != 0 {
		t.Errorf("tracked = %v, want none", tracked)
	}
	if n, _ := c.TransactionCount(); n != 0 {
		t.Errorf("TransactionCount = %d, want 0 after delete", n)
	}
}
