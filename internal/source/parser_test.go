package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// writeLedger creates a temp JSONL file and returns a DiscoveredFile for it.
func writeLedger(t *testing.T, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{Path: path, Book: "test-book"}
}

func TestParseFile_Transactions(t *testing.T) {
	df := writeLedger(t,
		`{"kind":"transaction","id":"t1","label":"Invoice 12","cash_in":1200.5,"date_in":"2024-03-01","customer_id":"c1","status":"completed"}`,
		`{"kind":"transaction","id":"t2","cash_out":300,"date_out":"2024-03-04T09:30:00Z","supplier_id":"s1","status":"pending"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", result.ParseErrors)
	}

	txs := result.Ledger.Transactions
	if len(txs) != 2 {
		t.Fatalf("Transactions = %d, want 2", len(txs))
	}
	if txs[0].CashIn == nil || *txs[0].CashIn != 1200.5 || txs[0].CashOut != nil {
		t.Errorf("t1 amounts = %v/%v, want 1200.5/nil", txs[0].CashIn, txs[0].CashOut)
	}
	if txs[0].Label != "Invoice 12" || txs[0].CustomerID != "c1" {
		t.Errorf("t1 = %+v", txs[0])
	}
	if txs[1].Status != model.StatusPending || txs[1].DateOut != "2024-03-04T09:30:00Z" {
		t.Errorf("t2 = %+v", txs[1])
	}
}

func TestParseFile_Entities(t *testing.T) {
	df := writeLedger(t,
		`{"kind":"supplier","id":"s1","name":"Acme","payment_terms":30,"dpo":22}`,
		`{"kind":"supplier","id":"s2","name":"Globex"}`,
		`{"kind":"customer","id":"c1","name":"Initech","dso":45}`,
		`{"kind":"sku","id":"k1","code":"WID-1","name":"Widget"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}

	l := result.Ledger
	if len(l.Suppliers) != 2 || len(l.Customers) != 1 || len(l.SKUs) != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/1", len(l.Suppliers), len(l.Customers), len(l.SKUs))
	}
	if l.Suppliers[0].DPO == nil || *l.Suppliers[0].DPO != 22 {
		t.Errorf("s1 DPO = %v, want 22", l.Suppliers[0].DPO)
	}
	if l.Suppliers[1].DPO != nil {
		t.Errorf("s2 DPO = %v, want nil", *l.Suppliers[1].DPO)
	}
	if l.Customers[0].DSO == nil || *l.Customers[0].DSO != 45 {
		t.Errorf("c1 DSO = %v, want 45", l.Customers[0].DSO)
	}
	if l.SKUs[0].Code != "WID-1" {
		t.Errorf("sku code = %q, want WID-1", l.SKUs[0].Code)
	}
}

func TestParseFile_MissingIDGetsUUID(t *testing.T) {
	df := writeLedger(t,
		`{"kind":"transaction","cash_in":10,"date_in":"2024-01-01"}`,
		`{"kind":"transaction","cash_in":10,"date_in":"2024-01-01"}`,
	)

	result := ParseFile(df)
	txs := result.Ledger.Transactions
	if len(txs) != 2 {
		t.Fatalf("Transactions = %d, want 2", len(txs))
	}
	for _, tx := range txs {
		if _, err := uuid.Parse(tx.ID); err != nil {
			t.Errorf("ID %q is not a uuid: %v", tx.ID, err)
		}
	}
	if txs[0].ID == txs[1].ID {
		t.Error("generated IDs collide")
	}
}

func TestParseFile_RejectsBadRecords(t *testing.T) {
	df := writeLedger(t,
		`{"kind":"transaction","id":"ok","cash_in":10,"date_in":"2024-01-01"}`,
		`{"kind":"transaction","id":"bad-date","cash_in":10,"date_in":"01/02/2024"}`,
		`{"kind":"transaction","id":"bad-day","cash_out":10,"date_out":"2024-02-30"}`,
		`{"kind":"transaction","id":"negative","cash_out":-5,"date_out":"2024-01-01"}`,
		`{"kind":"transaction","id":"status","cash_in":1,"status":"refunded"}`,
		`{"kind":"transaction","broken json`,
		`{"kind":"supplier","id":"s-ok","dpo":0}`,
		`{"kind":"supplier","id":"s-neg","dpo":-10}`,
		`{"kind":"supplier","id":"s-terms","payment_terms":-30}`,
		`{"kind":"customer","id":"c-ok","dso":45}`,
		`{"kind":"customer","id":"c-neg","dso":-1}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	l := result.Ledger
	if len(l.Transactions) != 1 || l.Transactions[0].ID != "ok" {
		t.Errorf("Transactions = %+v, want only ok", l.Transactions)
	}
	if len(l.Suppliers) != 1 || l.Suppliers[0].ID != "s-ok" {
		t.Errorf("Suppliers = %+v, want only s-ok", l.Suppliers)
	}
	if len(l.Customers) != 1 || l.Customers[0].ID != "c-ok" {
		t.Errorf("Customers = %+v, want only c-ok", l.Customers)
	}
	if result.ParseErrors != 8 {
		t.Errorf("ParseErrors = %d, want 8", result.ParseErrors)
	}
}

func TestParseFile_SkipsUnknownKinds(t *testing.T) {
	df := writeLedger(t,
		`not json at all`,
		`{"kind":"category","id":"x","name":"Rent"}`,
		`{"name":"no kind"}`,
		``,
		`{"kind":"sku","id":"k1","code":"A"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 0 {
		t.Errorf("ParseErrors = %d, want 0", result.ParseErrors)
	}
	if len(result.Ledger.SKUs) != 1 {
		t.Errorf("SKUs = %d, want 1", len(result.Ledger.SKUs))
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	df := writeLedger(t)
	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error on empty file: %v", result.Err)
	}
	if !result.Ledger.Empty() {
		t.Error("expected empty ledger for empty file")
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.jsonl")})
	if result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"acme/2024/q1.jsonl",
		"acme/2024/q2.jsonl",
		"globex.jsonl",
		"notes.txt",
		".trash/old.jsonl",
	} {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %d, want 3: %+v", len(files), files)
	}
	if got := CountBooks(files); got != 2 {
		t.Errorf("CountBooks = %d, want 2", got)
	}
	books := map[string]int{}
	for _, f := range files {
		books[f.Book]++
	}
	if books["acme"] != 2 || books["globex"] != 1 {
		t.Errorf("books = %v, want acme:2 globex:1", books)
	}
}

func TestScanDir_Missing(t *testing.T) {
	files, err := ScanDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || files != nil {
		t.Fatalf("ScanDir(missing) = %v, %v; want nil, nil", files, err)
	}
}

func TestExtractTopLevelKind(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"transaction", `{"kind":"transaction","id":"x"}`, "transaction"},
		{"supplier", `{"kind": "supplier","name":"A"}`, "supplier"},
		{"nested kind ignored", `{"meta":{"kind":"sku"},"kind":"customer"}`, "customer"},
		{"kind as value", `{"label":"kind","kind":"sku"}`, "sku"},
		{"unknown kind", `{"kind":"category"}`, ""},
		{"no kind field", `{"name":"hello"}`, ""},
		{"empty", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTopLevelKind([]byte(tt.input))
			if got != tt.want {
				t.Errorf("extractTopLevelKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// FuzzExtractTopLevelKind checks that the byte-level scanner never panics
// on arbitrary input.
func FuzzExtractTopLevelKind(f *testing.F) {
	f.Add([]byte(`{"kind":"transaction","cash_in":1}`))
	f.Add([]byte(`{"meta":{"kind":"nested"},"kind":"sku"}`))
	f.Add([]byte(`not json`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"kind":null}`))
	f.Add([]byte(`{"kind":123}`))
	f.Add([]byte(``))
	f.Add([]byte(`{"kind":"sku`)) // unterminated string

	f.Fuzz(func(t *testing.T, data []byte) {
		result := extractTopLevelKind(data)
		switch result {
		case "", KindTransaction, KindSupplier, KindCustomer, KindSKU:
		default:
			t.Errorf("unexpected kind %q from input %q", result, data)
		}
	})
}

func TestValidDate(t *testing.T) {
	tests := map[string]bool{
		"2024-02-29":           true,
		" 2024-02-29 ":         true,
		"2024-03-01T23:30:00Z": true,
		"2023-02-29":           false,
		"2024-2-1":             false,
		"":                     false,
	}
	for in, want := range tests {
		got := validDate(in)
		if got != want {
			t.Errorf("validDate(%q) = %v, want %v", in, got, want)
		}
		_, err := model.ParseDate(in)
		if (err == nil) != got {
			t.Errorf("validDate(%q) = %v disagrees with model.ParseDate err %v", in, got, err)
		}
	}
}
