package pipeline

import (
	"sort"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// topN is the length of every insight list.
const topN = 5

// PartyStats aggregates one supplier or customer across transactions.
type PartyStats struct {
	ID           string
	Name         string
	Value        float64
	Count        int
	PendingValue float64
}

// SKUStats aggregates one SKU across transactions.
type SKUStats struct {
	ID    string
	Name  string
	Value float64 // cash in + cash out
	Count int
}

// Insights holds the top-N lists shown on the dashboard.
type Insights struct {
	TopSuppliersByValue []PartyStats
	TopSuppliersByFreq  []PartyStats
	RiskSuppliers       []PartyStats // most pending cash out
	TopCustomersByValue []PartyStats
	TopCustomersByFreq  []PartyStats
	RiskCustomers       []PartyStats // most pending cash in
	TopSKUsByValue      []SKUStats
	TopSKUsByFreq       []SKUStats
}

// BuildInsights ranks suppliers (by cash out), customers (by cash in) and
// SKUs (by total cash moved) across the ledger's transactions.
func BuildInsights(ledger model.Ledger) Insights {
	if len(ledger.Transactions) == 0 {
		return Insights{}
	}

	supplierNames := make(map[string]string, len(ledger.Suppliers))
	for _, s := range ledger.Suppliers {
		supplierNames[s.ID] = s.Name
	}
	customerNames := make(map[string]string, len(ledger.Customers))
	for _, c := range ledger.Customers {
		customerNames[c.ID] = c.Name
	}
	skuNames := make(map[string]string, len(ledger.SKUs))
	for _, s := range ledger.SKUs {
		name := s.Name
		if name == "" {
			name = s.Code
		}
		skuNames[s.ID] = name
	}

	var supplierOrder, customerOrder, skuOrder []string
	suppliers := make(map[string]*PartyStats)
	customers := make(map[string]*PartyStats)
	skus := make(map[string]*SKUStats)

	for _, t := range ledger.Transactions {
		if t.SupplierID != "" && nonZero(t.CashOut) {
			ps, ok := suppliers[t.SupplierID]
			if !ok {
				ps = &PartyStats{ID: t.SupplierID, Name: nameOr(supplierNames, t.SupplierID)}
				suppliers[t.SupplierID] = ps
				supplierOrder = append(supplierOrder, t.SupplierID)
			}
			ps.Value += *t.CashOut
			ps.Count++
			if t.Status == model.StatusPending {
				ps.PendingValue += *t.CashOut
			}
		}

		if t.CustomerID != "" && nonZero(t.CashIn) {
			ps, ok := customers[t.CustomerID]
			if !ok {
				ps = &PartyStats{ID: t.CustomerID, Name: nameOr(customerNames, t.CustomerID)}
				customers[t.CustomerID] = ps
				customerOrder = append(customerOrder, t.CustomerID)
			}
			ps.Value += *t.CashIn
			ps.Count++
			if t.Status == model.StatusPending {
				ps.PendingValue += *t.CashIn
			}
		}

		if t.SKUID != "" {
			ss, ok := skus[t.SKUID]
			if !ok {
				ss = &SKUStats{ID: t.SKUID, Name: nameOr(skuNames, t.SKUID)}
				skus[t.SKUID] = ss
				skuOrder = append(skuOrder, t.SKUID)
			}
			ss.Value += valueOf(t.CashIn) + valueOf(t.CashOut)
			ss.Count++
		}
	}

	supplierRows := collect(supplierOrder, suppliers)
	customerRows := collect(customerOrder, customers)
	skuRows := collect(skuOrder, skus)

	return Insights{
		TopSuppliersByValue: topBy(supplierRows, func(p PartyStats) float64 { return p.Value }),
		TopSuppliersByFreq:  topBy(supplierRows, func(p PartyStats) float64 { return float64(p.Count) }),
		RiskSuppliers:       topBy(withPending(supplierRows), func(p PartyStats) float64 { return p.PendingValue }),
		TopCustomersByValue: topBy(customerRows, func(p PartyStats) float64 { return p.Value }),
		TopCustomersByFreq:  topBy(customerRows, func(p PartyStats) float64 { return float64(p.Count) }),
		RiskCustomers:       topBy(withPending(customerRows), func(p PartyStats) float64 { return p.PendingValue }),
		TopSKUsByValue:      topBy(skuRows, func(s SKUStats) float64 { return s.Value }),
		TopSKUsByFreq:       topBy(skuRows, func(s SKUStats) float64 { return float64(s.Count) }),
	}
}

func collect[T any](order []string, m map[string]*T) []T {
	rows := make([]T, 0, len(order))
	for _, id := range order {
		rows = append(rows, *m[id])
	}
	return rows
}

// topBy returns the topN rows by key, descending. Ties keep input order.
func topBy[T any](rows []T, key func(T) float64) []T {
	sorted := make([]T, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	return sorted
}

func withPending(rows []PartyStats) []PartyStats {
	var out []PartyStats
	for _, r := range rows {
		if r.PendingValue > 0 {
			out = append(out, r)
		}
	}
	return out
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return "Unknown"
}

func nonZero(v *float64) bool {
	return v != nil && *v != 0
}

func valueOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
