package scoring

import (
	"sort"

	"github.com/theirongolddev/cashpilot/internal/model"
)

// ScoreSuppliers scores every supplier with a known DPO, riskiest first.
// Suppliers without a DPO are kept at the end, unscored, rather than being
// scored as DPO 0 (which would rank every supplier with missing data at 100).
func ScoreSuppliers(suppliers []model.Supplier) []model.EntityRisk {
	out := make([]model.EntityRisk, 0, len(suppliers))
	for _, s := range suppliers {
		er := model.EntityRisk{ID: s.ID, Name: s.Name}
		if s.DPO != nil {
			er.Days = *s.DPO
			er.Scored = true
			er.Result = SupplierScore(*s.DPO)
		}
		out = append(out, er)
	}
	sortByRisk(out)
	return out
}

// ScoreCustomers scores every customer with a known DSO, riskiest first.
// Customers without a DSO are kept at the end, unscored, rather than being
// scored as DSO 0.
func ScoreCustomers(customers []model.Customer) []model.EntityRisk {
	out := make([]model.EntityRisk, 0, len(customers))
	for _, c := range customers {
		er := model.EntityRisk{ID: c.ID, Name: c.Name}
		if c.DSO != nil {
			er.Days = *c.DSO
			er.Scored = true
			er.Result = CustomerScore(*c.DSO)
		}
		out = append(out, er)
	}
	sortByRisk(out)
	return out
}

func sortByRisk(rows []model.EntityRisk) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Scored != rows[j].Scored {
			return rows[i].Scored
		}
		return rows[i].Result.Score > rows[j].Result.Score
	})
}
