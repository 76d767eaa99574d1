package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/theirongolddev/cashpilot/internal/model"
)

func TestAggregateByWeek_EmptyInput(t *testing.T) {
	for name, records := range map[string][]model.CashRecord{
		"nil":     nil,
		"empty":   {},
		"undated": {{CashIn: amt(100)}, {CashOut: amt(40)}},
	} {
		if got := AggregateByWeek(records, 0); got == nil || len(got) != 0 {
			t.Errorf("%s: AggregateByWeek = %#v, want empty slice", name, got)
		}
		if got := AggregateByYear(records, 0); got == nil || len(got) != 0 {
			t.Errorf("%s: AggregateByYear = %#v, want empty slice", name, got)
		}
	}
}

func TestAggregateByWeek_RunningBalanceIsCumulative(t *testing.T) {
	got := AggregateByWeek([]model.CashRecord{
		{CashIn: amt(1000), DateIn: "2024-01-02"},
		{CashIn: amt(200), DateIn: "2024-01-04"},
		{CashIn: amt(2000), DateIn: "2024-01-09"},
	}, 0)

	want := []model.ChartDataPoint{
		{Date: "2024-W01", Balance: 1200, Networth: 1200},
		{Date: "2024-W02", Balance: 3200, Networth: 3200},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AggregateByWeek = %+v, want %+v", got, want)
	}
}

func TestAggregateByWeek_SplitsLegsAcrossWeeks(t *testing.T) {
	got := AggregateByWeek([]model.CashRecord{
		{CashIn: amt(500), DateIn: "2024-03-15", CashOut: amt(200), DateOut: "2024-03-01"},
	}, 0)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2024-W09" || got[0].Balance != -200 {
		t.Errorf("first bucket = %+v, want 2024-W09 / -200", got[0])
	}
	if got[1].Date != "2024-W11" || got[1].Balance != 300 {
		t.Errorf("second bucket = %+v, want 2024-W11 / 300", got[1])
	}
}

func TestAggregateByWeek_SortsAcrossYearBoundary(t *testing.T) {
	got := AggregateByWeek([]model.CashRecord{
		{CashIn: amt(10), DateIn: "2026-01-07"},
		{CashIn: amt(5), DateIn: "2025-12-30"},
		{CashIn: amt(1), DateIn: "2025-12-22"},
	}, 0)
	var keys []string
	for _, p := range got {
		keys = append(keys, p.Date)
	}
	want := []string{"2025-W52", "2026-W01", "2026-W02"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}

func TestAggregateByWeek_FixedCostAmortizedByMonth(t *testing.T) {
	got := AggregateByWeek([]model.CashRecord{
		{CashIn: amt(5000), DateIn: "2024-01-10"},
		{CashOut: amt(1000), DateOut: "2024-03-05"},
	}, 500)

	want := []model.ChartDataPoint{
		{Date: "2024-W02", Balance: 5000, Networth: 5000},
		{Date: "2024-W10", Balance: 4000, Networth: 3000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AggregateByWeek = %+v, want %+v", got, want)
	}
}

func TestAggregateByWeek_ZeroAmountsStillBucket(t *testing.T) {
	got := AggregateByWeek([]model.CashRecord{{CashIn: amt(0), DateIn: "2024-05-01"}}, 0)
	if len(got) != 1 || got[0].Balance != 0 {
		t.Fatalf("AggregateByWeek = %+v, want one zero bucket", got)
	}
}

func TestAggregateByWeek_SkipsInvalidDates(t *testing.T) {
	got := AggregateByWeek([]model.CashRecord{
		{CashIn: amt(100), DateIn: "2024-05-01"},
		{CashIn: amt(999), DateIn: "05/02/2024"},
	}, 0)
	if len(got) != 1 || got[0].Balance != 100 {
		t.Fatalf("AggregateByWeek = %+v, want only the valid event", got)
	}
}

func TestAggregateByYear(t *testing.T) {
	records := []model.CashRecord{
		{CashIn: amt(100), DateIn: "2023-06-01"},
		{CashOut: amt(30), DateOut: "2024-02-01"},
		{CashIn: amt(50), DateIn: "2024-09-01"},
	}

	got := AggregateByYear(records, 0)
	want := []model.ChartDataPoint{
		{Date: "2023", Balance: 100, Networth: 100},
		{Date: "2024", Balance: 120, Networth: 120},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AggregateByYear = %+v, want %+v", got, want)
	}

	// 2024 is 7 months after the first event (2023-06-01 -> 2024-01-01).
	withCost := AggregateByYear(records, 10)
	if withCost[1].Networth != 120-70 {
		t.Errorf("2024 networth = %v, want 50", withCost[1].Networth)
	}
}

func TestAggregateByWeek_Idempotent(t *testing.T) {
	records := []model.CashRecord{
		{CashIn: amt(1000), DateIn: "2024-01-02", CashOut: amt(20), DateOut: "2024-02-14"},
		{CashOut: amt(75.5), DateOut: "2024-01-20"},
	}
	first := AggregateByWeek(records, 300)
	second := AggregateByWeek(records, 300)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between calls:\n%+v\n%+v", first, second)
	}
}

func TestAggregateByWeek_NonFiniteInputs(t *testing.T) {
	records := []model.CashRecord{
		{CashIn: amt(100), DateIn: "2024-03-04"},
		{CashIn: amt(math.NaN()), DateIn: "2024-03-05"},
		{CashOut: amt(math.Inf(1)), DateOut: "2024-03-06"},
	}

	for _, cost := range []float64{math.Inf(1), math.NaN()} {
		got := AggregateByWeek(records, cost)
		want := []model.ChartDataPoint{{Date: "2024-W10", Balance: 100, Networth: 100}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("fixedCost %v: got %+v, want %+v", cost, got, want)
		}
	}
}
