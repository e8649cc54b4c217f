package domain

import "testing"

func TestTripPayReinforcement(t *testing.T) {
	if got := TripPay(CategoryReinforcement, 100, 0, 0); got != 110000 {
		t.Fatalf("expected 110000, got %v", got)
	}
	// trip without distance falls back to the route distance
	if got := TripPay(CategoryReinforcement, 0, 42.5, 0); got != 46750 {
		t.Fatalf("expected 46750, got %v", got)
	}
	if got := TripPay(CategoryReinforcement, 0, 0, 5000000); got != 0 {
		t.Fatalf("expected 0 without any distance, got %v", got)
	}
}

func TestTripPayStandardIgnoresMonthLength(t *testing.T) {
	if got := TripPay(CategoryStandard, 250, 250, 3000000); got != 100000 {
		t.Fatalf("expected 100000, got %v", got)
	}
	if got := TripPay(CategoryStandard, 0, 0, 0); got != 0 {
		t.Fatalf("expected 0 without a rate, got %v", got)
	}
	got := TripPay(CategoryStandard, 0, 0, 1000000)
	if got < 33333.33 || got > 33333.34 {
		t.Fatalf("expected unrounded 1000000/30, got %v", got)
	}
}

func TestFuelCost(t *testing.T) {
	cases := []struct {
		price, liters float64
		want          int64
	}{
		{19020, 50, 951000},
		{19020, 12.345, 234802},
		{0, 50, 0},
		{10000.5, 1, 10001},
	}
	for _, c := range cases {
		if got := FuelCost(c.price, c.liters); got != c.want {
			t.Fatalf("FuelCost(%v, %v) = %d, want %d", c.price, c.liters, got, c.want)
		}
	}
}

func TestFinanceTotalAppliesDiscountThenVAT(t *testing.T) {
	if got := FinanceTotal(1000000, 10, 5); got != 1045000 {
		t.Fatalf("expected 1045000, got %v", got)
	}
	if got := FinanceTotal(1000000, 0, 0); got != 1000000 {
		t.Fatalf("expected 1000000, got %v", got)
	}
	if got := FinanceTotal(333, 10, 0); got != 366 {
		t.Fatalf("expected 366, got %v", got)
	}
}

func TestParseRouteCategory(t *testing.T) {
	if ParseRouteCategory("Reinforcement") != CategoryReinforcement {
		t.Fatalf("reinforcement not parsed")
	}
	if ParseRouteCategory("extra") != CategoryReinforcement {
		t.Fatalf("extra alias not parsed")
	}
	if ParseRouteCategory("NA_002") != CategoryStandard {
		t.Fatalf("unknown value should be standard")
	}
}
