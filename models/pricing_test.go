package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDiscountValidity(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	cases := []struct {
		name     string
		discount Discount
		want     bool
	}{
		{"active unbounded", Discount{Value: decimal.NewFromInt(10), IsActive: true}, true},
		{"inactive", Discount{Value: decimal.NewFromInt(10), IsActive: false}, false},
		{"inside window", Discount{Value: decimal.NewFromInt(10), IsActive: true, StartDate: timePtr(yesterday), ExpireDate: timePtr(tomorrow)}, true},
		{"not started", Discount{Value: decimal.NewFromInt(10), IsActive: true, StartDate: timePtr(tomorrow)}, false},
		{"expired", Discount{Value: decimal.NewFromInt(10), IsActive: true, ExpireDate: timePtr(yesterday)}, false},
		{"open start", Discount{Value: decimal.NewFromInt(10), IsActive: true, ExpireDate: timePtr(tomorrow)}, true},
		{"open end", Discount{Value: decimal.NewFromInt(10), IsActive: true, StartDate: timePtr(yesterday)}, true},
		{"starts exactly now", Discount{Value: decimal.NewFromInt(10), IsActive: true, StartDate: timePtr(now)}, true},
		{"expires exactly now", Discount{Value: decimal.NewFromInt(10), IsActive: true, ExpireDate: timePtr(now)}, true},
	}

	for _, tc := range cases {
		if got := tc.discount.IsValidAt(now); got != tc.want {
			t.Errorf("%s: IsValidAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDiscountApply(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		value    int64
		active   bool
		price    int64
		want     int64
	}{
		{"ten percent off 100", 10, true, 100, 90},
		{"fifteen percent off 72000000", 15, true, 72000000, 61200000},
		{"invalid leaves price", 10, false, 100, 100},
		{"full discount", 100, true, 500, 0},
		{"zero discount", 0, true, 500, 500},
		{"floors fractional result", 10, true, 99, 89},
		{"price zero", 50, true, 0, 0},
	}

	for _, tc := range cases {
		d := Discount{Value: decimal.NewFromInt(tc.value), IsActive: tc.active}
		got := d.ApplyAt(tc.price, now)
		if got != tc.want {
			t.Errorf("%s: ApplyAt(%d) = %d, want %d", tc.name, tc.price, got, tc.want)
		}
		if got < 0 || got > tc.price {
			t.Errorf("%s: result %d outside [0, %d]", tc.name, got, tc.price)
		}
	}
}

func TestDiscountApplyFractionalPercent(t *testing.T) {
	now := time.Now()
	d := Discount{Value: decimal.NewFromFloat(12.5), IsActive: true}

	// 12.5% of 1000 is exactly 125.
	if got := d.ApplyAt(1000, now); got != 875 {
		t.Errorf("ApplyAt(1000) = %d, want 875", got)
	}
	// 12.5% of 999 is 124.875; discounted 874.125 floors to 874.
	if got := d.ApplyAt(999, now); got != 874 {
		t.Errorf("ApplyAt(999) = %d, want 874", got)
	}
}

func TestProductFinalPrice(t *testing.T) {
	now := time.Now()

	noDiscount := Product{Price: 100}
	if got := noDiscount.FinalPriceAt(now); got != 100 {
		t.Errorf("FinalPriceAt without discount = %d, want 100", got)
	}

	discounted := Product{
		Price:    100,
		Discount: &Discount{Value: decimal.NewFromInt(10), IsActive: true},
	}
	if got := discounted.FinalPriceAt(now); got != 90 {
		t.Errorf("FinalPriceAt with 10%% discount = %d, want 90", got)
	}
	if discounted.HasValidDiscountAt(now) != true {
		t.Error("expected valid discount")
	}
}

func TestCartTotals(t *testing.T) {
	now := time.Now()

	discounted := &Product{
		Price:    100,
		Discount: &Discount{Value: decimal.NewFromInt(10), IsActive: true},
	}
	plain := &Product{Price: 250}

	cart := Cart{Items: []CartItem{
		{Product: discounted, Quantity: 2},
		{Product: plain, Quantity: 3},
	}}

	if got := cart.Subtotal(); got != 950 {
		t.Errorf("Subtotal = %d, want 950", got)
	}
	if got := cart.FinalTotalAt(now); got != 930 {
		t.Errorf("FinalTotal = %d, want 930", got)
	}
	if got := cart.DiscountTotalAt(now); got != 20 {
		t.Errorf("DiscountTotal = %d, want 20", got)
	}

	// subtotal - discount_total == final_total must hold exactly.
	if cart.Subtotal()-cart.DiscountTotalAt(now) != cart.FinalTotalAt(now) {
		t.Error("totals identity violated")
	}
}

func TestCartTotalsScenario(t *testing.T) {
	// price=100, 10% discount, qty=2: subtotal=200, final=180, discount=20.
	now := time.Now()
	product := &Product{
		Price:    100,
		Discount: &Discount{Value: decimal.NewFromInt(10), IsActive: true},
	}
	cart := Cart{Items: []CartItem{{Product: product, Quantity: 2}}}

	if got := cart.Subtotal(); got != 200 {
		t.Errorf("Subtotal = %d, want 200", got)
	}
	if got := cart.FinalTotalAt(now); got != 180 {
		t.Errorf("FinalTotal = %d, want 180", got)
	}
	if got := cart.DiscountTotalAt(now); got != 20 {
		t.Errorf("DiscountTotal = %d, want 20", got)
	}
}

func TestEmptyCartTotals(t *testing.T) {
	now := time.Now()
	cart := Cart{}
	if cart.Subtotal() != 0 || cart.FinalTotalAt(now) != 0 || cart.DiscountTotalAt(now) != 0 {
		t.Error("empty cart must total zero")
	}
}
