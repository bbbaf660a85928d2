package models

import (
	"testing"
	"time"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusDraft, OrderStatusPendingPayment, true},
		{OrderStatusDraft, OrderStatusPaid, false},
		{OrderStatusPendingPayment, OrderStatusPaid, true},
		{OrderStatusPendingPayment, OrderStatusCancelled, true},
		{OrderStatusPendingPayment, OrderStatusShipped, false},
		{OrderStatusPendingPayment, OrderStatusDelivered, false},
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusPaid, OrderStatusRefunded, true},
		{OrderStatusPaid, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusRefunded, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
		{OrderStatusDelivered, OrderStatusRefunded, false},
		{OrderStatusRefunded, OrderStatusPendingPayment, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestPaymentExpiredAt(t *testing.T) {
	now := time.Now()

	pendingDue := Order{Status: OrderStatusPendingPayment, PayDeadline: now.Add(-time.Minute)}
	if !pendingDue.PaymentExpiredAt(now) {
		t.Error("pending order past deadline must be expired")
	}

	pendingFresh := Order{Status: OrderStatusPendingPayment, PayDeadline: now.Add(time.Hour)}
	if pendingFresh.PaymentExpiredAt(now) {
		t.Error("pending order before deadline must not be expired")
	}

	// A cancelled order never re-triggers the transition.
	cancelled := Order{Status: OrderStatusCancelled, PayDeadline: now.Add(-time.Hour)}
	if cancelled.PaymentExpiredAt(now) {
		t.Error("cancelled order must not report payment expiry")
	}

	paid := Order{Status: OrderStatusPaid, PayDeadline: now.Add(-time.Hour)}
	if paid.PaymentExpiredAt(now) {
		t.Error("paid order must not report payment expiry")
	}
}
