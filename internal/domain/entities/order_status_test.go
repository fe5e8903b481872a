package entities

import "testing"

var allStatuses = []OrderStatus{
	OrderStatusAwaitingPayment,
	OrderStatusPending,
	OrderStatusChallenge,
	OrderStatusPaid,
	OrderStatusProvisioning,
	OrderStatusActive,
	OrderStatusFailed,
	OrderStatusFailedInvalidPackage,
	OrderStatusFailedServerCreationExternalAPI,
	OrderStatusFailedServerCreationAPICallError,
	OrderStatusFailedPromoExhausted,
}

func TestCanTransition_TerminalStatusesHaveNoSuccessor(t *testing.T) {
	for _, from := range allStatuses {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range allStatuses {
			if CanTransition(from, to) {
				t.Fatalf("terminal %s must not move to %s", from, to)
			}
		}
	}
}

func TestCanTransition_NeverMovesBackward(t *testing.T) {
	rank := map[OrderStatus]int{
		OrderStatusAwaitingPayment: 0,
		OrderStatusPending:         1,
		OrderStatusChallenge:       2,
		OrderStatusPaid:            3,
		OrderStatusProvisioning:    4,
	}
	for from, fr := range rank {
		for to, tr := range rank {
			if tr <= fr && CanTransition(from, to) {
				t.Fatalf("expected %s -> %s to be rejected", from, to)
			}
		}
	}
}

func TestCanTransition_Paths(t *testing.T) {
	allowed := [][2]OrderStatus{
		{OrderStatusAwaitingPayment, OrderStatusPaid},
		{OrderStatusPending, OrderStatusChallenge},
		{OrderStatusChallenge, OrderStatusPaid},
		{OrderStatusPaid, OrderStatusProvisioning},
		{OrderStatusProvisioning, OrderStatusActive},
		{OrderStatusProvisioning, OrderStatusFailedServerCreationExternalAPI},
		{OrderStatusPending, OrderStatusFailedPromoExhausted},
	}
	for _, p := range allowed {
		if !CanTransition(p[0], p[1]) {
			t.Fatalf("expected %s -> %s to be allowed", p[0], p[1])
		}
	}

	denied := [][2]OrderStatus{
		{OrderStatusAwaitingPayment, OrderStatusActive},
		{OrderStatusAwaitingPayment, OrderStatusProvisioning},
		{OrderStatusPaid, OrderStatusActive},
		{OrderStatusPaid, OrderStatusFailed},
		{OrderStatusChallenge, OrderStatusPending},
	}
	for _, p := range denied {
		if CanTransition(p[0], p[1]) {
			t.Fatalf("expected %s -> %s to be denied", p[0], p[1])
		}
	}
}

func TestOrderStatus_Predicates(t *testing.T) {
	for _, s := range allStatuses {
		if !s.Known() {
			t.Fatalf("expected %s to be known", s)
		}
	}
	if OrderStatus("refunded").Known() {
		t.Fatalf("unexpected known status")
	}
	if !OrderStatusFailedPromoExhausted.IsTerminal() || OrderStatusProvisioning.IsTerminal() {
		t.Fatalf("unexpected terminal classification")
	}
	if OrderStatusPaid.AcceptsPaymentUpdates() || !OrderStatusChallenge.AcceptsPaymentUpdates() {
		t.Fatalf("unexpected payment update classification")
	}
}

func TestMapProviderStatus(t *testing.T) {
	cases := []struct {
		status, fraud string
		want          OrderStatus
		ok            bool
	}{
		{"SUCCESS", "", OrderStatusPaid, true},
		{"settlement", "accept", OrderStatusPaid, true},
		{"capture", "", OrderStatusPaid, true},
		{"capture", "challenge", OrderStatusChallenge, true},
		{"settlement", "deny", OrderStatusFailed, true},
		{"PENDING", "", OrderStatusPending, true},
		{"EXPIRED", "", OrderStatusFailed, true},
		{"expire", "", OrderStatusFailed, true},
		{"cancel", "", OrderStatusFailed, true},
		{"CANCELLED", "", OrderStatusFailed, true},
		{"deny", "", OrderStatusFailed, true},
		{"FAILED", "", OrderStatusFailed, true},
		{"refund", "", "", false},
		{"authorize", "", "", false},
		{"capture", "weird", "", false},
	}
	for _, c := range cases {
		got, ok := MapProviderStatus(c.status, c.fraud)
		if got != c.want || ok != c.ok {
			t.Fatalf("MapProviderStatus(%q,%q): expected (%s,%v), got (%s,%v)", c.status, c.fraud, c.want, c.ok, got, ok)
		}
	}
}
