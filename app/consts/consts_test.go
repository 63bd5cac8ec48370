package consts

import "testing"

func TestParseOrderStatus(t *testing.T) {
	valid := []string{"pending_payment", "ongoing", "completed", "cancelled"}
	for _, s := range valid {
		status, err := ParseOrderStatus(s)
		if err != nil {
			t.Errorf("ParseOrderStatus(%q) error: %v", s, err)
		}
		if string(status) != s {
			t.Errorf("ParseOrderStatus(%q) = %q", s, status)
		}
	}

	for _, s := range []string{"", "paid", "PENDING_PAYMENT", "done"} {
		if _, err := ParseOrderStatus(s); err == nil {
			t.Errorf("ParseOrderStatus(%q) seharusnya error", s)
		}
	}
}

func TestPaymentStatusTerminal(t *testing.T) {
	if PaymentStatusPending.Terminal() {
		t.Error("pending bukan status terminal")
	}

	for _, s := range []PaymentStatus{PaymentStatusVerified, PaymentStatusRejected, PaymentStatusExpired} {
		if !s.Terminal() {
			t.Errorf("%s seharusnya terminal", s)
		}
	}
}

func TestParsePaymentType(t *testing.T) {
	for _, s := range []string{"down_payment", "installment", "full_payment"} {
		if _, err := ParsePaymentType(s); err != nil {
			t.Errorf("ParsePaymentType(%q) error: %v", s, err)
		}
	}

	if _, err := ParsePaymentType("cash"); err == nil {
		t.Error("ParsePaymentType(\"cash\") seharusnya error")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"bank_transfer", "virtual_account"} {
		if _, err := ParsePaymentMethod(s); err != nil {
			t.Errorf("ParsePaymentMethod(%q) error: %v", s, err)
		}
	}

	if _, err := ParsePaymentMethod("credit_card"); err == nil {
		t.Error("ParsePaymentMethod(\"credit_card\") seharusnya error")
	}
}

func TestLabels(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{OrderStatusPendingPayment.Label(), "Menunggu Pembayaran"},
		{OrderStatusCancelled.Label(), "Dibatalkan"},
		{PaymentStatusVerified.Label(), "Terverifikasi"},
		{PaymentStatusExpired.Label(), "Kedaluwarsa"},
		{PaymentTypeDownPayment.Label(), "Uang Muka"},
		{PaymentMethodVirtualAccount.Label(), "Virtual Account"},
	}

	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("label = %q, ingin %q", c.got, c.want)
		}
	}
}
