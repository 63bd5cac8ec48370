package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
)

func testOrder() *Order {
	return &Order{
		Price:               decimal.NewFromInt(50_000_000),
		PaidAmount:          decimal.Zero,
		RemainingAmount:     decimal.NewFromInt(50_000_000),
		DownPaymentAmount:   decimal.NewFromInt(15_000_000),
		RequiresDownPayment: true,
		Status:              consts.OrderStatusPendingPayment,
	}
}

func TestDerivePaymentAmount(t *testing.T) {
	cases := []struct {
		name        string
		paymentType consts.PaymentType
		input       string
		want        string
	}{
		{"dp selalu pakai nominal dp", consts.PaymentTypeDownPayment, "999", "15000000"},
		{"pelunasan selalu pakai sisa tagihan", consts.PaymentTypeFullPayment, "1", "50000000"},
		{"cicilan input kosong pakai default setengah sisa", consts.PaymentTypeInstallment, "", "25000000"},
		{"cicilan input valid dipakai apa adanya", consts.PaymentTypeInstallment, "10000000", "10000000"},
		{"cicilan melebihi sisa di-clamp", consts.PaymentTypeInstallment, "80000000", "50000000"},
		{"cicilan bukan angka jadi nol", consts.PaymentTypeInstallment, "abc", "0"},
		{"cicilan negatif jadi nol", consts.PaymentTypeInstallment, "-5", "0"},
		{"cicilan nol jadi nol", consts.PaymentTypeInstallment, "0", "0"},
		{"cicilan pecahan di bawah satu rupiah jadi nol", consts.PaymentTypeInstallment, "0.5", "0"},
		{"cicilan tepat satu rupiah boleh", consts.PaymentTypeInstallment, "1", "1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			order := testOrder()
			got := DerivePaymentAmount(order, c.paymentType, c.input)
			want, _ := decimal.NewFromString(c.want)
			if !got.Equal(want) {
				t.Errorf("DerivePaymentAmount = %s, ingin %s", got, want)
			}
		})
	}
}

func TestDerivePaymentAmountSetelahDP(t *testing.T) {
	order := testOrder()
	order.PaidAmount = decimal.NewFromInt(15_000_000)
	order.RemainingAmount = decimal.NewFromInt(35_000_000)
	order.DownPaymentPaid = true

	got := DerivePaymentAmount(order, consts.PaymentTypeFullPayment, "")
	if !got.Equal(decimal.NewFromInt(35_000_000)) {
		t.Errorf("pelunasan setelah DP = %s, ingin 35000000", got)
	}
}

func TestAllowedPaymentTypes(t *testing.T) {
	order := testOrder()

	types := AllowedPaymentTypes(order)
	if len(types) != 3 || types[0] != consts.PaymentTypeDownPayment {
		t.Errorf("order baru harus menawarkan DP duluan, dapat %v", types)
	}

	order.DownPaymentPaid = true
	types = AllowedPaymentTypes(order)
	for _, typ := range types {
		if typ == consts.PaymentTypeDownPayment {
			t.Error("DP tidak boleh ditawarkan lagi setelah dibayar")
		}
	}

	order.RemainingAmount = decimal.Zero
	if types = AllowedPaymentTypes(order); len(types) != 0 {
		t.Errorf("order lunas tidak boleh menawarkan pembayaran, dapat %v", types)
	}
}

func TestCountdownText(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   string
	}{
		{"masih lama", now.Add(23*time.Hour + 59*time.Minute + 59*time.Second), "23:59:59"},
		{"satu menit", now.Add(time.Minute), "00:01:00"},
		{"pas habis", now, "00:00:00"},
		{"sudah lewat tidak negatif", now.Add(-3 * time.Hour), "00:00:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Payment{ExpiryTime: c.expiry}
			if got := p.CountdownText(now); got != c.want {
				t.Errorf("CountdownText = %q, ingin %q", got, c.want)
			}
		})
	}
}

func TestIsExpiredAt(t *testing.T) {
	now := time.Now()

	p := Payment{ExpiryTime: now.Add(-time.Second)}
	if !p.IsExpiredAt(now) {
		t.Error("payment lewat expiry harus dianggap kedaluwarsa")
	}

	p.ExpiryTime = now.Add(time.Hour)
	if p.IsExpiredAt(now) {
		t.Error("payment belum lewat expiry tidak boleh dianggap kedaluwarsa")
	}

	p.ExpiryTime = time.Time{}
	if p.IsExpiredAt(now) {
		t.Error("payment tanpa expiry tidak boleh dianggap kedaluwarsa")
	}
}

func TestTransitionTo(t *testing.T) {
	p := &Payment{Status: consts.PaymentStatusPending}
	if err := p.transitionTo(consts.PaymentStatusVerified); err != nil {
		t.Fatalf("pending -> verified harus boleh: %v", err)
	}

	// sudah terminal, semua transisi lanjutan ditolak
	for _, next := range []consts.PaymentStatus{
		consts.PaymentStatusVerified,
		consts.PaymentStatusRejected,
		consts.PaymentStatusExpired,
	} {
		if err := p.transitionTo(next); err == nil {
			t.Errorf("verified -> %s seharusnya ditolak", next)
		}
	}
	if p.Status != consts.PaymentStatusVerified {
		t.Errorf("status berubah jadi %s padahal transisi ditolak", p.Status)
	}

	// transisi ke pending bukan transisi terminal
	p = &Payment{Status: consts.PaymentStatusPending}
	if err := p.transitionTo(consts.PaymentStatusPending); err == nil {
		t.Error("pending -> pending seharusnya ditolak")
	}
}

func TestMarkRejectedWajibCatatan(t *testing.T) {
	p := &Payment{Status: consts.PaymentStatusPending}

	if err := p.MarkRejected(nil, "admin-1", "   "); err == nil {
		t.Fatal("reject tanpa catatan seharusnya ditolak")
	}
	if p.Status != consts.PaymentStatusPending {
		t.Errorf("status berubah jadi %s padahal reject gagal", p.Status)
	}
}

func TestSnapshotInstructions(t *testing.T) {
	va := &VirtualAccount{}
	err := va.SetInstructions([]PaymentInstruction{
		{Step: 1, Instruction: "Buka aplikasi mobile banking"},
		{Step: 2, Instruction: "Pilih menu Virtual Account"},
	})
	if err != nil {
		t.Fatal(err)
	}

	p := &Payment{}
	p.SnapshotInstructions(va)

	list := p.InstructionList()
	if len(list) != 2 {
		t.Fatalf("snapshot berisi %d instruksi, ingin 2", len(list))
	}
	if list[1].Step != 2 || list[1].Instruction != "Pilih menu Virtual Account" {
		t.Errorf("instruksi kedua = %+v", list[1])
	}

	// snapshot tidak ikut berubah kalau VA diedit
	_ = va.SetInstructions([]PaymentInstruction{{Step: 1, Instruction: "Diganti"}})
	if list = p.InstructionList(); len(list) != 2 {
		t.Error("snapshot payment ikut berubah saat VA diedit")
	}
}

func TestSnapshotInstructionsKosong(t *testing.T) {
	p := &Payment{}
	p.SnapshotInstructions(nil)
	if len(p.PaymentData) != 0 {
		t.Error("snapshot dari VA nil harus kosong")
	}
	if list := p.InstructionList(); len(list) != 0 {
		t.Errorf("payment tanpa snapshot mengembalikan %d instruksi", len(list))
	}
}
