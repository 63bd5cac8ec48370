package models

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
)

func TestIntToRoman(t *testing.T) {
	cases := map[int]string{
		1:  "I",
		4:  "IV",
		8:  "VIII",
		9:  "IX",
		10: "X",
		12: "XII",
	}

	for num, want := range cases {
		if got := intToRoman(num); got != want {
			t.Errorf("intToRoman(%d) = %q, ingin %q", num, got, want)
		}
	}
}

func TestApplyPaymentTolakNonVerified(t *testing.T) {
	order := &Order{
		Price:           decimal.NewFromInt(10_000_000),
		RemainingAmount: decimal.NewFromInt(10_000_000),
		Status:          consts.OrderStatusPendingPayment,
	}

	payment := &Payment{
		Amount: decimal.NewFromInt(5_000_000),
		Status: consts.PaymentStatusPending,
	}

	if err := order.ApplyPayment(nil, payment); err == nil {
		t.Fatal("pembayaran pending tidak boleh diterapkan ke order")
	}
	if !order.PaidAmount.IsZero() {
		t.Error("PaidAmount berubah padahal pembayaran ditolak")
	}
}

func TestApplyPaymentTolakMelebihiSisa(t *testing.T) {
	order := &Order{
		Price:           decimal.NewFromInt(10_000_000),
		RemainingAmount: decimal.NewFromInt(3_000_000),
		PaidAmount:      decimal.NewFromInt(7_000_000),
		Status:          consts.OrderStatusOngoing,
	}

	payment := &Payment{
		Amount: decimal.NewFromInt(5_000_000),
		Status: consts.PaymentStatusVerified,
	}

	if err := order.ApplyPayment(nil, payment); err == nil {
		t.Fatal("pembayaran melebihi sisa tagihan harus ditolak")
	}
}

func TestCanAcceptPayment(t *testing.T) {
	order := &Order{
		Price:           decimal.NewFromInt(10_000_000),
		RemainingAmount: decimal.NewFromInt(10_000_000),
		Status:          consts.OrderStatusOngoing,
	}

	payment := &Payment{
		Amount: decimal.NewFromInt(3_000_000),
		Status: consts.PaymentStatusPending,
	}

	if err := order.CanAcceptPayment(payment); err != nil {
		t.Fatalf("order aktif harus bisa menerima pembayaran: %v", err)
	}

	payment.Amount = decimal.NewFromInt(20_000_000)
	if order.CanAcceptPayment(payment) == nil {
		t.Error("nominal melebihi sisa tagihan harus ditolak")
	}
}

// Order yang dibatalkan saat masih punya pembayaran pending: gerbang
// CanAcceptPayment harus menolak SEBELUM ada transisi ke verified, supaya
// tidak ada pembayaran verified yang nominalnya tidak tercatat di order.
func TestCanAcceptPaymentOrderBatal(t *testing.T) {
	order := &Order{
		Price:           decimal.NewFromInt(10_000_000),
		RemainingAmount: decimal.NewFromInt(10_000_000),
		Status:          consts.OrderStatusOngoing,
	}

	payment := &Payment{
		Amount: decimal.NewFromInt(3_000_000),
		Status: consts.PaymentStatusPending,
	}

	order.Status = consts.OrderStatusCancelled
	order.CancelReason = "klien membatalkan acara"

	if err := order.CanAcceptPayment(payment); err == nil {
		t.Fatal("order batal tidak boleh menerima pembayaran pending")
	}
	if payment.Status != consts.PaymentStatusPending {
		t.Errorf("status pembayaran berubah jadi %s padahal gerbang menolak", payment.Status)
	}
	if !order.PaidAmount.IsZero() {
		t.Errorf("PaidAmount berubah jadi %s padahal gerbang menolak", order.PaidAmount)
	}
}

func TestApplyPaymentTolakOrderBatal(t *testing.T) {
	order := &Order{
		Price:           decimal.NewFromInt(10_000_000),
		RemainingAmount: decimal.NewFromInt(10_000_000),
		Status:          consts.OrderStatusCancelled,
	}

	payment := &Payment{
		Amount: decimal.NewFromInt(1_000_000),
		Status: consts.PaymentStatusVerified,
	}

	if err := order.ApplyPayment(nil, payment); err == nil {
		t.Fatal("order batal tidak boleh menerima pembayaran")
	}
}

func TestCancelWajibAlasan(t *testing.T) {
	order := &Order{Status: consts.OrderStatusOngoing}

	if err := order.Cancel(nil, ""); err == nil {
		t.Fatal("pembatalan tanpa alasan harus ditolak")
	}
	if order.Status != consts.OrderStatusOngoing {
		t.Errorf("status berubah jadi %s padahal pembatalan gagal", order.Status)
	}
}

func TestCancelHanyaStatusAktif(t *testing.T) {
	for _, status := range []consts.OrderStatus{consts.OrderStatusCompleted, consts.OrderStatusCancelled} {
		order := &Order{Status: status}
		if err := order.Cancel(nil, "klien mengundurkan diri"); err == nil {
			t.Errorf("order %s tidak boleh dibatalkan", status)
		}
	}
}

func TestCompleteHanyaDariOngoing(t *testing.T) {
	for _, status := range []consts.OrderStatus{
		consts.OrderStatusPendingPayment,
		consts.OrderStatusCompleted,
		consts.OrderStatusCancelled,
	} {
		order := &Order{Status: status}
		if err := order.Complete(nil); err == nil {
			t.Errorf("order %s tidak boleh diselesaikan", status)
		}
	}
}

func TestAddReviewValidasi(t *testing.T) {
	order := &Order{Status: consts.OrderStatusOngoing}
	if _, err := order.AddReview(nil, 5, "Pelayanan memuaskan"); err == nil {
		t.Error("review untuk order belum selesai harus ditolak")
	}

	order.Status = consts.OrderStatusCompleted
	if _, err := order.AddReview(nil, 0, "Bagus"); err == nil {
		t.Error("rating 0 harus ditolak")
	}
	if _, err := order.AddReview(nil, 6, "Bagus"); err == nil {
		t.Error("rating 6 harus ditolak")
	}
	if _, err := order.AddReview(nil, 4, ""); err == nil {
		t.Error("review tanpa komentar harus ditolak")
	}
}

func TestIsFullyPaid(t *testing.T) {
	order := Order{RemainingAmount: decimal.NewFromInt(1)}
	if order.IsFullyPaid() {
		t.Error("masih ada sisa tagihan, belum lunas")
	}

	order.RemainingAmount = decimal.Zero
	if !order.IsFullyPaid() {
		t.Error("sisa nol harus dianggap lunas")
	}
}

func TestPaidPercentage(t *testing.T) {
	order := Order{
		Price:      decimal.NewFromInt(10_000_000),
		PaidAmount: decimal.NewFromInt(3_000_000),
	}

	if got := order.PaidPercentage(); got != 30 {
		t.Errorf("PaidPercentage = %v, ingin 30", got)
	}

	empty := Order{}
	if got := empty.PaidPercentage(); got != 0 {
		t.Errorf("order tanpa harga harus 0 persen, dapat %v", got)
	}
}

func TestDiscountAmount(t *testing.T) {
	order := Order{
		Price:   decimal.NewFromInt(40_000_000),
		Catalog: Catalog{PriceMax: decimal.NewFromInt(50_000_000)},
	}

	if got := order.DiscountAmount(); !got.Equal(decimal.NewFromInt(10_000_000)) {
		t.Errorf("DiscountAmount = %s, ingin 10000000", got)
	}

	// harga deal di atas price max bukan diskon
	order.Price = decimal.NewFromInt(60_000_000)
	if got := order.DiscountAmount(); !got.IsZero() {
		t.Errorf("DiscountAmount = %s, ingin 0", got)
	}
}
