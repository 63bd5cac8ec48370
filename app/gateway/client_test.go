package gateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
)

func TestMapTransactionStatus(t *testing.T) {
	cases := map[string]consts.PaymentStatus{
		"settlement": consts.PaymentStatusVerified,
		"capture":    consts.PaymentStatusVerified,
		"pending":    consts.PaymentStatusPending,
		"deny":       consts.PaymentStatusRejected,
		"cancel":     consts.PaymentStatusRejected,
		"expire":     consts.PaymentStatusExpired,
	}

	for input, want := range cases {
		got, err := MapTransactionStatus(input)
		if err != nil {
			t.Errorf("MapTransactionStatus(%q) error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("MapTransactionStatus(%q) = %s, ingin %s", input, got, want)
		}
	}

	for _, input := range []string{"", "refund", "SETTLEMENT"} {
		if _, err := MapTransactionStatus(input); err == nil {
			t.Errorf("MapTransactionStatus(%q) seharusnya error", input)
		}
	}
}

func TestValidSignature(t *testing.T) {
	serverKey := "SB-server-key"
	n := Notification{
		OrderID:     "pay-123",
		StatusCode:  "200",
		GrossAmount: "15000000.00",
	}

	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	n.SignatureKey = hex.EncodeToString(sum[:])

	if !n.ValidSignature(serverKey) {
		t.Error("signature yang benar harus valid")
	}

	if n.ValidSignature("kunci-lain") {
		t.Error("signature dengan server key lain tidak boleh valid")
	}

	n.GrossAmount = "1.00"
	if n.ValidSignature(serverKey) {
		t.Error("payload yang diubah tidak boleh lolos verifikasi")
	}
}

func TestCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/charge" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("request tanpa basic auth")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"transaction_id": "trx-1",
			"transaction_status": "pending",
			"status_message": "Success",
			"expiry_time": "2026-08-31 10:00:00",
			"va_numbers": [{"bank": "bca", "va_number": "8830001234567890"}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "server-key")
	resp, err := client.Charge(context.Background(), ChargeRequest{
		OrderRef:    "pay-1",
		BankCode:    "bca",
		GrossAmount: 15000000,
		ItemName:    "0001/WED/VIII/2026 - Uang Muka",
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.VaNumber != "8830001234567890" {
		t.Errorf("VaNumber = %s", resp.VaNumber)
	}
	if resp.ExpiryTime.Hour() != 10 || resp.ExpiryTime.Day() != 31 {
		t.Errorf("ExpiryTime = %s", resp.ExpiryTime)
	}
}

func TestChargeTanpaNomorVA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"transaction_id": "trx-1", "status_message": "Success", "va_numbers": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "server-key")
	if _, err := client.Charge(context.Background(), ChargeRequest{OrderRef: "pay-1"}); err == nil {
		t.Fatal("respons tanpa nomor VA harus error")
	}
}

func TestChargeGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message": "Access denied"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "kunci-salah")
	if _, err := client.Charge(context.Background(), ChargeRequest{OrderRef: "pay-1"}); err == nil {
		t.Fatal("status non-2xx harus error")
	}
}

func TestCheckStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/pay-1/status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"transaction_status": "settlement", "status_code": "200"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "server-key")
	status, err := client.CheckStatus(context.Background(), "pay-1")
	if err != nil {
		t.Fatal(err)
	}
	if status != consts.PaymentStatusVerified {
		t.Errorf("status = %s, ingin verified", status)
	}
}
