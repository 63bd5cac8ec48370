package controllers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

func matchPayment(createdAt time.Time, orderNumber string) *models.Payment {
	return &models.Payment{
		Amount:    decimal.NewFromInt(15_000_000),
		CreatedAt: createdAt,
		Order:     models.Order{OrderNumber: orderNumber},
	}
}

func TestCalculateMatchScore(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	payment := matchPayment(base, "0001/WED/VIII/2026")

	cases := []struct {
		name     string
		mutation models.BankMutation
		want     int
	}{
		{
			"dalam 6 jam dapat 2 poin waktu",
			models.BankMutation{TrxTime: base.Add(-2 * time.Hour)},
			2,
		},
		{
			"dalam 24 jam dapat 1 poin waktu",
			models.BankMutation{TrxTime: base.Add(-20 * time.Hour)},
			1,
		},
		{
			"lebih dari 24 jam tanpa berita 0 poin",
			models.BankMutation{TrxTime: base.Add(-48 * time.Hour)},
			0,
		},
		{
			"nomor order di berita transfer dapat 2 poin ekstra",
			models.BankMutation{TrxTime: base.Add(-time.Hour), Note: "Transfer DP 0001/WED/VIII/2026 an Budi"},
			4,
		},
		{
			"nomor order case-insensitive",
			models.BankMutation{TrxTime: base.Add(-48 * time.Hour), Note: "0001/wed/viii/2026"},
			2,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := calculateMatchScore(payment, &c.mutation); got != c.want {
				t.Errorf("score = %d, ingin %d", got, c.want)
			}
		})
	}
}

func TestPickBestMutation(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	payment := matchPayment(base, "0001/WED/VIII/2026")

	dekat := models.BankMutation{ID: 1, TrxTime: base.Add(-3 * time.Hour)}
	jauh := models.BankMutation{ID: 2, TrxTime: base.Add(-30 * time.Hour)}
	jauhDenganBerita := models.BankMutation{ID: 3, TrxTime: base.Add(-30 * time.Hour), Note: "pembayaran 0001/WED/VIII/2026"}

	best := pickBestMutation(payment, []models.BankMutation{jauh, dekat})
	if best == nil || best.ID != 1 {
		t.Errorf("harus memilih mutasi terdekat, dapat %+v", best)
	}

	// mutasi jauh tanpa sinyal lain tidak boleh dipakai
	if best = pickBestMutation(payment, []models.BankMutation{jauh}); best != nil {
		t.Errorf("mutasi jauh tanpa berita tidak boleh dipilih, dapat %+v", best)
	}

	// kecuali berita transfernya menyebut nomor order
	if best = pickBestMutation(payment, []models.BankMutation{jauhDenganBerita}); best == nil || best.ID != 3 {
		t.Errorf("mutasi jauh dengan berita harus dipilih, dapat %+v", best)
	}

	if best = pickBestMutation(payment, nil); best != nil {
		t.Errorf("tanpa kandidat harus nil, dapat %+v", best)
	}
}

func TestParseMutationRow(t *testing.T) {
	row := []string{"29/08/2026 14:30", "BCA", "8830127651", "15.000.000,00", "TRF DP 0001/WED/VIII/2026", "REF123"}

	m, err := parseMutationRow(row)
	if err != nil {
		t.Fatal(err)
	}

	if m.TrxTime.Day() != 29 || m.TrxTime.Month() != 8 || m.TrxTime.Hour() != 14 {
		t.Errorf("TrxTime = %s", m.TrxTime)
	}
	if !m.Amount.Equal(decimal.NewFromInt(15_000_000)) {
		t.Errorf("Amount = %s, ingin 15000000", m.Amount)
	}
	if m.Bank != "BCA" || m.RefCode != "REF123" {
		t.Errorf("mutasi = %+v", m)
	}
}

func TestParseMutationRowTanpaJam(t *testing.T) {
	m, err := parseMutationRow([]string{"29/08/2026", "BCA", "8830127651", "500000"})
	if err != nil {
		t.Fatal(err)
	}
	if m.TrxTime.Day() != 29 {
		t.Errorf("TrxTime = %s", m.TrxTime)
	}
	if m.Note != "" || m.RefCode != "" {
		t.Errorf("kolom opsional harus kosong: %+v", m)
	}
}

func TestParseMutationRowInvalid(t *testing.T) {
	cases := [][]string{
		{"29/08/2026", "BCA"},                            // kolom kurang
		{"2026-08-29", "BCA", "123", "500000"},           // format tanggal salah
		{"29/08/2026", "BCA", "123", "abc"},              // nominal bukan angka
		{"29/08/2026", "BCA", "123", "-500000"},          // nominal negatif
		{"29/08/2026", "BCA", "123", "0"},                // nominal nol
	}

	for _, row := range cases {
		if _, err := parseMutationRow(row); err == nil {
			t.Errorf("baris %v seharusnya error", row)
		}
	}
}
