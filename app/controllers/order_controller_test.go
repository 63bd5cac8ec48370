package controllers

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCustomFeatures(t *testing.T) {
	input := "Live music akustik|7500000\nPhotobooth | 3500000\n\nMC tambahan\n"

	features, total := parseCustomFeatures(input)

	if len(features) != 3 {
		t.Fatalf("dapat %d fitur, ingin 3", len(features))
	}

	if features[0].Name != "Live music akustik" || !features[0].Price.Equal(decimal.NewFromInt(7_500_000)) {
		t.Errorf("fitur pertama = %+v", features[0])
	}
	if features[1].Name != "Photobooth" || !features[1].Price.Equal(decimal.NewFromInt(3_500_000)) {
		t.Errorf("fitur kedua = %+v", features[1])
	}

	// tanpa harga dianggap 0
	if features[2].Name != "MC tambahan" || !features[2].Price.IsZero() {
		t.Errorf("fitur ketiga = %+v", features[2])
	}

	if !total.Equal(decimal.NewFromInt(11_000_000)) {
		t.Errorf("total = %s, ingin 11000000", total)
	}
}

func TestParseCustomFeaturesInputJelek(t *testing.T) {
	features, total := parseCustomFeatures("")
	if len(features) != 0 || !total.IsZero() {
		t.Errorf("input kosong: %d fitur, total %s", len(features), total)
	}

	// harga negatif atau bukan angka diabaikan, fitur tetap masuk
	features, total = parseCustomFeatures("Dekorasi tambahan|-500\nSound system|abc")
	if len(features) != 2 {
		t.Fatalf("dapat %d fitur, ingin 2", len(features))
	}
	if !total.IsZero() {
		t.Errorf("total = %s, ingin 0", total)
	}

	// baris cuma separator dilewati
	features, _ = parseCustomFeatures("|12345\n   \n")
	if len(features) != 0 {
		t.Errorf("baris tanpa nama fitur harus dilewati, dapat %d", len(features))
	}
}
