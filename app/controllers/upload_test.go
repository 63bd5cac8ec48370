package controllers

import (
	"errors"
	"testing"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	gifHeader  = []byte("GIF89a\x00\x00")
)

func TestValidateImageUpload(t *testing.T) {
	for name, sniff := range map[string][]byte{
		"png":  pngHeader,
		"jpeg": jpegHeader,
		"gif":  gifHeader,
	} {
		if err := ValidateImageUpload(1024, sniff); err != nil {
			t.Errorf("%s valid ditolak: %v", name, err)
		}
	}
}

func TestValidateImageUploadTerlaluBesar(t *testing.T) {
	err := ValidateImageUpload(maxUploadSize+1, pngHeader)
	if !errors.Is(err, ErrUploadTooLarge) {
		t.Errorf("file 2MB+1 harus ditolak ErrUploadTooLarge, dapat %v", err)
	}

	// tepat di batas masih boleh
	if err := ValidateImageUpload(maxUploadSize, pngHeader); err != nil {
		t.Errorf("file tepat 2MB ditolak: %v", err)
	}
}

func TestValidateImageUploadBukanGambar(t *testing.T) {
	cases := map[string][]byte{
		"teks":  []byte("halo ini bukan gambar, cuma teks biasa saja"),
		"pdf":   []byte("%PDF-1.7 sisanya isi dokumen"),
		"html":  []byte("<!DOCTYPE html><html></html>"),
		"zip":   {0x50, 0x4B, 0x03, 0x04, 0, 0, 0, 0},
		"webp":  append([]byte("RIFF\x00\x00\x00\x00WEBP"), make([]byte, 8)...),
		"bmp":   append([]byte("BM"), make([]byte, 12)...),
		"empty": {},
	}

	for name, sniff := range cases {
		if err := ValidateImageUpload(100, sniff); !errors.Is(err, ErrUploadBadType) {
			t.Errorf("%s harus ditolak ErrUploadBadType, dapat %v", name, err)
		}
	}
}
