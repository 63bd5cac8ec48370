package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Satu validator upload untuk semua modul yang menerima gambar
// (logo bank, foto tim, gambar katalog, bukti transfer, dst).
const maxUploadSize = 2 << 20 // 2MB

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

var (
	ErrUploadTooLarge   = errors.New("ukuran file maksimal 2MB")
	ErrUploadBadType    = errors.New("file harus berupa gambar JPEG, PNG, atau GIF")
	ErrUploadunreadable = errors.New("file tidak bisa dibaca")
)

// SaveUploadedImage: validasi lalu simpan file gambar dari form ke
// public/uploads/<subdir>. Mengembalikan http.ErrMissingFile apa adanya
// supaya pemanggil bisa membedakan "tidak ada file" dari "file ditolak".
func SaveUploadedImage(r *http.Request, field string, subdir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return "", ErrUploadTooLarge
	}

	// Deteksi tipe dari isi file, bukan dari ekstensi nama file
	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && err != io.EOF {
		return "", ErrUploadunreadable
	}

	contentType := http.DetectContentType(sniff[:n])
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUploadBadType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", ErrUploadunreadable
	}

	uploadDir := filepath.Join("public", "uploads", subdir)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("gagal menyiapkan folder upload: %w", err)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("gagal menyalin file: %w", err)
	}

	return filename, nil
}

// ValidateImageUpload: cek saja tanpa menyimpan, untuk form yang mau
// menolak cepat sebelum ada efek samping.
func ValidateImageUpload(size int64, sniff []byte) error {
	if size > maxUploadSize {
		return ErrUploadTooLarge
	}

	if _, ok := imageExtensions[http.DetectContentType(sniff)]; !ok {
		return ErrUploadBadType
	}

	return nil
}
