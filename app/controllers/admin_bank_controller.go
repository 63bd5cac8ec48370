package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/banks
func (server *Server) AdminBanksIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	var banks []models.Bank
	if err := server.DB.Order("created_at DESC").Find(&banks).Error; err != nil {
		http.Error(w, "Gagal mengambil data bank", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"user":    server.CurrentUser(w, r),
		"banks":   banks,
		"success": GetFlash(w, r, "success"),
		"error":   GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_banks", data)
}

// GET /admin/banks/new
func (server *Server) AdminBanksNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_bank_form", data)
}

// POST /admin/banks
func (server *Server) AdminBanksCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/banks/new", http.StatusSeeOther)
		return
	}

	bank := &models.Bank{}
	if err := bankFromForm(r, bank); err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/banks/new", http.StatusSeeOther)
		return
	}

	logo, err := SaveUploadedImage(r, "logo", "banks")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/banks/new", http.StatusSeeOther)
		return
	}
	bank.Logo = logo

	if err := server.DB.Create(bank).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan bank.")
		http.Redirect(w, r, "/admin/banks/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Bank berhasil ditambahkan.")
	http.Redirect(w, r, "/admin/banks", http.StatusSeeOther)
}

// GET /admin/banks/{id}/edit
func (server *Server) AdminBanksEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	bankModel := models.Bank{}
	bank, err := bankModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Bank tidak ditemukan.")
		http.Redirect(w, r, "/admin/banks", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"bank":  bank,
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_bank_form", data)
}

// POST|PUT /admin/banks/{id}
func (server *Server) AdminBanksUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bankModel := models.Bank{}
	bank, err := bankModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Bank tidak ditemukan.")
		http.Redirect(w, r, "/admin/banks", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/banks/"+bank.ID+"/edit", http.StatusSeeOther)
		return
	}

	if err := bankFromForm(r, bank); err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/banks/"+bank.ID+"/edit", http.StatusSeeOther)
		return
	}

	logo, err := SaveUploadedImage(r, "logo", "banks")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/banks/"+bank.ID+"/edit", http.StatusSeeOther)
		return
	}
	if logo != "" {
		bank.Logo = logo
	}

	if err := server.DB.Save(bank).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/banks/"+bank.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Data bank berhasil diperbarui.")
	http.Redirect(w, r, "/admin/banks", http.StatusSeeOther)
}

// POST|DELETE /admin/banks/{id}/delete
func (server *Server) AdminBanksDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := server.DB.Delete(&models.Bank{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus bank.")
	} else {
		SetFlash(w, r, "success", "Bank berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/banks", http.StatusSeeOther)
}

func bankFromForm(r *http.Request, bank *models.Bank) error {
	name := strings.TrimSpace(r.FormValue("name"))
	code := strings.ToUpper(strings.TrimSpace(r.FormValue("code")))
	accountNumber := strings.TrimSpace(r.FormValue("account_number"))
	accountName := strings.TrimSpace(r.FormValue("account_name"))

	if name == "" || code == "" || accountNumber == "" || accountName == "" {
		return errors.New("Nama, kode, nomor rekening, dan nama pemilik wajib diisi.")
	}

	bank.Name = name
	bank.Code = code
	bank.AccountNumber = accountNumber
	bank.AccountName = accountName
	bank.Branch = r.FormValue("branch")
	bank.Description = r.FormValue("description")
	bank.IsActive = r.FormValue("is_active") != "0"

	return nil
}
