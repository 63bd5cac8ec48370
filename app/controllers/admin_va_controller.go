package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/virtual-accounts
func (server *Server) AdminVirtualAccountsIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	var accounts []models.VirtualAccount
	if err := server.DB.Order("created_at DESC").Find(&accounts).Error; err != nil {
		http.Error(w, "Gagal mengambil data virtual account", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"user":     server.CurrentUser(w, r),
		"accounts": accounts,
		"success":  GetFlash(w, r, "success"),
		"error":    GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_virtual_accounts", data)
}

// GET /admin/virtual-accounts/new
func (server *Server) AdminVirtualAccountsNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_virtual_account_form", data)
}

// POST /admin/virtual-accounts
func (server *Server) AdminVirtualAccountsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/virtual-accounts/new", http.StatusSeeOther)
		return
	}

	va := &models.VirtualAccount{}
	if err := virtualAccountFromForm(r, va); err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/virtual-accounts/new", http.StatusSeeOther)
		return
	}

	logo, err := SaveUploadedImage(r, "logo", "banks")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/virtual-accounts/new", http.StatusSeeOther)
		return
	}
	va.Logo = logo

	if err := server.DB.Create(va).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan virtual account.")
		http.Redirect(w, r, "/admin/virtual-accounts/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Virtual account berhasil ditambahkan.")
	http.Redirect(w, r, "/admin/virtual-accounts", http.StatusSeeOther)
}

// GET /admin/virtual-accounts/{id}/edit
func (server *Server) AdminVirtualAccountsEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	vaModel := models.VirtualAccount{}
	va, err := vaModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Virtual account tidak ditemukan.")
		http.Redirect(w, r, "/admin/virtual-accounts", http.StatusSeeOther)
		return
	}

	// textarea diisi satu instruksi per baris
	var lines []string
	for _, ins := range va.InstructionList() {
		lines = append(lines, ins.Instruction)
	}

	data := map[string]interface{}{
		"user":             server.CurrentUser(w, r),
		"account":          va,
		"instructionsText": strings.Join(lines, "\n"),
		"error":            GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_virtual_account_form", data)
}

// POST|PUT /admin/virtual-accounts/{id}
func (server *Server) AdminVirtualAccountsUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vaModel := models.VirtualAccount{}
	va, err := vaModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Virtual account tidak ditemukan.")
		http.Redirect(w, r, "/admin/virtual-accounts", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/virtual-accounts/"+va.ID+"/edit", http.StatusSeeOther)
		return
	}

	if err := virtualAccountFromForm(r, va); err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/virtual-accounts/"+va.ID+"/edit", http.StatusSeeOther)
		return
	}

	logo, err := SaveUploadedImage(r, "logo", "banks")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/virtual-accounts/"+va.ID+"/edit", http.StatusSeeOther)
		return
	}
	if logo != "" {
		va.Logo = logo
	}

	if err := server.DB.Save(va).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/virtual-accounts/"+va.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Virtual account berhasil diperbarui.")
	http.Redirect(w, r, "/admin/virtual-accounts", http.StatusSeeOther)
}

// POST|DELETE /admin/virtual-accounts/{id}/delete
func (server *Server) AdminVirtualAccountsDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := server.DB.Delete(&models.VirtualAccount{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus virtual account.")
	} else {
		SetFlash(w, r, "success", "Virtual account berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/virtual-accounts", http.StatusSeeOther)
}

// virtualAccountFromForm: instruksi pembayaran diketik satu langkah per
// baris, nomor urut diberikan otomatis.
func virtualAccountFromForm(r *http.Request, va *models.VirtualAccount) error {
	name := strings.TrimSpace(r.FormValue("name"))
	code := strings.ToUpper(strings.TrimSpace(r.FormValue("bank_code")))

	if name == "" || code == "" {
		return errors.New("Nama dan kode bank wajib diisi.")
	}

	va.Name = name
	va.BankCode = code
	va.AccountNumber = strings.TrimSpace(r.FormValue("account_number"))
	va.IsActive = r.FormValue("is_active") != "0"

	var instructions []models.PaymentInstruction
	step := 1
	for _, line := range strings.Split(r.FormValue("instructions"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		instructions = append(instructions, models.PaymentInstruction{Step: step, Instruction: line})
		step++
	}

	if err := va.SetInstructions(instructions); err != nil {
		return errors.New("Gagal memproses instruksi pembayaran.")
	}

	return nil
}
