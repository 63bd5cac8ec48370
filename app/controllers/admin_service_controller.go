package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/services
func (server *Server) AdminServicesIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	var services []models.Service
	if err := server.DB.Order("created_at DESC").Find(&services).Error; err != nil {
		http.Error(w, "Gagal mengambil data layanan", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"user":     server.CurrentUser(w, r),
		"services": services,
		"success":  GetFlash(w, r, "success"),
		"error":    GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_services", data)
}

// GET /admin/services/new
func (server *Server) AdminServicesNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_service_form", data)
}

// POST /admin/services
func (server *Server) AdminServicesCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/services/new", http.StatusSeeOther)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		SetFlash(w, r, "error", "Judul layanan wajib diisi.")
		http.Redirect(w, r, "/admin/services/new", http.StatusSeeOther)
		return
	}

	image, err := SaveUploadedImage(r, "image", "services")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/services/new", http.StatusSeeOther)
		return
	}

	service := models.Service{
		Title:       title,
		Slug:        slug.Make(title),
		Description: r.FormValue("description"),
		Image:       image,
		IsActive:    r.FormValue("is_active") != "0",
	}

	if err := server.DB.Create(&service).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan layanan.")
		http.Redirect(w, r, "/admin/services/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Layanan berhasil dibuat.")
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// GET /admin/services/{id}/edit
func (server *Server) AdminServicesEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	serviceModel := models.Service{}
	service, err := serviceModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Layanan tidak ditemukan.")
		http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":    server.CurrentUser(w, r),
		"service": service,
		"error":   GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_service_form", data)
}

// POST|PUT /admin/services/{id}
func (server *Server) AdminServicesUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceModel := models.Service{}
	service, err := serviceModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Layanan tidak ditemukan.")
		http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/services/"+service.ID+"/edit", http.StatusSeeOther)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		SetFlash(w, r, "error", "Judul layanan wajib diisi.")
		http.Redirect(w, r, "/admin/services/"+service.ID+"/edit", http.StatusSeeOther)
		return
	}

	image, err := SaveUploadedImage(r, "image", "services")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/services/"+service.ID+"/edit", http.StatusSeeOther)
		return
	}
	if image != "" {
		service.Image = image
	}

	service.Title = title
	service.Slug = slug.Make(title)
	service.Description = r.FormValue("description")
	service.IsActive = r.FormValue("is_active") != "0"

	if err := server.DB.Save(service).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/services/"+service.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Layanan berhasil diperbarui.")
	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}

// POST|DELETE /admin/services/{id}/delete
func (server *Server) AdminServicesDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := server.DB.Delete(&models.Service{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus layanan.")
	} else {
		SetFlash(w, r, "success", "Layanan berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/services", http.StatusSeeOther)
}
