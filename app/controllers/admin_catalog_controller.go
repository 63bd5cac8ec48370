package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/catalogs
func (server *Server) AdminCatalogsIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	perPage := 15

	catalogModel := models.Catalog{}
	catalogs, total, err := catalogModel.GetCatalogs(server.DB, perPage, page)
	if err != nil {
		http.Error(w, "Gagal mengambil data katalog", http.StatusInternalServerError)
		return
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "admin/catalogs",
		TotalRows:   int32(total),
		PerPage:     int32(perPage),
		CurrentPage: int32(page),
	})

	data := map[string]interface{}{
		"user":       server.CurrentUser(w, r),
		"catalogs":   catalogs,
		"pagination": pagination,
		"success":    GetFlash(w, r, "success"),
		"error":      GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_catalogs", data)
}

// GET /admin/catalogs/new
func (server *Server) AdminCatalogsNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_catalog_form", data)
}

// POST /admin/catalogs
func (server *Server) AdminCatalogsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/catalogs/new", http.StatusSeeOther)
		return
	}

	catalog, err := catalogFromForm(r, &models.Catalog{})
	if err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/catalogs/new", http.StatusSeeOther)
		return
	}

	image, err := SaveUploadedImage(r, "image", "catalogs")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/catalogs/new", http.StatusSeeOther)
		return
	}
	if image != "" {
		catalog.Image = image
	}

	catalog.Slug = slug.Make(catalog.Name)

	if err := server.DB.Create(catalog).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan katalog.")
		http.Redirect(w, r, "/admin/catalogs/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Katalog berhasil dibuat.")
	http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
}

// GET /admin/catalogs/{id}/edit
func (server *Server) AdminCatalogsEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	catalogModel := models.Catalog{}
	catalog, err := catalogModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Katalog tidak ditemukan.")
		http.Redirect(w, r, "/admin/catalogs", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":    server.CurrentUser(w, r),
		"catalog": catalog,
		"success": GetFlash(w, r, "success"),
		"error":   GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_catalog_form", data)
}

// POST|PUT /admin/catalogs/{id}
func (server *Server) AdminCatalogsUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	catalogModel := models.Catalog{}
	catalog, err := catalogModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Katalog tidak ditemukan.")
		http.Redirect(w, r, "/admin/catalogs", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
		return
	}

	if _, err := catalogFromForm(r, catalog); err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
		return
	}

	image, err := SaveUploadedImage(r, "image", "catalogs")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
		return
	}
	if image != "" {
		catalog.Image = image
	}

	catalog.Slug = slug.Make(catalog.Name)

	if err := server.DB.Save(catalog).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Katalog berhasil diperbarui.")
	http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
}

// POST|DELETE /admin/catalogs/{id}/delete
func (server *Server) AdminCatalogsDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := server.DB.Delete(&models.Catalog{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus katalog.")
	} else {
		SetFlash(w, r, "success", "Katalog berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/catalogs", http.StatusSeeOther)
}

// catalogFromForm: validasi field katalog; harga maksimal tidak boleh
// di bawah harga minimal.
func catalogFromForm(r *http.Request, catalog *models.Catalog) (*models.Catalog, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return nil, errors.New("Nama katalog wajib diisi.")
	}

	priceMin, err := decimal.NewFromString(r.FormValue("price_min"))
	if err != nil || priceMin.LessThan(decimal.Zero) {
		return nil, errors.New("Harga minimal tidak valid.")
	}

	priceMax, err := decimal.NewFromString(r.FormValue("price_max"))
	if err != nil || priceMax.LessThan(priceMin) {
		return nil, errors.New("Harga maksimal harus lebih besar atau sama dengan harga minimal.")
	}

	catalog.Name = name
	catalog.Description = r.FormValue("description")
	catalog.PriceMin = priceMin
	catalog.PriceMax = priceMax
	catalog.IsActive = r.FormValue("is_active") != "0"

	return catalog, nil
}

// POST /admin/catalogs/{id}/features
func (server *Server) AdminCatalogFeatureCreate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	catalogModel := models.Catalog{}
	catalog, err := catalogModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Katalog tidak ditemukan.")
		http.Redirect(w, r, "/admin/catalogs", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		SetFlash(w, r, "error", "Nama fitur wajib diisi.")
		http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
		return
	}

	feature := models.CatalogFeature{
		CatalogID:   catalog.ID,
		Name:        name,
		Description: r.FormValue("description"),
	}

	if err := server.DB.Create(&feature).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menambahkan fitur.")
	} else {
		SetFlash(w, r, "success", "Fitur berhasil ditambahkan.")
	}

	http.Redirect(w, r, "/admin/catalogs/"+catalog.ID+"/edit", http.StatusSeeOther)
}

// POST|DELETE /admin/catalogs/{id}/features/{featureID}/delete
func (server *Server) AdminCatalogFeatureDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := server.DB.
		Where("id = ? AND catalog_id = ?", vars["featureID"], vars["id"]).
		Delete(&models.CatalogFeature{}).Error
	if err != nil {
		SetFlash(w, r, "error", "Gagal menghapus fitur.")
	} else {
		SetFlash(w, r, "success", "Fitur berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/catalogs/"+vars["id"]+"/edit", http.StatusSeeOther)
}
