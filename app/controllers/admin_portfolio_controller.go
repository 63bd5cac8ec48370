package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/portfolios
func (server *Server) AdminPortfoliosIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	perPage := 15

	portfolioModel := models.Portfolio{}
	portfolios, total, err := portfolioModel.GetPortfolios(server.DB, perPage, page)
	if err != nil {
		http.Error(w, "Gagal mengambil data portofolio", http.StatusInternalServerError)
		return
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "admin/portfolios",
		TotalRows:   int32(total),
		PerPage:     int32(perPage),
		CurrentPage: int32(page),
	})

	data := map[string]interface{}{
		"user":       server.CurrentUser(w, r),
		"portfolios": portfolios,
		"pagination": pagination,
		"success":    GetFlash(w, r, "success"),
		"error":      GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_portfolios", data)
}

// GET /admin/portfolios/new
func (server *Server) AdminPortfoliosNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_portfolio_form", data)
}

// POST /admin/portfolios
func (server *Server) AdminPortfoliosCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/portfolios/new", http.StatusSeeOther)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		SetFlash(w, r, "error", "Judul portofolio wajib diisi.")
		http.Redirect(w, r, "/admin/portfolios/new", http.StatusSeeOther)
		return
	}

	eventDate, _ := time.Parse("2006-01-02", r.FormValue("event_date"))

	image, err := SaveUploadedImage(r, "image", "portfolios")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/portfolios/new", http.StatusSeeOther)
		return
	}

	portfolio := models.Portfolio{
		Title:       title,
		Slug:        slug.Make(title),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Image:       image,
		EventDate:   eventDate,
	}

	if err := server.DB.Create(&portfolio).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan portofolio.")
		http.Redirect(w, r, "/admin/portfolios/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Portofolio berhasil dibuat.")
	http.Redirect(w, r, "/admin/portfolios", http.StatusSeeOther)
}

// GET /admin/portfolios/{id}/edit
func (server *Server) AdminPortfoliosEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	portfolioModel := models.Portfolio{}
	portfolio, err := portfolioModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Portofolio tidak ditemukan.")
		http.Redirect(w, r, "/admin/portfolios", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":      server.CurrentUser(w, r),
		"portfolio": portfolio,
		"error":     GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_portfolio_form", data)
}

// POST|PUT /admin/portfolios/{id}
func (server *Server) AdminPortfoliosUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	portfolioModel := models.Portfolio{}
	portfolio, err := portfolioModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Portofolio tidak ditemukan.")
		http.Redirect(w, r, "/admin/portfolios", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/portfolios/"+portfolio.ID+"/edit", http.StatusSeeOther)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		SetFlash(w, r, "error", "Judul portofolio wajib diisi.")
		http.Redirect(w, r, "/admin/portfolios/"+portfolio.ID+"/edit", http.StatusSeeOther)
		return
	}

	image, err := SaveUploadedImage(r, "image", "portfolios")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/portfolios/"+portfolio.ID+"/edit", http.StatusSeeOther)
		return
	}
	if image != "" {
		portfolio.Image = image
	}

	if eventDate, err := time.Parse("2006-01-02", r.FormValue("event_date")); err == nil {
		portfolio.EventDate = eventDate
	}

	portfolio.Title = title
	portfolio.Slug = slug.Make(title)
	portfolio.Category = r.FormValue("category")
	portfolio.Description = r.FormValue("description")

	if err := server.DB.Save(portfolio).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/portfolios/"+portfolio.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Portofolio berhasil diperbarui.")
	http.Redirect(w, r, "/admin/portfolios", http.StatusSeeOther)
}

// POST|DELETE /admin/portfolios/{id}/delete
func (server *Server) AdminPortfoliosDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := server.DB.Delete(&models.Portfolio{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus portofolio.")
	} else {
		SetFlash(w, r, "success", "Portofolio berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/portfolios", http.StatusSeeOther)
}
