package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

func (server *Server) Home(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	user := server.CurrentUser(w, r)

	// Katalog terbaru untuk landing page
	var catalogs []models.Catalog
	if err := server.DB.
		Preload("Features").
		Order("created_at desc").
		Limit(6).
		Find(&catalogs).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	serviceModel := models.Service{}
	services, _ := serviceModel.GetActive(server.DB)

	teamModel := models.TeamMember{}
	team, _ := teamModel.GetActive(server.DB)

	data := map[string]interface{}{
		"user":     user,
		"catalogs": catalogs,
		"services": services,
		"team":     team,
		"success":  GetFlash(w, r, "success"),
		"error":    GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "home", data)
}

func (server *Server) Catalogs(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	perPage := 9

	catalogModel := models.Catalog{}
	catalogs, totalRows, err := catalogModel.GetCatalogs(server.DB, perPage, page)
	if err != nil {
		http.Error(w, "Gagal mengambil data katalog", http.StatusInternalServerError)
		return
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "catalogs",
		TotalRows:   int32(totalRows),
		PerPage:     int32(perPage),
		CurrentPage: int32(page),
	})

	user := server.CurrentUser(w, r)

	data := map[string]interface{}{
		"catalogs":   catalogs,
		"pagination": pagination,
		"user":       user,
	}

	_ = ren.HTML(w, http.StatusOK, "catalogs", data)
}

func (server *Server) GetCatalogBySlug(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	vars := mux.Vars(r)

	catalogModel := models.Catalog{}
	catalog, err := catalogModel.FindBySlug(server.DB, vars["slug"])
	if err != nil {
		SetFlash(w, r, "error", "Katalog tidak ditemukan")
		http.Redirect(w, r, "/catalogs", http.StatusSeeOther)
		return
	}

	user := server.CurrentUser(w, r)

	data := map[string]interface{}{
		"catalog": catalog,
		"user":    user,
		"success": GetFlash(w, r, "success"),
		"error":   GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "catalog_detail", data)
}

func (server *Server) Services(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	serviceModel := models.Service{}
	services, err := serviceModel.GetActive(server.DB)
	if err != nil {
		http.Error(w, "Gagal mengambil data layanan", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"services": services,
		"user":     server.CurrentUser(w, r),
	}

	_ = ren.HTML(w, http.StatusOK, "services", data)
}

func (server *Server) Portfolios(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	portfolioModel := models.Portfolio{}
	portfolios, totalRows, err := portfolioModel.GetPortfolios(server.DB, 12, page)
	if err != nil {
		http.Error(w, "Gagal mengambil data portofolio", http.StatusInternalServerError)
		return
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "portfolios",
		TotalRows:   int32(totalRows),
		PerPage:     12,
		CurrentPage: int32(page),
	})

	data := map[string]interface{}{
		"portfolios": portfolios,
		"pagination": pagination,
		"user":       server.CurrentUser(w, r),
	}

	_ = ren.HTML(w, http.StatusOK, "portfolios", data)
}

func (server *Server) Team(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	teamModel := models.TeamMember{}
	members, err := teamModel.GetActive(server.DB)
	if err != nil {
		http.Error(w, "Gagal mengambil data tim", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"team": members,
		"user": server.CurrentUser(w, r),
	}

	_ = ren.HTML(w, http.StatusOK, "team", data)
}
