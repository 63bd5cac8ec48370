package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/teams
func (server *Server) AdminTeamsIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	var members []models.TeamMember
	if err := server.DB.Order("created_at DESC").Find(&members).Error; err != nil {
		http.Error(w, "Gagal mengambil data tim", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"user":    server.CurrentUser(w, r),
		"team":    members,
		"success": GetFlash(w, r, "success"),
		"error":   GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_teams", data)
}

// GET /admin/teams/new
func (server *Server) AdminTeamsNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_team_form", data)
}

// POST /admin/teams
func (server *Server) AdminTeamsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/teams/new", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		SetFlash(w, r, "error", "Nama anggota tim wajib diisi.")
		http.Redirect(w, r, "/admin/teams/new", http.StatusSeeOther)
		return
	}

	photo, err := SaveUploadedImage(r, "photo", "teams")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/teams/new", http.StatusSeeOther)
		return
	}

	member := models.TeamMember{
		Name:      name,
		Role:      r.FormValue("role"),
		Bio:       r.FormValue("bio"),
		Photo:     photo,
		Instagram: r.FormValue("instagram"),
		IsActive:  r.FormValue("is_active") != "0",
	}

	if err := server.DB.Create(&member).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan anggota tim.")
		http.Redirect(w, r, "/admin/teams/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Anggota tim berhasil ditambahkan.")
	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}

// GET /admin/teams/{id}/edit
func (server *Server) AdminTeamsEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	teamModel := models.TeamMember{}
	member, err := teamModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Anggota tim tidak ditemukan.")
		http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":   server.CurrentUser(w, r),
		"member": member,
		"error":  GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_team_form", data)
}

// POST|PUT /admin/teams/{id}
func (server *Server) AdminTeamsUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	teamModel := models.TeamMember{}
	member, err := teamModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Anggota tim tidak ditemukan.")
		http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/teams/"+member.ID+"/edit", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		SetFlash(w, r, "error", "Nama anggota tim wajib diisi.")
		http.Redirect(w, r, "/admin/teams/"+member.ID+"/edit", http.StatusSeeOther)
		return
	}

	photo, err := SaveUploadedImage(r, "photo", "teams")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/admin/teams/"+member.ID+"/edit", http.StatusSeeOther)
		return
	}
	if photo != "" {
		member.Photo = photo
	}

	member.Name = name
	member.Role = r.FormValue("role")
	member.Bio = r.FormValue("bio")
	member.Instagram = r.FormValue("instagram")
	member.IsActive = r.FormValue("is_active") != "0"

	if err := server.DB.Save(member).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/teams/"+member.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Data anggota tim berhasil diperbarui.")
	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}

// POST|DELETE /admin/teams/{id}/delete
func (server *Server) AdminTeamsDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := server.DB.Delete(&models.TeamMember{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus anggota tim.")
	} else {
		SetFlash(w, r, "success", "Anggota tim berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/teams", http.StatusSeeOther)
}
