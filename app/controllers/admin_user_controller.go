package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/users
func (server *Server) AdminUsersIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	perPage := 20

	userModel := models.User{}
	users, total, err := userModel.GetUsers(server.DB, perPage, page)
	if err != nil {
		http.Error(w, "Gagal mengambil data user", http.StatusInternalServerError)
		return
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "admin/users",
		TotalRows:   int32(total),
		PerPage:     int32(perPage),
		CurrentPage: int32(page),
	})

	data := map[string]interface{}{
		"user":       server.CurrentUser(w, r),
		"users":      users,
		"pagination": pagination,
		"success":    GetFlash(w, r, "success"),
		"error":      GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_users", data)
}

// GET /admin/users/new
func (server *Server) AdminUsersNew(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	data := map[string]interface{}{
		"user":  server.CurrentUser(w, r),
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_user_form", data)
}

// POST /admin/users
func (server *Server) AdminUsersCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if name == "" || email == "" || password == "" {
		SetFlash(w, r, "error", "Nama, email, dan password wajib diisi.")
		http.Redirect(w, r, "/admin/users/new", http.StatusSeeOther)
		return
	}

	userModel := models.User{}
	if exist, _ := userModel.FindByEmail(server.DB, email); exist != nil {
		SetFlash(w, r, "error", "Email sudah terdaftar.")
		http.Redirect(w, r, "/admin/users/new", http.StatusSeeOther)
		return
	}

	hashed, err := MakePassword(password)
	if err != nil {
		SetFlash(w, r, "error", "Gagal memproses password.")
		http.Redirect(w, r, "/admin/users/new", http.StatusSeeOther)
		return
	}

	params := &models.User{
		Name:     name,
		Email:    email,
		Phone:    r.FormValue("phone"),
		Password: hashed,
		IsAdmin:  r.FormValue("is_admin") == "1",
	}

	if _, err := userModel.CreateUser(server.DB, params); err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan user.")
		http.Redirect(w, r, "/admin/users/new", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "User berhasil dibuat.")
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// GET /admin/users/{id}/edit
func (server *Server) AdminUsersEdit(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	userModel := models.User{}
	target, err := userModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "User tidak ditemukan.")
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":   server.CurrentUser(w, r),
		"target": target,
		"error":  GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_user_form", data)
}

// POST|PUT /admin/users/{id}
func (server *Server) AdminUsersUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	userModel := models.User{}
	target, err := userModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "User tidak ditemukan.")
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		SetFlash(w, r, "error", "Nama wajib diisi.")
		http.Redirect(w, r, "/admin/users/"+target.ID+"/edit", http.StatusSeeOther)
		return
	}

	target.Name = name
	target.Phone = r.FormValue("phone")
	target.IsAdmin = r.FormValue("is_admin") == "1"

	// password hanya diganti kalau diisi
	if password := r.FormValue("password"); password != "" {
		hashed, err := MakePassword(password)
		if err != nil {
			SetFlash(w, r, "error", "Gagal memproses password.")
			http.Redirect(w, r, "/admin/users/"+target.ID+"/edit", http.StatusSeeOther)
			return
		}
		target.Password = hashed
	}

	if err := server.DB.Save(target).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan perubahan.")
		http.Redirect(w, r, "/admin/users/"+target.ID+"/edit", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Data user berhasil diperbarui.")
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// POST|DELETE /admin/users/{id}/delete
func (server *Server) AdminUsersDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	admin := server.CurrentUser(w, r)

	if admin.ID == vars["id"] {
		SetFlash(w, r, "error", "Tidak bisa menghapus akun sendiri.")
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	if err := server.DB.Delete(&models.User{}, "id = ?", vars["id"]).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menghapus user.")
	} else {
		SetFlash(w, r, "success", "User berhasil dihapus.")
	}

	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}
