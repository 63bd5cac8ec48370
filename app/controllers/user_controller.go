package controllers

import (
	"net/http"

	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

func (server *Server) Login(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	data := map[string]interface{}{
		"user":  nil,
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "login", data)
}

func (server *Server) Register(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	data := map[string]interface{}{
		"user":  nil,
		"error": GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "register", data)
}

func (server *Server) DoLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	userModel := models.User{}
	user, err := userModel.FindByEmail(server.DB, email)
	if err != nil {
		SetFlash(w, r, "error", "Email atau password salah")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if !ComparePassword(password, user.Password) {
		SetFlash(w, r, "error", "Email atau password salah")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session, _ := store.Get(r, sessionUser)
	session.Values["id"] = user.ID
	session.Save(r, w)

	if user.IsAdmin {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (server *Server) DoRegister(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	password := r.FormValue("password")
	confirmation := r.FormValue("password_confirmation")

	if name == "" || email == "" || password == "" {
		SetFlash(w, r, "error", "Nama, email, dan password wajib diisi")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if password != confirmation {
		SetFlash(w, r, "error", "Konfirmasi password tidak sama")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	userModel := models.User{}
	existUser, _ := userModel.FindByEmail(server.DB, email)
	if existUser != nil {
		SetFlash(w, r, "error", "Maaf, email sudah terdaftar")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hashedPassword, _ := MakePassword(password)
	params := &models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: hashedPassword,
	}

	user, err := userModel.CreateUser(server.DB, params)
	if err != nil {
		SetFlash(w, r, "error", "Maaf, registrasi gagal")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	session, _ := store.Get(r, sessionUser)
	session.Values["id"] = user.ID
	session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (server *Server) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := store.Get(r, sessionUser)

	session.Values["id"] = nil
	session.Save(r, w)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (server *Server) ProfileIndex(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	user := server.CurrentUser(w, r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":    user,
		"flashes": GetFlash(w, r, "success"),
		"errors":  GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "profile", data)
}

func (server *Server) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user := server.CurrentUser(w, r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	user.Name = r.FormValue("name")
	user.Phone = r.FormValue("phone")

	if err := server.DB.Save(user).Error; err != nil {
		http.Error(w, "gagal update profil", http.StatusInternalServerError)
		return
	}

	SetFlash(w, r, "success", "Profil berhasil diperbarui!")

	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (server *Server) ProfilePasswordUpdate(w http.ResponseWriter, r *http.Request) {
	user := server.CurrentUser(w, r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	currentPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirmPassword := r.FormValue("new_password_confirmation")

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		SetFlash(w, r, "error", "Semua field wajib diisi.")
		http.Redirect(w, r, "/profile#password", http.StatusSeeOther)
		return
	}

	if newPassword != confirmPassword {
		SetFlash(w, r, "error", "Konfirmasi password baru tidak sama.")
		http.Redirect(w, r, "/profile#password", http.StatusSeeOther)
		return
	}

	if !ComparePassword(currentPassword, user.Password) {
		SetFlash(w, r, "error", "Password lama salah.")
		http.Redirect(w, r, "/profile#password", http.StatusSeeOther)
		return
	}

	hashed, err := MakePassword(newPassword)
	if err != nil {
		SetFlash(w, r, "error", "Gagal memproses password baru.")
		http.Redirect(w, r, "/profile#password", http.StatusSeeOther)
		return
	}

	user.Password = hashed
	if err := server.DB.Save(user).Error; err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan password baru.")
		http.Redirect(w, r, "/profile#password", http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Password berhasil diubah.")
	http.Redirect(w, r, "/profile#password", http.StatusSeeOther)
}
