package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/orders
func (server *Server) AdminOrdersIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	q := server.DB.Model(&models.Order{}).
		Preload("User").
		Preload("Catalog")

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != "all" {
		if status, err := consts.ParseOrderStatus(statusFilter); err == nil {
			q = q.Where("status = ?", status)
		}
	}

	search := strings.TrimSpace(r.URL.Query().Get("q"))
	if search != "" {
		q = q.Where("order_number LIKE ?", "%"+search+"%")
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	perPage := 15

	var total int64
	_ = q.Count(&total).Error

	var orders []models.Order
	if err := q.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&orders).Error; err != nil {
		SetFlash(w, r, "error", "Gagal mengambil data pesanan.")
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "admin/orders",
		TotalRows:   int32(total),
		PerPage:     int32(perPage),
		CurrentPage: int32(page),
	})

	data := map[string]interface{}{
		"user":         server.CurrentUser(w, r),
		"orders":       orders,
		"pagination":   pagination,
		"statusFilter": statusFilter,
		"search":       search,
		"success":      GetFlash(w, r, "success"),
		"error":        GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_orders", data)
}

// GET /admin/orders/{id}
func (server *Server) AdminOrdersShow(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	orderModel := models.Order{}
	order, err := orderModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":           server.CurrentUser(w, r),
		"order":          order,
		"paidPercentage": order.PaidPercentage(),
		"discount":       order.DiscountAmount(),
		"success":        GetFlash(w, r, "success"),
		"error":          GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_order_detail", data)
}

// POST|PATCH /admin/orders/{id}/status
// Pembatalan wajib menyertakan alasan. Selesai hanya dari status ongoing.
func (server *Server) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	orderModel := models.Order{}
	order, err := orderModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	redirectTo := "/admin/orders/" + order.ID

	status, err := consts.ParseOrderStatus(r.FormValue("status"))
	if err != nil {
		SetFlash(w, r, "error", "Status pesanan tidak valid.")
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}

	switch status {
	case consts.OrderStatusCancelled:
		reason := strings.TrimSpace(r.FormValue("cancel_reason"))
		if err := order.Cancel(server.DB, reason); err != nil {
			SetFlash(w, r, "error", err.Error())
			http.Redirect(w, r, redirectTo, http.StatusSeeOther)
			return
		}
		SetFlash(w, r, "success", "Pesanan berhasil dibatalkan.")
	case consts.OrderStatusCompleted:
		if err := order.Complete(server.DB); err != nil {
			SetFlash(w, r, "error", err.Error())
			http.Redirect(w, r, redirectTo, http.StatusSeeOther)
			return
		}
		SetFlash(w, r, "success", "Pesanan ditandai selesai.")
	default:
		SetFlash(w, r, "error", "Perubahan status ini tidak diizinkan.")
	}

	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

// POST /admin/orders/{id}/review
// Admin bisa menginput review atas nama customer (mis. review via WA).
func (server *Server) AdminSubmitReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	orderModel := models.Order{}
	order, err := orderModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	redirectTo := "/admin/orders/" + order.ID

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		SetFlash(w, r, "error", "Rating harus berupa angka 1 sampai 5.")
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}

	comment := strings.TrimSpace(r.FormValue("comment"))

	if _, err := order.AddReview(server.DB, rating, comment); err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, redirectTo, http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Review berhasil disimpan.")
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}
