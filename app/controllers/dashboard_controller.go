package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/dashboard
func (server *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	var totalOrders, ongoingOrders, pendingPayments int64
	_ = server.DB.Model(&models.Order{}).Count(&totalOrders).Error
	_ = server.DB.Model(&models.Order{}).Where("status = ?", consts.OrderStatusOngoing).Count(&ongoingOrders).Error
	_ = server.DB.Model(&models.Payment{}).Where("status = ?", consts.PaymentStatusPending).Count(&pendingPayments).Error

	// pendapatan terverifikasi bulan berjalan
	monthStart := time.Now().AddDate(0, 0, 1-time.Now().Day())
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), monthStart.Day(), 0, 0, 0, 0, monthStart.Location())

	var verifiedPayments []models.Payment
	_ = server.DB.
		Where("status = ? AND verified_at >= ?", consts.PaymentStatusVerified, monthStart).
		Find(&verifiedPayments).Error

	revenue := decimal.Zero
	for _, p := range verifiedPayments {
		revenue = revenue.Add(p.Amount)
	}

	var recentOrders []models.Order
	_ = server.DB.
		Preload("User").
		Preload("Catalog").
		Order("created_at DESC").
		Limit(5).
		Find(&recentOrders).Error

	var recentPayments []models.Payment
	_ = server.DB.
		Preload("Order").
		Where("status = ?", consts.PaymentStatusPending).
		Order("created_at ASC").
		Limit(5).
		Find(&recentPayments).Error

	data := map[string]interface{}{
		"user":            server.CurrentUser(w, r),
		"totalOrders":     totalOrders,
		"ongoingOrders":   ongoingOrders,
		"pendingPayments": pendingPayments,
		"monthlyRevenue":  revenue,
		"recentOrders":    recentOrders,
		"paymentQueue":    recentPayments,
		"success":         GetFlash(w, r, "success"),
		"error":           GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_dashboard", data)
}
