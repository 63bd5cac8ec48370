package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// POST /orders
// Booking paket: customer memilih katalog, tanggal acara, venue, dan
// opsional fitur custom ("nama|harga" per baris).
func (server *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user := server.CurrentUser(w, r)

	catalogID := r.FormValue("catalog_id")
	eventDateStr := r.FormValue("event_date")
	venue := r.FormValue("venue")

	if catalogID == "" || eventDateStr == "" || venue == "" {
		SetFlash(w, r, "error", "Katalog, tanggal acara, dan venue wajib diisi")
		http.Redirect(w, r, "/catalogs", http.StatusSeeOther)
		return
	}

	catalogModel := models.Catalog{}
	catalog, err := catalogModel.FindByID(server.DB, catalogID)
	if err != nil {
		SetFlash(w, r, "error", "Katalog tidak ditemukan")
		http.Redirect(w, r, "/catalogs", http.StatusSeeOther)
		return
	}

	eventDate, err := time.Parse("2006-01-02", eventDateStr)
	if err != nil {
		SetFlash(w, r, "error", "Format tanggal acara tidak valid")
		http.Redirect(w, r, "/catalogs/"+catalog.Slug, http.StatusSeeOther)
		return
	}

	if eventDate.Before(time.Now()) {
		SetFlash(w, r, "error", "Tanggal acara harus di masa depan")
		http.Redirect(w, r, "/catalogs/"+catalog.Slug, http.StatusSeeOther)
		return
	}

	features, featureTotal := parseCustomFeatures(r.FormValue("custom_features"))

	price := catalog.PriceMin.Add(featureTotal)
	dpPercent := server.DownPaymentPercentDecimal()
	dpAmount := price.Mul(dpPercent).Div(decimal.NewFromInt(100)).Round(2)

	orderData := &models.Order{
		UserID:                user.ID,
		CatalogID:             catalog.ID,
		EventDate:             eventDate,
		Venue:                 venue,
		Price:                 price,
		PaidAmount:            decimal.Zero,
		RemainingAmount:       price,
		DownPaymentAmount:     dpAmount,
		DownPaymentPercentage: dpPercent,
		RequiresDownPayment:   true,
		Status:                consts.OrderStatusPendingPayment,
		Features:              features,
	}

	orderModel := models.Order{}
	order, err := orderModel.CreateOrder(server.DB, orderData)
	if err != nil {
		SetFlash(w, r, "error", "Proses booking gagal: "+err.Error())
		http.Redirect(w, r, "/catalogs/"+catalog.Slug, http.StatusSeeOther)
		return
	}

	SetFlash(w, r, "success", "Booking berhasil dibuat")
	http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
}

// parseCustomFeatures: satu fitur per baris, format "nama|harga".
// Baris tanpa harga valid dianggap harga 0.
func parseCustomFeatures(input string) ([]models.OrderFeature, decimal.Decimal) {
	var features []models.OrderFeature
	total := decimal.Zero

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name := line
		price := decimal.Zero

		if idx := strings.LastIndex(line, "|"); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			if p, err := decimal.NewFromString(strings.TrimSpace(line[idx+1:])); err == nil && p.GreaterThan(decimal.Zero) {
				price = p
			}
		}

		if name == "" {
			continue
		}

		features = append(features, models.OrderFeature{Name: name, Price: price})
		total = total.Add(price)
	}

	return features, total
}

// GET /orders/{id}
func (server *Server) ShowOrder(w http.ResponseWriter, r *http.Request) {
	ren := userRender()
	vars := mux.Vars(r)
	id := vars["id"]

	user := server.CurrentUser(w, r)

	var order models.Order
	err := server.DB.
		Preload("Catalog").
		Preload("Features").
		Preload("Payments", "status <> ?", consts.PaymentStatusRejected).
		Preload("Review").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&order).Error
	if err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":           user,
		"order":          order,
		"paidPercentage": order.PaidPercentage(),
		"discount":       order.DiscountAmount(),
		"success":        GetFlash(w, r, "success"),
		"error":          GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "order_detail", data)
}

// GET /orders
func (server *Server) OrdersIndex(w http.ResponseWriter, r *http.Request) {
	ren := userRender()

	user := server.CurrentUser(w, r)

	// --- filter ---
	q := server.DB.Model(&models.Order{}).
		Preload("Catalog").
		Where("user_id = ?", user.ID)

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != "all" {
		if status, err := consts.ParseOrderStatus(statusFilter); err == nil {
			q = q.Where("status = ?", status)
		}
	}

	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")
	if dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			q = q.Where("event_date >= ?", t)
		}
	}
	if dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			// tambah 1 hari biar inclusive
			q = q.Where("event_date < ?", t.Add(24*time.Hour))
		}
	}

	// --- pagination ---
	const perPage = 10
	pageParam := r.URL.Query().Get("page")
	page := 1
	if pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}

	var total int64
	_ = q.Count(&total).Error

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * perPage

	var orders []models.Order
	err := q.
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		SetFlash(w, r, "error", "Gagal mengambil data pesanan.")
	}

	data := map[string]interface{}{
		"user":         user,
		"orders":       orders,
		"success":      GetFlash(w, r, "success"),
		"error":        GetFlash(w, r, "error"),
		"currentPage":  page,
		"totalPages":   totalPages,
		"statusFilter": statusFilter,
		"dateFrom":     dateFrom,
		"dateTo":       dateTo,
		"query":        r.URL.Query(),
	}

	_ = ren.HTML(w, http.StatusOK, "orders", data)
}
