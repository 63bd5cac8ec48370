package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/gateway"
	"github.com/hyderoo/dewa-wo-sub001/app/jobs"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

const paymentExpiryWindow = 24 * time.Hour

// GET /orders/{id}/payment
// Form pembayaran: pilih jenis (DP/cicilan/pelunasan) dan metode
// (transfer manual atau virtual account).
func (server *Server) PaymentDetail(w http.ResponseWriter, r *http.Request) {
	ren := userRender()
	vars := mux.Vars(r)

	user := server.CurrentUser(w, r)

	var order models.Order
	if err := server.DB.
		Preload("Catalog").
		Where("id = ? AND user_id = ?", vars["id"], user.ID).
		First(&order).Error; err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if order.Status == consts.OrderStatusCancelled || order.IsFullyPaid() {
		SetFlash(w, r, "error", "Pesanan ini tidak menerima pembayaran lagi.")
		http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
		return
	}

	// Kalau masih ada pembayaran pending, arahkan ke halaman statusnya
	// daripada membuat pembayaran baru.
	var pending models.Payment
	if err := server.DB.
		Where("order_id = ? AND status = ?", order.ID, consts.PaymentStatusPending).
		First(&pending).Error; err == nil {
		http.Redirect(w, r, "/payments/"+pending.ID, http.StatusSeeOther)
		return
	}

	bankModel := models.Bank{}
	banks, _ := bankModel.GetActive(server.DB)

	vaModel := models.VirtualAccount{}
	virtualAccounts, _ := vaModel.GetActive(server.DB)

	data := map[string]interface{}{
		"user":               user,
		"order":              order,
		"banks":              banks,
		"virtualAccounts":    virtualAccounts,
		"allowedTypes":       models.AllowedPaymentTypes(&order),
		"defaultInstallment": models.DefaultInstallmentAmount(&order),
		"success":            GetFlash(w, r, "success"),
		"error":              GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "payment_detail", data)
}

// POST /orders/{id}/payments
// Transfer manual: wajib pilih bank aktif dan lampirkan bukti transfer.
func (server *Server) StoreBankTransferPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user := server.CurrentUser(w, r)

	var order models.Order
	if err := server.DB.
		Where("id = ? AND user_id = ?", vars["id"], user.ID).
		First(&order).Error; err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	paymentType, amount, err := server.resolvePaymentInput(&order, r.FormValue("payment_type"), r.FormValue("amount"))
	if err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	bankModel := models.Bank{}
	bank, err := bankModel.FindActiveByCode(server.DB, r.FormValue("bank_code"))
	if err != nil {
		SetFlash(w, r, "error", "Silakan pilih bank tujuan transfer.")
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	// Cek double-submit dulu sebelum ada file yang tersimpan ke disk
	paymentModel := models.Payment{}
	if pending, _ := paymentModel.HasPendingForOrder(server.DB, order.ID); pending {
		SetFlash(w, r, "error", "Masih ada pembayaran yang menunggu verifikasi untuk pesanan ini.")
		http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
		return
	}

	proof, err := SaveUploadedImage(r, "payment_proof", "payments")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			SetFlash(w, r, "error", "Silakan pilih file bukti transfer.")
		} else {
			SetFlash(w, r, "error", err.Error())
		}
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	payment, err := paymentModel.CreatePayment(server.DB, &models.Payment{
		OrderID:       order.ID,
		Amount:        amount,
		PaymentType:   paymentType,
		PaymentMethod: consts.PaymentMethodBankTransfer,
		BankCode:      bank.Code,
		Status:        consts.PaymentStatusPending,
		ExpiryTime:    time.Now().Add(paymentExpiryWindow),
		PaymentProof:  proof,
	})
	if err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan data pembayaran, silakan coba lagi.")
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	server.schedulePaymentExpiry(payment)

	SetFlash(w, r, "success", "Bukti transfer berhasil diupload. Menunggu verifikasi admin.")
	http.Redirect(w, r, "/payments/"+payment.ID, http.StatusSeeOther)
}

// POST /orders/{id}/payments/virtual-account
func (server *Server) StoreVirtualAccountPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user := server.CurrentUser(w, r)

	var order models.Order
	if err := server.DB.
		Preload("Catalog").
		Where("id = ? AND user_id = ?", vars["id"], user.ID).
		First(&order).Error; err != nil {
		SetFlash(w, r, "error", "Pesanan tidak ditemukan.")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	paymentType, amount, err := server.resolvePaymentInput(&order, r.FormValue("payment_type"), r.FormValue("amount"))
	if err != nil {
		SetFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	vaModel := models.VirtualAccount{}
	va, err := vaModel.FindActiveByBankCode(server.DB, r.FormValue("bank_code"))
	if err != nil {
		SetFlash(w, r, "error", "Silakan pilih bank virtual account.")
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	paymentModel := models.Payment{}
	if pending, _ := paymentModel.HasPendingForOrder(server.DB, order.ID); pending {
		SetFlash(w, r, "error", "Masih ada pembayaran yang menunggu verifikasi untuk pesanan ini.")
		http.Redirect(w, r, "/orders/"+order.ID, http.StatusSeeOther)
		return
	}

	// ID payment dipakai sebagai referensi transaksi di gateway.
	paymentID := uuid.New().String()

	charge, err := server.Gateway.Charge(r.Context(), gateway.ChargeRequest{
		OrderRef:    paymentID,
		BankCode:    va.BankCode,
		GrossAmount: amount.IntPart(),
		ItemName:    order.OrderNumber + " - " + paymentType.Label(),
	})
	if err != nil {
		log.Println("gateway charge error:", err)
		SetFlash(w, r, "error", "Gagal membuat virtual account, silakan coba lagi.")
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	newPayment := &models.Payment{
		ID:            paymentID,
		OrderID:       order.ID,
		Amount:        amount,
		PaymentType:   paymentType,
		PaymentMethod: consts.PaymentMethodVirtualAccount,
		BankCode:      va.BankCode,
		Status:        consts.PaymentStatusPending,
		ExpiryTime:    charge.ExpiryTime,
		VaNumber:      charge.VaNumber,
	}
	newPayment.SnapshotInstructions(va)

	payment, err := paymentModel.CreatePayment(server.DB, newPayment)
	if err != nil {
		SetFlash(w, r, "error", "Gagal menyimpan data pembayaran, silakan coba lagi.")
		http.Redirect(w, r, "/orders/"+order.ID+"/payment", http.StatusSeeOther)
		return
	}

	server.schedulePaymentExpiry(payment)

	SetFlash(w, r, "success", "Virtual account berhasil dibuat. Selesaikan pembayaran sebelum batas waktu.")
	http.Redirect(w, r, "/payments/"+payment.ID, http.StatusSeeOther)
}

// resolvePaymentInput: validasi jenis pembayaran dan hitung nominalnya.
func (server *Server) resolvePaymentInput(order *models.Order, typeInput string, amountInput string) (consts.PaymentType, decimal.Decimal, error) {
	if order.Status == consts.OrderStatusCancelled {
		return "", decimal.Zero, errors.New("Pesanan sudah dibatalkan.")
	}

	paymentType, err := consts.ParsePaymentType(typeInput)
	if err != nil {
		return "", decimal.Zero, errors.New("Silakan pilih jenis pembayaran.")
	}

	allowed := false
	for _, t := range models.AllowedPaymentTypes(order) {
		if t == paymentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", decimal.Zero, errors.New("Jenis pembayaran ini tidak tersedia untuk pesanan Anda.")
	}

	amount := models.DerivePaymentAmount(order, paymentType, amountInput)
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", decimal.Zero, errors.New("Nominal pembayaran tidak valid.")
	}

	return paymentType, amount, nil
}

func (server *Server) schedulePaymentExpiry(payment *models.Payment) {
	task, err := jobs.NewPaymentExpireTask(payment.ID)
	if err != nil {
		log.Println("gagal membuat task expire:", err)
		return
	}

	delay := time.Until(payment.ExpiryTime)
	if delay < 0 {
		delay = 0
	}

	if _, err := server.Queue.Enqueue(task, asynq.ProcessIn(delay)); err != nil {
		log.Println("gagal enqueue task expire:", err)
	}
}

// GET /payments/{id}
func (server *Server) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	ren := userRender()
	vars := mux.Vars(r)

	user := server.CurrentUser(w, r)

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Pembayaran tidak ditemukan.")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	if payment.Order.UserID != user.ID && !user.IsAdmin {
		SetFlash(w, r, "error", "Pembayaran tidak ditemukan.")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":         user,
		"payment":      payment,
		"order":        payment.Order,
		"countdown":    payment.CountdownText(time.Now()),
		"instructions": payment.InstructionList(),
		"success":      GetFlash(w, r, "success"),
		"error":        GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "payment_status", data)
}

// GET /api/v1/payments/{id}/check-status
// Untuk VA pending, status ditanyakan ulang ke gateway dengan cache 30
// detik supaya tombol "cek status" tidak menghajar gateway.
func (server *Server) CheckPaymentStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByID(server.DB, vars["id"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(Result{Code: 404, Data: map[string]string{"status": "error"}, Message: "Pembayaran tidak ditemukan"})
		return
	}

	// Hanya pemilik order (atau admin) yang boleh polling status
	user := server.CurrentUser(w, r)
	if user == nil || (payment.Order.UserID != user.ID && !user.IsAdmin) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(Result{Code: 404, Data: map[string]string{"status": "error"}, Message: "Pembayaran tidak ditemukan"})
		return
	}

	if payment.Status == consts.PaymentStatusPending && payment.PaymentMethod == consts.PaymentMethodVirtualAccount {
		if err := server.syncGatewayStatus(r, payment); err != nil {
			log.Println("check-status gateway error:", err)
			_ = json.NewEncoder(w).Encode(Result{
				Code:    200,
				Data:    map[string]string{"status": "error"},
				Message: "Gagal mengecek status pembayaran, silakan coba lagi",
			})
			return
		}
	}

	_ = json.NewEncoder(w).Encode(Result{
		Code: 200,
		Data: map[string]string{
			"status": string(payment.Status),
			"label":  payment.StatusLabel(),
		},
		Message: "ok",
	})
}

// syncGatewayStatus: tarik status dari gateway dan terapkan transisinya.
// Status lokal tidak berubah kalau gateway error.
func (server *Server) syncGatewayStatus(r *http.Request, payment *models.Payment) error {
	ctx := r.Context()
	cacheKey := "payment_status_" + payment.ID

	cached, err := server.Redis.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		// Masih dalam jendela cache, pakai hasil terakhir
		if cached == string(payment.Status) {
			return nil
		}
	} else if err != nil && err != redis.Nil {
		log.Println("redis cache error:", err)
	}

	status, err := server.Gateway.CheckStatus(ctx, payment.ID)
	if err != nil {
		return err
	}

	server.Redis.Set(ctx, cacheKey, string(status), 30*time.Second)

	return server.applyGatewayStatus(payment, status)
}

// verifyPaymentAndApply: verifikasi pembayaran dan terapkan nominalnya ke
// order sebagai satu kesatuan. Order dicek dulu lewat CanAcceptPayment,
// lalu kedua update berjalan dalam satu transaksi supaya tidak ada
// pembayaran berstatus verified yang nominalnya tidak tercatat di order.
func (server *Server) verifyPaymentAndApply(payment *models.Payment, adminID string, note string) error {
	orderModel := models.Order{}
	order, err := orderModel.FindByID(server.DB, payment.OrderID)
	if err != nil {
		return err
	}

	if err := order.CanAcceptPayment(payment); err != nil {
		return err
	}

	return server.DB.Transaction(func(tx *gorm.DB) error {
		if err := payment.MarkVerified(tx, adminID, note); err != nil {
			return err
		}

		return order.ApplyPayment(tx, payment)
	})
}

// applyGatewayStatus: transisi idempoten; status terminal tidak disentuh lagi.
func (server *Server) applyGatewayStatus(payment *models.Payment, status consts.PaymentStatus) error {
	if payment.Status.Terminal() || status == consts.PaymentStatusPending {
		return nil
	}

	switch status {
	case consts.PaymentStatusVerified:
		return server.verifyPaymentAndApply(payment, "", "Dikonfirmasi otomatis oleh payment gateway")
	case consts.PaymentStatusRejected:
		return payment.MarkRejected(server.DB, "", "Ditolak oleh payment gateway")
	case consts.PaymentStatusExpired:
		return payment.MarkExpired(server.DB)
	}

	return nil
}

// POST /api/v1/payments/notification
// Webhook dari gateway. Signature wajib valid sebelum status dipercaya.
func (server *Server) HandleGatewayNotification(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var notification gateway.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(Result{Code: 400, Message: "Payload tidak valid"})
		return
	}

	if !notification.ValidSignature(server.AppConfig.GatewayServerKey) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(Result{Code: 403, Message: "Signature tidak valid"})
		return
	}

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByID(server.DB, notification.OrderID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(Result{Code: 404, Message: "Pembayaran tidak ditemukan"})
		return
	}

	status, err := gateway.MapTransactionStatus(notification.TransactionStatus)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(Result{Code: 400, Message: err.Error()})
		return
	}

	if err := server.applyGatewayStatus(payment, status); err != nil {
		log.Println("webhook apply status error:", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(Result{Code: 500, Message: "Gagal memproses notifikasi"})
		return
	}

	_ = json.NewEncoder(w).Encode(Result{Code: 200, Message: "ok"})
}
