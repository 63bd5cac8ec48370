package controllers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// GET /admin/payments
// Default menampilkan yang pending dulu, karena itu antrian kerja admin.
func (server *Server) AdminPaymentsIndex(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	perPage := 15

	q := server.DB.Model(&models.Payment{}).
		Preload("Order").
		Preload("Order.User")

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != "all" {
		if status, err := consts.ParsePaymentStatus(statusFilter); err == nil {
			q = q.Where("status = ?", status)
		}
	} else {
		// pending di atas, sisanya urut terbaru
		q = q.Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END")
	}

	var total int64
	_ = q.Count(&total).Error

	var payments []models.Payment
	if err := q.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&payments).Error; err != nil {
		SetFlash(w, r, "error", "Gagal mengambil data pembayaran.")
	}

	pagination, _ := GetPaginationLinks(server.AppConfig, PaginationParams{
		Path:        "admin/payments",
		TotalRows:   int32(total),
		PerPage:     int32(perPage),
		CurrentPage: int32(page),
	})

	data := map[string]interface{}{
		"user":         server.CurrentUser(w, r),
		"payments":     payments,
		"pagination":   pagination,
		"statusFilter": statusFilter,
		"success":      GetFlash(w, r, "success"),
		"error":        GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_payments", data)
}

// GET /admin/payments/{id}
func (server *Server) AdminPaymentsShow(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()
	vars := mux.Vars(r)

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Pembayaran tidak ditemukan.")
		http.Redirect(w, r, "/admin/payments", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"user":      server.CurrentUser(w, r),
		"payment":   payment,
		"order":     payment.Order,
		"countdown": payment.CountdownText(time.Now()),
		"success":   GetFlash(w, r, "success"),
		"error":     GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_payment_detail", data)
}

// POST|PATCH /admin/payments/{id}/verify
// status=verified -> konfirmasi dan update pembayaran pesanan.
// status=rejected -> wajib ada catatan alasan penolakan.
func (server *Server) AdminVerifyPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	admin := server.CurrentUser(w, r)

	paymentModel := models.Payment{}
	payment, err := paymentModel.FindByID(server.DB, vars["id"])
	if err != nil {
		SetFlash(w, r, "error", "Pembayaran tidak ditemukan.")
		http.Redirect(w, r, "/admin/payments", http.StatusSeeOther)
		return
	}

	redirectTo := "/admin/payments/" + payment.ID
	note := strings.TrimSpace(r.FormValue("note"))

	switch r.FormValue("status") {
	case string(consts.PaymentStatusVerified):
		if err := server.verifyPaymentAndApply(payment, admin.ID, note); err != nil {
			SetFlash(w, r, "error", err.Error())
			http.Redirect(w, r, redirectTo, http.StatusSeeOther)
			return
		}

		SetFlash(w, r, "success", "Pembayaran berhasil diverifikasi.")
	case string(consts.PaymentStatusRejected):
		if err := payment.MarkRejected(server.DB, admin.ID, note); err != nil {
			SetFlash(w, r, "error", err.Error())
			http.Redirect(w, r, redirectTo, http.StatusSeeOther)
			return
		}

		SetFlash(w, r, "success", "Pembayaran ditolak.")
	default:
		SetFlash(w, r, "error", "Aksi verifikasi tidak dikenal.")
	}

	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

// GET /admin/payments/import
func (server *Server) ShowImportMutationsPage(w http.ResponseWriter, r *http.Request) {
	ren := adminRender()

	var unmatched int64
	_ = server.DB.Model(&models.BankMutation{}).Where("matched = ?", false).Count(&unmatched).Error

	data := map[string]interface{}{
		"user":      server.CurrentUser(w, r),
		"unmatched": unmatched,
		"success":   GetFlash(w, r, "success"),
		"error":     GetFlash(w, r, "error"),
	}

	_ = ren.HTML(w, http.StatusOK, "admin_payment_import", data)
}

// POST /admin/payments/import
// CSV mutasi rekening dari internet banking. Delimiter titik koma,
// kolom: tanggal;bank;rekening;nominal;berita;ref.
func (server *Server) HandleImportMutationsCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		SetFlash(w, r, "error", "Gagal membaca form upload.")
		http.Redirect(w, r, "/admin/payments/import", http.StatusSeeOther)
		return
	}

	file, _, err := r.FormFile("mutations_csv")
	if err != nil {
		SetFlash(w, r, "error", "Silakan pilih file CSV mutasi.")
		http.Redirect(w, r, "/admin/payments/import", http.StatusSeeOther)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		SetFlash(w, r, "error", "Format CSV tidak valid: "+err.Error())
		http.Redirect(w, r, "/admin/payments/import", http.StatusSeeOther)
		return
	}

	imported := 0
	skipped := 0

	for i, row := range records {
		// baris header
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "tanggal") {
			continue
		}

		mutation, err := parseMutationRow(row)
		if err != nil {
			skipped++
			continue
		}

		// ref code sama = baris sudah pernah diimport
		if mutation.RefCode != "" {
			var count int64
			server.DB.Model(&models.BankMutation{}).Where("ref_code = ?", mutation.RefCode).Count(&count)
			if count > 0 {
				skipped++
				continue
			}
		}

		if err := server.DB.Create(mutation).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}

	SetFlash(w, r, "success", fmt.Sprintf("%d mutasi diimport, %d baris dilewati.", imported, skipped))
	http.Redirect(w, r, "/admin/payments/import", http.StatusSeeOther)
}

// parseMutationRow: tanggal dd/mm/yyyy, opsional dengan jam.
func parseMutationRow(row []string) (*models.BankMutation, error) {
	if len(row) < 4 {
		return nil, fmt.Errorf("kolom kurang: %d", len(row))
	}

	dateStr := strings.TrimSpace(row[0])
	trxTime, err := time.Parse("02/01/2006 15:04", dateStr)
	if err != nil {
		trxTime, err = time.Parse("02/01/2006", dateStr)
		if err != nil {
			return nil, err
		}
	}

	amountStr := strings.TrimSpace(row[3])
	// format Indonesia: 1.500.000,00
	amountStr = strings.ReplaceAll(amountStr, ".", "")
	amountStr = strings.ReplaceAll(amountStr, ",", ".")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("nominal tidak valid: %s", row[3])
	}

	mutation := &models.BankMutation{
		TrxTime: trxTime,
		Bank:    strings.TrimSpace(row[1]),
		Account: strings.TrimSpace(row[2]),
		Amount:  amount,
	}
	if len(row) > 4 {
		mutation.Note = strings.TrimSpace(row[4])
	}
	if len(row) > 5 {
		mutation.RefCode = strings.TrimSpace(row[5])
	}

	return mutation, nil
}

// POST /admin/payments/auto-match
// Cocokkan pembayaran transfer pending dengan mutasi rekening yang
// nominalnya sama persis, lalu verifikasi otomatis yang skornya cukup.
func (server *Server) AutoMatchPayments(w http.ResponseWriter, r *http.Request) {
	var pendings []models.Payment
	if err := server.DB.
		Preload("Order").
		Where("status = ? AND payment_method = ?", consts.PaymentStatusPending, consts.PaymentMethodBankTransfer).
		Find(&pendings).Error; err != nil {
		SetFlash(w, r, "error", "Gagal mengambil pembayaran pending.")
		http.Redirect(w, r, "/admin/payments/import", http.StatusSeeOther)
		return
	}

	matched := 0

	for i := range pendings {
		payment := &pendings[i]

		var candidates []models.BankMutation
		if err := server.DB.
			Where("matched = ? AND amount = ?", false, payment.Amount).
			Find(&candidates).Error; err != nil {
			continue
		}

		best := pickBestMutation(payment, candidates)
		if best == nil {
			continue
		}

		// Mutasi hanya ditandai matched kalau verifikasinya benar beres
		if err := server.verifyPaymentAndApply(payment, "", "Dicocokkan otomatis dengan mutasi rekening"); err != nil {
			log.Println("auto-match verifikasi gagal:", err)
			continue
		}

		now := time.Now()
		server.DB.Model(best).Updates(map[string]interface{}{
			"matched":         true,
			"matched_payment": payment.ID,
			"matched_at":      now,
		})

		matched++
	}

	SetFlash(w, r, "success", fmt.Sprintf("%d pembayaran berhasil dicocokkan.", matched))
	http.Redirect(w, r, "/admin/payments/import", http.StatusSeeOther)
}

// pickBestMutation: nominal sudah sama, tinggal menimbang waktu dan
// berita transfer. Mutasi yang terlalu jauh waktunya tanpa sinyal lain
// tidak dipakai, biar tidak salah cocok.
func pickBestMutation(payment *models.Payment, candidates []models.BankMutation) *models.BankMutation {
	var best *models.BankMutation
	bestScore := -1

	for i := range candidates {
		m := &candidates[i]

		score := calculateMatchScore(payment, m)
		diff := payment.CreatedAt.Sub(m.TrxTime)
		if diff < 0 {
			diff = -diff
		}

		if diff > 24*time.Hour && score < 2 {
			continue
		}

		if score > bestScore {
			best = m
			bestScore = score
		}
	}

	return best
}

func calculateMatchScore(payment *models.Payment, mutation *models.BankMutation) int {
	score := 0

	diff := payment.CreatedAt.Sub(mutation.TrxTime)
	if diff < 0 {
		diff = -diff
	}
	if diff <= 24*time.Hour {
		score++
	}
	if diff <= 6*time.Hour {
		score++
	}

	orderNumber := payment.Order.OrderNumber
	if orderNumber != "" && strings.Contains(strings.ToLower(mutation.Note), strings.ToLower(orderNumber)) {
		score += 2
	}

	return score
}

// GET /admin/payments/export
// Rekap pembayaran dalam bentuk xlsx.
func (server *Server) ExportPaymentsRecap(w http.ResponseWriter, r *http.Request) {
	q := server.DB.Model(&models.Payment{}).
		Preload("Order").
		Preload("Order.User")

	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" && statusFilter != "all" {
		if status, err := consts.ParsePaymentStatus(statusFilter); err == nil {
			q = q.Where("status = ?", status)
		}
	}

	var payments []models.Payment
	if err := q.Order("created_at ASC").Find(&payments).Error; err != nil {
		SetFlash(w, r, "error", "Gagal mengambil data pembayaran.")
		http.Redirect(w, r, "/admin/payments", http.StatusSeeOther)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Rekap Pembayaran"
	index, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "gagal membuat sheet", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"No", "Tanggal", "No. Pesanan", "Customer", "Jenis", "Metode", "Bank", "Nominal", "Status", "Tgl Verifikasi", "Catatan"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	total := decimal.Zero
	for i, p := range payments {
		row := i + 2

		verifiedAt := ""
		if !p.VerifiedAt.IsZero() {
			verifiedAt = p.VerifiedAt.Format("02/01/2006 15:04")
		}

		values := []interface{}{
			i + 1,
			p.CreatedAt.Format("02/01/2006 15:04"),
			p.Order.OrderNumber,
			p.Order.User.Name,
			p.PaymentType.Label(),
			p.PaymentMethod.Label(),
			p.BankCode,
			p.Amount.InexactFloat64(),
			p.StatusLabel(),
			verifiedAt,
			p.Note,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}

		if p.Status == consts.PaymentStatusVerified {
			total = total.Add(p.Amount)
		}
	}

	totalRow := len(payments) + 3
	labelCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(8, totalRow)
	f.SetCellValue(sheet, labelCell, "Total terverifikasi")
	f.SetCellValue(sheet, valueCell, total.InexactFloat64())

	_ = f.SetColWidth(sheet, "B", "D", 22)
	_ = f.SetColWidth(sheet, "E", "K", 18)

	filename := "rekap-pembayaran-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := f.Write(w); err != nil {
		log.Println("gagal menulis file export:", err)
	}
}
