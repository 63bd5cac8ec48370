package consts

import "fmt"

// Status order. Disimpan sebagai string di DB supaya mudah dibaca saat query
// manual, tapi di kode selalu lewat tipe ini.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusOngoing        OrderStatus = "ongoing"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusOngoing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Label: teks status untuk ditampilkan ke user
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPendingPayment:
		return "Menunggu Pembayaran"
	case OrderStatusOngoing:
		return "Sedang Berjalan"
	case OrderStatusCompleted:
		return "Selesai"
	case OrderStatusCancelled:
		return "Dibatalkan"
	default:
		return "Unknown"
	}
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("status order tidak valid: %q", s)
	}
	return status, nil
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusRejected PaymentStatus = "rejected"
	PaymentStatusExpired  PaymentStatus = "expired"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusVerified, PaymentStatusRejected, PaymentStatusExpired:
		return true
	}
	return false
}

// Terminal: status yang tidak bisa berubah lagi
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusVerified, PaymentStatusRejected, PaymentStatusExpired:
		return true
	}
	return false
}

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusPending:
		return "Menunggu Verifikasi"
	case PaymentStatusVerified:
		return "Terverifikasi"
	case PaymentStatusRejected:
		return "Ditolak"
	case PaymentStatusExpired:
		return "Kedaluwarsa"
	default:
		return "Unknown"
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("status pembayaran tidak valid: %q", s)
	}
	return status, nil
}

type PaymentType string

const (
	PaymentTypeDownPayment PaymentType = "down_payment"
	PaymentTypeInstallment PaymentType = "installment"
	PaymentTypeFullPayment PaymentType = "full_payment"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeDownPayment, PaymentTypeInstallment, PaymentTypeFullPayment:
		return true
	}
	return false
}

func (t PaymentType) Label() string {
	switch t {
	case PaymentTypeDownPayment:
		return "Uang Muka"
	case PaymentTypeInstallment:
		return "Cicilan"
	case PaymentTypeFullPayment:
		return "Pelunasan"
	default:
		return "Unknown"
	}
}

func ParsePaymentType(s string) (PaymentType, error) {
	t := PaymentType(s)
	if !t.Valid() {
		return "", fmt.Errorf("jenis pembayaran tidak valid: %q", s)
	}
	return t, nil
}

type PaymentMethod string

const (
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodVirtualAccount PaymentMethod = "virtual_account"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodVirtualAccount:
		return true
	}
	return false
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodBankTransfer:
		return "Transfer Bank"
	case PaymentMethodVirtualAccount:
		return "Virtual Account"
	default:
		return "Unknown"
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("metode pembayaran tidak valid: %q", s)
	}
	return m, nil
}
