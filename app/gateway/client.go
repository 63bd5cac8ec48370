package gateway

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
)

// Client: koneksi ke payment gateway untuk charge VA dan cek status.
// Semua status transisi tetap diputuskan oleh server kita, gateway hanya
// sumber datanya.
type Client struct {
	BaseURL    string
	ServerKey  string
	HTTPClient *http.Client
}

func NewClient(baseURL, serverKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		ServerKey:  serverKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type ChargeRequest struct {
	OrderRef    string
	BankCode    string
	GrossAmount int64
	ItemName    string
}

type ChargeResponse struct {
	TransactionID string
	VaNumber      string
	ExpiryTime    time.Time
	StatusMessage string
}

type chargeAPIResponse struct {
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusMessage     string `json:"status_message"`
	ExpiryTime        string `json:"expiry_time"`
	VaNumbers         []struct {
		Bank     string `json:"bank"`
		VaNumber string `json:"va_number"`
	} `json:"va_numbers"`
}

const gatewayTimeLayout = "2006-01-02 15:04:05"

func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	payload := map[string]interface{}{
		"payment_type": "bank_transfer",
		"transaction_details": map[string]interface{}{
			"order_id":     req.OrderRef,
			"gross_amount": req.GrossAmount,
		},
		"bank_transfer": map[string]interface{}{
			"bank": req.BankCode,
		},
		"item_details": []map[string]interface{}{
			{
				"id":       req.OrderRef,
				"price":    req.GrossAmount,
				"quantity": 1,
				"name":     req.ItemName,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v2/charge", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.ServerKey, "")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway charge gagal (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp chargeAPIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, err
	}

	result := &ChargeResponse{
		TransactionID: apiResp.TransactionID,
		StatusMessage: apiResp.StatusMessage,
	}

	if len(apiResp.VaNumbers) > 0 {
		result.VaNumber = apiResp.VaNumbers[0].VaNumber
	}
	if result.VaNumber == "" {
		return nil, fmt.Errorf("gateway tidak mengembalikan nomor VA: %s", apiResp.StatusMessage)
	}

	if t, err := time.ParseInLocation(gatewayTimeLayout, apiResp.ExpiryTime, time.Local); err == nil {
		result.ExpiryTime = t
	} else {
		result.ExpiryTime = time.Now().Add(24 * time.Hour)
	}

	return result, nil
}

type statusAPIResponse struct {
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
}

// CheckStatus: tanya status transaksi ke gateway, dipetakan ke status
// pembayaran internal.
func (c *Client) CheckStatus(ctx context.Context, orderRef string) (consts.PaymentStatus, error) {
	url := fmt.Sprintf("%s/v2/%s/status", c.BaseURL, orderRef)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	httpReq.SetBasicAuth(c.ServerKey, "")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway status gagal (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp statusAPIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", err
	}

	return MapTransactionStatus(apiResp.TransactionStatus)
}

// MapTransactionStatus: terjemahkan status gateway ke status internal.
func MapTransactionStatus(s string) (consts.PaymentStatus, error) {
	switch s {
	case "settlement", "capture":
		return consts.PaymentStatusVerified, nil
	case "pending":
		return consts.PaymentStatusPending, nil
	case "deny", "cancel":
		return consts.PaymentStatusRejected, nil
	case "expire":
		return consts.PaymentStatusExpired, nil
	default:
		return "", fmt.Errorf("status gateway tidak dikenal: %q", s)
	}
}

// Notification: payload webhook dari gateway.
type Notification struct {
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	PaymentType       string `json:"payment_type"`
	TransactionStatus string `json:"transaction_status"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`

	VaNumbers []struct {
		Bank     string `json:"bank"`
		VaNumber string `json:"va_number"`
	} `json:"va_numbers,omitempty"`
}

// ValidSignature: sha512(order_id + status_code + gross_amount + server_key).
func (n Notification) ValidSignature(serverKey string) bool {
	raw := n.OrderID + n.StatusCode + n.GrossAmount + serverKey
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:]) == n.SignatureKey
}
