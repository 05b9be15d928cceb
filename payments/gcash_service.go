package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"time"

	config "github.com/rlumactod/boarding_house/configs"
)

const defaultGcashEndpoint = "https://sandbox-api.gcash.com/v1"

const referencePrefix = "ORD"
const referenceSuffixLength = 8
const referenceLetterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InitiatePaymentDetails is the internal payment intent handed to the
// provider. Amounts are in major units (PHP); the wire format uses centavos.
type InitiatePaymentDetails struct {
	ReferenceNumber string
	Amount          float64
	Currency        string
	Description     string
	CustomerEmail   string
	CustomerPhone   string
	ReturnURL       string
	CancelURL       string
}

type InitiatePaymentResult struct {
	TransactionID   string
	PaymentLink     string
	QRCode          string
	ReferenceNumber string
	ExpiresAt       string
}

type PaymentStatusResult struct {
	Status          string
	Amount          float64
	Currency        string
	TransactionID   string
	ReferenceNumber string
	CompletedAt     string
	FailureReason   string
}

type RefundResult struct {
	RefundID string
	Status   string
	Amount   float64
}

type paymentRequest struct {
	MerchantID      string       `json:"merchantId"`
	ReferenceNumber string       `json:"referenceNumber"`
	Amount          int64        `json:"amount"`
	Currency        string       `json:"currency"`
	Description     string       `json:"description"`
	Customer        customerInfo `json:"customer"`
	RedirectURLs    redirectURLs `json:"redirectUrls"`
}

type customerInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type redirectURLs struct {
	Return string `json:"return"`
	Cancel string `json:"cancel"`
}

type refundRequest struct {
	TransactionID string `json:"transactionId"`
	Amount        *int64 `json:"amount,omitempty"`
}

type providerResponse struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	ReferenceNumber string `json:"referenceNumber"`
	QRCode          string `json:"qrCode"`
	ExpiresAt       string `json:"expiresAt"`
	CompletedAt     string `json:"completedAt"`
	FailureReason   string `json:"failureReason"`
	Message         string `json:"message"`
	Links           struct {
		Payment string `json:"payment"`
	} `json:"links"`
}

func gcashEndpoint() string {
	if endpoint := config.Config("GCASH_API_ENDPOINT"); endpoint != "" {
		return endpoint
	}
	return defaultGcashEndpoint
}

// FormatAmount converts a major-unit amount to the provider's minor units.
func FormatAmount(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Signature computes the hex HMAC-SHA256 of the exact bytes given. Outgoing
// requests sign the marshalled body that is sent; webhook verification runs
// over the raw body that was received. Both paths share this one function so
// the signed bytes can never diverge from the verified bytes.
func Signature(body []byte) string {
	mac := hmac.New(sha256.New, []byte(config.Config("GCASH_SECRET_KEY")))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyWebhookSignature(body []byte, signature string) bool {
	expected := Signature(body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// GenerateReferenceNumber produces a human-readable correlation id of the
// form ORD-YYYYMMDD-XXXXXXXX. Uniqueness is probabilistic only; callers that
// need a ledger-unique value go through utils.GenerateUniqueReferenceNumber.
func GenerateReferenceNumber() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	suffix := make([]byte, referenceSuffixLength)
	for i := range suffix {
		suffix[i] = referenceLetterBytes[seededRand.Intn(len(referenceLetterBytes))]
	}

	return fmt.Sprintf("%s-%s-%s", referencePrefix, time.Now().Format("20060102"), string(suffix))
}

// InitiatePayment asks the provider for a hosted payment link for the given
// intent. Provider-side rejections come back as errors carrying the provider
// message; handlers surface those as 400s.
func InitiatePayment(details InitiatePaymentDetails) (*InitiatePaymentResult, error) {
	currency := details.Currency
	if currency == "" {
		currency = "PHP"
	}

	payload := paymentRequest{
		MerchantID:      config.Config("GCASH_MERCHANT_ID"),
		ReferenceNumber: details.ReferenceNumber,
		Amount:          FormatAmount(details.Amount),
		Currency:        currency,
		Description:     details.Description,
		Customer: customerInfo{
			Email: details.CustomerEmail,
			Phone: details.CustomerPhone,
		},
		RedirectURLs: redirectURLs{
			Return: details.ReturnURL,
			Cancel: details.CancelURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment payload: %v", err)
	}

	resp, err := postSigned(gcashEndpoint()+"/payments", body)
	if err != nil {
		return nil, err
	}

	return &InitiatePaymentResult{
		TransactionID:   resp.ID,
		PaymentLink:     resp.Links.Payment,
		QRCode:          resp.QRCode,
		ReferenceNumber: details.ReferenceNumber,
		ExpiresAt:       resp.ExpiresAt,
	}, nil
}

// GetPaymentStatus fetches the provider's current view of a transaction.
func GetPaymentStatus(transactionID string) (*PaymentStatusResult, error) {
	req, err := http.NewRequest("GET", gcashEndpoint()+"/payments/"+transactionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.Config("GCASH_API_KEY"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := doProviderRequest(req)
	if err != nil {
		return nil, err
	}

	return &PaymentStatusResult{
		Status:          resp.Status,
		Amount:          float64(resp.Amount) / 100,
		Currency:        resp.Currency,
		TransactionID:   resp.ID,
		ReferenceNumber: resp.ReferenceNumber,
		CompletedAt:     resp.CompletedAt,
		FailureReason:   resp.FailureReason,
	}, nil
}

// CreateRefund requests a refund against a completed transaction. A nil
// amount means a full refund.
func CreateRefund(transactionID string, amount *float64) (*RefundResult, error) {
	payload := refundRequest{TransactionID: transactionID}
	if amount != nil {
		minor := FormatAmount(*amount)
		payload.Amount = &minor
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refund payload: %v", err)
	}

	resp, err := postSigned(gcashEndpoint()+"/refunds", body)
	if err != nil {
		return nil, err
	}

	return &RefundResult{
		RefundID: resp.ID,
		Status:   resp.Status,
		Amount:   float64(resp.Amount) / 100,
	}, nil
}

func postSigned(url string, body []byte) (*providerResponse, error) {
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.Config("GCASH_API_KEY"))
	req.Header.Set("X-Signature", Signature(body))
	req.Header.Set("Content-Type", "application/json")

	return doProviderRequest(req)
}

func doProviderRequest(req *http.Request) (*providerResponse, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach GCash API: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GCash response body: %v", err)
	}

	var parsed providerResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal GCash response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("GCash API error: status %d, body: %s", resp.StatusCode, string(respBody))
		if parsed.Message != "" {
			return nil, fmt.Errorf("%s", parsed.Message)
		}
		return nil, fmt.Errorf("GCash API returned status %d", resp.StatusCode)
	}

	return &parsed, nil
}
