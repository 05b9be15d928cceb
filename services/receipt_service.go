package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/rlumactod/boarding_house/configs"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Georgia, serif; margin: 40px; color: #222; }
  .receipt { border: 2px solid #2c3e50; padding: 32px; }
  h1 { text-align: center; letter-spacing: 2px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  td { padding: 8px 4px; border-bottom: 1px solid #ddd; }
  td:last-child { text-align: right; }
  .total { font-weight: bold; font-size: 1.2em; }
</style>
</head>
<body>
<div class="receipt">
  <h1>RENT RECEIPT</h1>
  <table>
    <tr><td>Receipt No.</td><td>{{.PaymentID}}</td></tr>
    <tr><td>Tenant</td><td>{{.TenantName}}</td></tr>
    <tr><td>Billing Period</td><td>{{.Month}}</td></tr>
    <tr><td>Payment Method</td><td>{{.Method}}</td></tr>
    <tr><td>Date Paid</td><td>{{.PaidDate}}</td></tr>
    <tr class="total"><td>Amount Paid</td><td>PHP {{printf "%.2f" .Amount}}</td></tr>
  </table>
  <p>Issued {{.IssuedAt}}. This receipt acknowledges payment received in full for the billing period above.</p>
</div>
</body>
</html>`

// GenerateReceipt renders a PDF receipt for a confirmed payment, uploads it
// and stores the URL on the payment row. Failures are logged only; a missing
// receipt never blocks the payment itself.
func GenerateReceipt(payment models.Payment) {
	if config.Config("CLOUDINARY_URL") == "" {
		log.Println("Cloudinary not configured, skipping receipt generation.")
		return
	}

	htmlData, err := generateReceiptHTML(payment)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for payment %s: %v", payment.ID, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for payment %s: %v", payment.ID, err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, payment.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt for payment %s: %v", payment.ID, err)
		return
	}

	err = database.DB.Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Update("receipt_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to store receipt URL for payment %s: %v", payment.ID, err)
		return
	}

	log.Printf("✅ Generated receipt for payment %s.", payment.ID)
}

func generateReceiptHTML(payment models.Payment) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	method := "cash"
	if payment.PaymentMethod != nil {
		method = *payment.PaymentMethod
	}
	paidDate := time.Now().Format("2006-01-02")
	if payment.PaidDate != nil {
		paidDate = *payment.PaidDate
	}

	data := struct {
		PaymentID  string
		TenantName string
		Month      string
		Method     string
		PaidDate   string
		Amount     float64
		IssuedAt   string
	}{
		PaymentID:  payment.ID.String(),
		TenantName: payment.TenantName,
		Month:      payment.Month,
		Method:     method,
		PaidDate:   paidDate,
		Amount:     payment.Amount,
		IssuedAt:   time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, paymentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", paymentID, uuid.New().String()),
		Folder:       "boarding_house_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
