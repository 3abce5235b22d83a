package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"lnzh/db"
	"lnzh/models"
	"lnzh/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("lnzh-receipt-secret")
}

// ReceiptPayload returns the signed payload embedded in a receipt QR:
// orderID|pickupCode|signature.
func ReceiptPayload(orderID, pickupCode string) string {
	data := fmt.Sprintf("%s|%s", orderID, pickupCode)
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyReceiptPayload checks the signature on a scanned payload and
// returns the order id and pickup code when it is genuine.
func VerifyReceiptPayload(payload string) (string, string, bool) {
	parts := bytes.SplitN([]byte(payload), []byte("|"), 3)
	if len(parts) != 3 {
		return "", "", false
	}
	orderID, pickupCode, sig := string(parts[0]), string(parts[1]), string(parts[2])

	data := fmt.Sprintf("%s|%s", orderID, pickupCode)
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", "", false
	}
	return orderID, pickupCode, true
}

// VerifyReceipt checks a scanned receipt against the stored order. The
// signature check runs before any lookup, so forged payloads never touch
// the database; the pickup code comparison catches receipts for orders
// that were deleted and re-placed.
//
// POST /api/orders/verify
func VerifyReceipt(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Payload == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload required")
		return
	}

	orderID, pickupCode, ok := VerifyReceiptPayload(body.Payload)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid receipt")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.PickupCode != pickupCode {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid receipt")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "order": order})
}

// PrintReceipt renders a PDF pickup receipt with a signed QR code.
//
// GET /api/orders/:orderid/receipt
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(order.OrderID, order.PickupCode), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Coffee Pickup Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", order.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Drink: %s", order.Drink))
	pdf.Ln(8)
	if style := StyleText(order); style != "—" {
		pdf.Cell(0, 10, fmt.Sprintf("Style: %s", style))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Pickup: %s at %s", order.PickupDate, order.PickupTime))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("receipt-qr", 80, 100, 50, 50, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to render receipt", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", order.OrderID))
	w.Write(buf.Bytes())
}
