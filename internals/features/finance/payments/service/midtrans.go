package service

import (
	"errors"
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"hairnerds_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var (
	SnapClient snap.Client
	CoreClient coreapi.Client
)

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
	CoreClient.New(serverKey, env)
}

/* =========================================================
   Input helper untuk data customer
========================================================= */

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

/* =========================================================
   Generate Snap Token
========================================================= */

func GenerateSnapToken(p model.PaymentModel, itemName string, cust CustomerInput) (string, string, error) {
	if p.PaymentAmountIDR <= 0 {
		return "", "", errors.New("invalid payment_amount_idr")
	}
	if p.PaymentOrderID == "" {
		return "", "", errors.New("payment_order_id is required")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderID,
			GrossAmt: int64(p.PaymentAmountIDR),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.Name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.PaymentPayableID.String(),
				Price:    int64(p.PaymentAmountIDR),
				Qty:      1,
				Name:     truncate(itemName, 50),
				Category: p.PaymentPayableType,
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

/* =========================================================
   Status poll (GET /payments/:id/status)
========================================================= */

// CheckGatewayStatus menanyakan status transaksi langsung ke gateway.
// Hasilnya dinormalisasi ke bentuk notifikasi supaya lewat mapping yang sama
// dengan webhook.
func CheckGatewayStatus(orderID string) (*CallbackNotification, error) {
	resp, err := CoreClient.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("midtrans check transaction: %w", err)
	}
	return &CallbackNotification{
		OrderID:           resp.OrderID,
		StatusCode:        resp.StatusCode,
		GrossAmount:       resp.GrossAmount,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		TransactionID:     resp.TransactionID,
	}, nil
}

/* =========================================================
   Utils
========================================================= */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
