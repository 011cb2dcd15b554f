package handler

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"ticketflix/config"
	"ticketflix/model"
	"time"

	"github.com/shopspring/decimal"
)

// PhonePe gateway service. The /pg/v1/pay path is part of the signed
// material, not just the route.
const phonePePayPath = "/pg/v1/pay"

type PhonePe struct {
	Config model.PhonePeConfig
	client *http.Client
}

func NewPhonePe() *PhonePe {
	return &PhonePe{
		Config: model.PhonePeConfig{
			MerchantId:  config.Config("PHONEPE_MERCHANT_ID"),
			SaltKey:     config.Config("PHONEPE_SALT_KEY"),
			SaltIndex:   config.ConfigDefault("PHONEPE_SALT_INDEX", "1"),
			BaseURL:     config.Config("PHONEPE_URL"),
			RedirectURL: config.Config("APP_URL") + "/payment/return",
			CallbackURL: config.Config("APP_URL") + "/payment/callback",
		},
		// initiate blocks a user-facing redirect; never hang on the gateway
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// BuildPayload assembles and base64-encodes the gateway request body.
// The amount goes over the wire in paise; decimal arithmetic avoids the
// float rounding that 100*amount invites.
func (p *PhonePe) BuildPayload(b model.Booking) (string, error) {
	paise := decimal.NewFromFloat(b.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	payload := model.PayPayload{
		MerchantId:            p.Config.MerchantId,
		MerchantTransactionId: b.TransactionId,
		MerchantUserId:        "MUID-" + b.TransactionId,
		Amount:                paise,
		RedirectUrl:           p.Config.RedirectURL + "/" + b.TransactionId,
		RedirectMode:          "REDIRECT",
		CallbackUrl:           p.Config.CallbackURL + "/" + b.TransactionId,
		PaymentInstrument:     model.PayInstrument{Type: "PAY_PAGE"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Checksum is the gateway's X-VERIFY header:
// sha256(base64Payload + "/pg/v1/pay" + saltKey) in hex, then "###" and
// the salt index. Byte-for-byte per the gateway contract.
func (p *PhonePe) Checksum(base64Payload string) string {
	sum := sha256.Sum256([]byte(base64Payload + phonePePayPath + p.Config.SaltKey))
	return hex.EncodeToString(sum[:]) + "###" + p.Config.SaltIndex
}

// Initiate posts the signed payload and returns the hosted redirect URL.
func (p *PhonePe) Initiate(booking model.Booking) (string, error) {
	base64Payload, err := p.BuildPayload(booking)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]string{"request": base64Payload})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, p.Config.BaseURL+phonePePayPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", p.Checksum(base64Payload))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payResp model.PayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payResp); err != nil {
		return "", err
	}
	if !payResp.Success {
		return "", errors.New("gateway rejected payment: " + payResp.Code)
	}

	redirect := payResp.Data.InstrumentResponse.RedirectInfo.Url
	if redirect == "" {
		return "", errors.New("gateway returned no redirect url")
	}
	return redirect, nil
}
