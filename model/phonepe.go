package model

type PhonePeConfig struct {
	MerchantId  string
	SaltKey     string
	SaltIndex   string
	BaseURL     string
	RedirectURL string
	CallbackURL string
}

// PayPayload is the JSON document that gets base64-encoded and signed.
// Field names are the gateway's, byte-for-byte.
type PayPayload struct {
	MerchantId            string        `json:"merchantId"`
	MerchantTransactionId string        `json:"merchantTransactionId"`
	MerchantUserId        string        `json:"merchantUserId"`
	Amount                int64         `json:"amount"` // minor units (paise)
	RedirectUrl           string        `json:"redirectUrl"`
	RedirectMode          string        `json:"redirectMode"`
	CallbackUrl           string        `json:"callbackUrl"`
	PaymentInstrument     PayInstrument `json:"paymentInstrument"`
}

type PayInstrument struct {
	Type string `json:"type"`
}

type PayResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		InstrumentResponse struct {
			RedirectInfo struct {
				Url string `json:"url"`
			} `json:"redirectInfo"`
		} `json:"instrumentResponse"`
	} `json:"data"`
}

type CallbackInput struct {
	Code string `json:"code"`
}
