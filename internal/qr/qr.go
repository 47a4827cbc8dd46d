package qr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 256

// Payload is the JSON document encoded into a product's QR code. Scanners
// that cannot reach the API can still follow VerifyURL directly.
type Payload struct {
	ProductID uint64 `json:"productId"`
	VerifyURL string `json:"verifyUrl"`
}

// Service builds verification payloads and renders them as QR images.
type Service struct {
	baseURL string
}

// New returns a Service issuing links under baseURL.
func New(baseURL string) *Service {
	return &Service{baseURL: strings.TrimRight(baseURL, "/")}
}

// Data builds the payload for a product.
func (s *Service) Data(productID uint64) Payload {
	return Payload{
		ProductID: productID,
		VerifyURL: fmt.Sprintf("%s/verify/%d", s.baseURL, productID),
	}
}

// PNG renders the payload as a 256px PNG at medium error correction.
func (s *Service) PNG(productID uint64) ([]byte, error) {
	raw, err := json.Marshal(s.Data(productID))
	if err != nil {
		return nil, fmt.Errorf("marshal qr payload: %w", err)
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, pngSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}
	return png, nil
}

// DataURL renders the payload as an embeddable data URL.
func (s *Service) DataURL(productID uint64) (string, error) {
	png, err := s.PNG(productID)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
