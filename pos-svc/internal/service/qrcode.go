package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link to the order ticket page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	ticketURL := fmt.Sprintf("%s/pedidos/%s", g.BaseURL, url.PathEscape(orderID))
	return qrcode.Encode(ticketURL, qrcode.Medium, 256)
}
