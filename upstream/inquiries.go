package upstream

import (
	"context"
	"net/http"
)

// Inquiry is a read-only support/contact message. The portal never mutates
// these.
type Inquiry struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}

func (c *Client) ListInquiries(ctx context.Context, token string) ([]Inquiry, error) {
	var data struct {
		Inquiries []Inquiry `json:"inquiries"`
	}
	if err := c.request(ctx, http.MethodGet, "/support-inquiries", token, nil, &data); err != nil {
		return nil, err
	}
	if data.Inquiries == nil {
		return nil, &SchemaError{Endpoint: "/support-inquiries", Field: "data.inquiries"}
	}
	return data.Inquiries, nil
}
