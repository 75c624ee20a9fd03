package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rezotera/iprep_portal/middleware"
	"github.com/rezotera/iprep_portal/upstream"
)

type InquiryHandler struct {
	API *upstream.Client
}

func NewInquiryHandler(api *upstream.Client) *InquiryHandler {
	return &InquiryHandler{API: api}
}

// List serves both the inquiries page and the contact form submissions page;
// the platform exposes them through the same support inbox. Read-only.
func (h *InquiryHandler) List(c *fiber.Ctx) error {
	sess := middleware.Session(c)

	inquiries, err := h.API.ListInquiries(c.Context(), sess.UpstreamToken)
	if err != nil {
		return upstreamError(c, err, "Failed to load inquiries")
	}

	for i := range inquiries {
		if inquiries[i].Status == "" {
			inquiries[i].Status = "new"
		}
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		filtered := inquiries[:0]
		for _, inq := range inquiries {
			haystack := strings.ToLower(inq.Name + " " + inq.Email + " " + inq.Subject + " " + inq.Message)
			if strings.Contains(haystack, search) {
				filtered = append(filtered, inq)
			}
		}
		inquiries = filtered
	}

	return c.JSON(fiber.Map{"inquiries": inquiries})
}
