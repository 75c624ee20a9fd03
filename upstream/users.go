package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// UserPayload is the create/update body for the users collection. The API
// takes snake_case on writes even though it answers camelCase.
type UserPayload struct {
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	Email                  string  `json:"email"`
	Role                   string  `json:"role"`
	Password               string  `json:"password,omitempty"`
	ReferredByReferralCode string  `json:"referred_by_referral_code,omitempty"`
	DiscountAmount         float64 `json:"discount_amount,omitempty"`
	IsActive               *bool   `json:"is_active,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var data struct {
		Users []User `json:"users"`
	}
	if err := c.request(ctx, http.MethodGet, "/users", token, nil, &data); err != nil {
		return nil, err
	}
	if data.Users == nil {
		return nil, &SchemaError{Endpoint: "/users", Field: "data.users"}
	}
	return data.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, p UserPayload) error {
	return c.request(ctx, http.MethodPost, "/users/register", token, p, nil)
}

func (c *Client) UpdateUser(ctx context.Context, token, userID string, p UserPayload) error {
	return c.request(ctx, http.MethodPut, fmt.Sprintf("/users/%s", userID), token, p, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/users/%s", userID), token, nil, nil)
}
