package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// User is the platform API's user record as it appears on the wire.
type User struct {
	ID             StringID `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	IsActive       bool     `json:"isActive"`
	ReferralCode   string   `json:"referralCode"`
	DiscountAmount float64  `json:"discountAmount"`
	CreatedAt      string   `json:"createdAt"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The API wraps the result in
// the standard envelope; anything other than a success envelope carrying both
// a token and a user is an error the caller surfaces to the staff member.
func (c *Client) Login(ctx context.Context, email, password string) (string, User, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", User{}, err
	}

	raw, err := c.do(ctx, http.MethodPost, "/auth/login", "", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", User{}, err
	}

	var env struct {
		Envelope
		Data struct {
			Token string `json:"token"`
			User  *User  `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", User{}, &SchemaError{Endpoint: "/auth/login", Field: "envelope"}
	}

	if env.Code != 200 || env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = "Login failed. Please check your credentials."
		}
		return "", User{}, errors.New(msg)
	}
	if env.Data.Token == "" {
		return "", User{}, errors.New("login succeeded, but no auth token was provided")
	}
	if env.Data.User == nil {
		return "", User{}, errors.New("login succeeded, but no user object was provided")
	}

	return env.Data.Token, *env.Data.User, nil
}

// CurrentUser resolves the token's owner via the who-am-I endpoint.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var data struct {
		User *User `json:"user"`
	}
	if err := c.request(ctx, http.MethodGet, "/users/me", token, nil, &data); err != nil {
		return User{}, err
	}
	if data.User == nil {
		return User{}, &SchemaError{Endpoint: "/users/me", Field: "data.user"}
	}
	return *data.User, nil
}
