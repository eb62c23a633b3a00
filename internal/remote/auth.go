package remote

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (AuthRecord, error) {
	return c.authCall(ctx, "login", "/auth/login", loginRequest{Email: email, Password: password})
}

// Register creates an account and returns its token and profile.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (AuthRecord, error) {
	return c.authCall(ctx, "register", "/auth/register", in)
}

func (c *Client) authCall(ctx context.Context, op, path string, payload any) (AuthRecord, error) {
	r, err := jsonRequest(op, http.MethodPost, path, payload)
	if err != nil {
		return AuthRecord{}, err
	}
	r.public = true
	body, err := c.do(ctx, r)
	if err != nil {
		return AuthRecord{}, err
	}
	return decode[AuthRecord](op, body)
}

// Me returns the profile bound to the client's token.
func (c *Client) Me(ctx context.Context) (AuthRecord, error) {
	const op = "me"
	body, err := c.do(ctx, request{operation: op, method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return AuthRecord{}, err
	}
	return decode[AuthRecord](op, body)
}

// RequestPasswordReset asks the service to mail a reset token.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	r, err := jsonRequest("request password reset", http.MethodPost, "/auth/password-reset/request", resetRequest{Email: email})
	if err != nil {
		return err
	}
	r.public = true
	_, err = c.do(ctx, r)
	return err
}

// ResetPassword applies a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	r, err := jsonRequest("reset password", http.MethodPost, "/auth/password-reset", resetApplyRequest{Token: token, NewPassword: newPassword})
	if err != nil {
		return err
	}
	r.public = true
	_, err = c.do(ctx, r)
	return err
}
