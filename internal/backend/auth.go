package backend

import (
	"context"
	"net/http"
)

// GetProfile returns the user the token belongs to.
func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	body, err := c.do(ctx, call{
		op:     "get_profile",
		method: http.MethodGet,
		path:   "/api/auth/profile",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[Profile]("get_profile", body, "user", "profile")
}

// DeleteAccount deletes the account the token belongs to.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{
		op:     "delete_account",
		method: http.MethodDelete,
		path:   "/api/auth/delete",
		token:  token,
	})
	return err
}

// ResetPassword completes a password reset started by e-mail.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	_, err := c.doJSON(ctx, call{
		op:     "reset_password",
		method: http.MethodPost,
		path:   "/api/auth/reset-password/" + escapeID(resetToken),
	}, map[string]string{"password": password})
	return err
}
