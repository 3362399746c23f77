package client

import (
	"context"
	"errors"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/domain"
	"github.com/spec-kit/society-portal/internal/session"
)

// Gateway exchanges credentials for a session principal. Both operations are
// single-attempt; a transient failure surfaces immediately to the caller.
type Gateway struct {
	client *Client
}

// NewGateway builds the auth gateway.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// Login authenticates and persists the principal in the session store.
func (g *Gateway) Login(ctx context.Context, email, password string) (*session.Principal, error) {
	var resp dto.PrincipalResponse
	err := g.client.Post(ctx, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, fallbackMessage(err, "login failed")
	}
	return g.storePrincipal(&resp)
}

// Register creates an account and persists the returned principal. Role is
// part of the payload; admin self-registration and admin-created residents
// use the same contract.
func (g *Gateway) Register(ctx context.Context, req dto.RegisterRequest) (*session.Principal, error) {
	var resp dto.PrincipalResponse
	if err := g.client.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, fallbackMessage(err, "registration failed")
	}
	return g.storePrincipal(&resp)
}

// Logout destroys the session.
func (g *Gateway) Logout() error {
	return g.client.Session().Clear()
}

func (g *Gateway) storePrincipal(resp *dto.PrincipalResponse) (*session.Principal, error) {
	principal := &session.Principal{
		ID:         resp.ID,
		Name:       resp.Name,
		Email:      resp.Email,
		Role:       domain.Role(resp.Role),
		FlatNumber: resp.FlatNumber,
		Token:      resp.Token,
	}
	if err := g.client.Session().Set(principal); err != nil {
		return nil, err
	}
	return principal, nil
}

// fallbackMessage keeps server-provided messages and substitutes a generic
// one for transport errors with no message at all.
func fallbackMessage(err error, generic string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			apiErr.Message = generic
		}
		return apiErr
	}
	return errors.New(generic + ": " + err.Error())
}
