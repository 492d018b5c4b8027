// Package account covers the provisioning request shapes of the records API:
// self registration, signup-request intake, password changes, and the
// admin-only lender/cashloan creation calls.
package account

import (
	"context"
	"net/http"

	"github.com/linkledger/lenderctl/internal/client/gateway"
	"github.com/linkledger/lenderctl/internal/common"
)

// API combines the protected and unauthenticated surfaces of the gateway.
type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
	Exchange(ctx context.Context, method, path string, body, out any) (int, string, error)
}

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account directly. No credential is attached.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return common.ErrMissingField
	}
	status, msg, err := s.api.Exchange(ctx, http.MethodPost, "/api/register", in, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &gateway.ServerError{Status: status, Message: msg}
	}
	return nil
}

// SignupInput is the signup-request intake payload for operators who cannot
// self-register.
type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

// RequestSignup files a signup request. A 409 means a request for this
// applicant is already pending; it comes back as *gateway.ConflictError so
// the caller can show it as an informational notice, not an error.
func (s *Service) RequestSignup(ctx context.Context, in SignupInput) error {
	if in.FullName == "" || in.Email == "" {
		return common.ErrMissingField
	}
	status, msg, err := s.api.Exchange(ctx, http.MethodPost, "/api/requests/signup", in, nil)
	if err != nil {
		return err
	}
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusConflict:
		return &gateway.ConflictError{Message: msg}
	default:
		return &gateway.ServerError{Status: status, Message: msg}
	}
}

type setPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// SetPassword changes the authenticated operator's password.
func (s *Service) SetPassword(ctx context.Context, current, next string) error {
	if next == "" {
		return common.ErrMissingField
	}
	return s.api.Do(ctx, http.MethodPost, "/api/auth/set-password",
		setPasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}

// LenderInput is the admin payload for provisioning a lender account.
type LenderInput struct {
	Name     string `json:"name"`
	Branch   string `json:"branch,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateLender provisions a lender account. Admin only; the caller gates on
// role before prompting.
func (s *Service) CreateLender(ctx context.Context, in LenderInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return common.ErrMissingField
	}
	return s.api.Do(ctx, http.MethodPost, "/api/admin/lenders", in, nil)
}

// CashloanInput is the admin payload for provisioning a cashloan operation.
type CashloanInput struct {
	Name   string `json:"name"`
	Branch string `json:"branch,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// CreateCashloan provisions a cashloan operation. Admin only.
func (s *Service) CreateCashloan(ctx context.Context, in CashloanInput) error {
	if in.Name == "" {
		return common.ErrMissingField
	}
	return s.api.Do(ctx, http.MethodPost, "/api/admin/create-cashloan", in, nil)
}
