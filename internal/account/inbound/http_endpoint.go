package inbound

import (
	"github.com/otpgate/otpgate/internal/account/usecase"
	"github.com/otpgate/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for enrollment and credential rotation.
type HTTPEndpoint struct {
	uc uc
}

// Register enrolls a system user for OTP-gated password changes.
// @Summary Enroll account
// @Description Enrolls an existing Linux user, returning the TOTP secret, provisioning URI, and a QR code.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Enrollment payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "Enrollment result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Username or email already enrolled"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Enroll(r.Context(), usecase.EnrollInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		AccountID:       resp.AccountID,
		Username:        resp.Username,
		Secret:          resp.Secret,
		ProvisioningURI: resp.ProvisioningURI,
		QRCode:          resp.QRCodeBase64,
	}, nil
}

// ChangePassword rotates the system password after TOTP verification.
// @Summary Change password
// @Description Verifies the TOTP code and rotates the Linux account password.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password change payload"
// @Success 200 {object} router.successResponse{data=ChangePasswordResponse} "Password change result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 403 {object} router.errorResponse "Invalid or replayed code"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 409 {object} router.errorResponse "Concurrent password change"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/change-password [post]
func (h *HTTPEndpoint) ChangePassword(r *router.Request) (any, error) {
	var req ChangePasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Rotate(r.Context(), usecase.RotateInput{
		Username:      req.Username,
		Code:          req.Code,
		NewCredential: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return ChangePasswordResponse{}, nil
}

// QRCode re-issues the provisioning QR for an enrolled account.
// @Summary Provisioning QR code
// @Description Returns the otpauth provisioning URI and QR code for an active account.
// @Tags Account
// @Produce json
// @Param username path string true "Linux username"
// @Success 200 {object} router.successResponse{data=QRCodeResponse} "Provisioning data"
// @Failure 403 {object} router.errorResponse "Account disabled"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/user/{username}/qr-code [get]
func (h *HTTPEndpoint) QRCode(r *router.Request) (any, error) {
	resp, err := h.uc.QRCode(r.Context(), usecase.QRCodeInput{
		Username: r.GetParam("username"),
	})
	if err != nil {
		return nil, err
	}

	return QRCodeResponse{
		Username:        resp.Username,
		ProvisioningURI: resp.ProvisioningURI,
		QRCode:          resp.QRCodeBase64,
	}, nil
}

// User returns one enrolled account with secrets redacted.
// @Summary Account detail
// @Description Returns a single enrolled account. TOTP secrets and replay state are never included.
// @Tags Account
// @Produce json
// @Param username path string true "Linux username"
// @Success 200 {object} router.successResponse{data=UserResponse} "Account detail"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/user/{username} [get]
func (h *HTTPEndpoint) User(r *router.Request) (any, error) {
	resp, err := h.uc.Describe(r.Context(), usecase.DescribeInput{
		Username: r.GetParam("username"),
		ClientIP: r.ClientIP(),
	})
	if err != nil {
		return nil, err
	}

	acc := resp.Account
	return UserResponse{
		ID:        acc.ID,
		Username:  acc.Username,
		Email:     acc.Email,
		Active:    acc.Active,
		CreatedAt: acc.CreatedAt,
	}, nil
}

// Users lists enrolled accounts with secrets redacted.
// @Summary List accounts
// @Description Lists all enrolled accounts. TOTP secrets and replay state are never included.
// @Tags Account
// @Produce json
// @Success 200 {object} router.successResponse{data=UsersResponse} "Account listing"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/users [get]
func (h *HTTPEndpoint) Users(r *router.Request) (any, error) {
	resp, err := h.uc.List(r.Context(), usecase.ListInput{ClientIP: r.ClientIP()})
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(resp.Accounts))
	for _, acc := range resp.Accounts {
		users = append(users, UserResponse{
			ID:        acc.ID,
			Username:  acc.Username,
			Email:     acc.Email,
			Active:    acc.Active,
			CreatedAt: acc.CreatedAt,
		})
	}

	return UsersResponse{Users: users}, nil
}

// Health reports service liveness.
// @Summary Health check
// @Description Verifies the service and its database connection are alive.
// @Tags Operations
// @Produce json
// @Success 200 {object} router.successResponse{data=HealthResponse} "Service healthy"
// @Failure 500 {object} router.errorResponse "Service unhealthy"
// @Router /api/health [get]
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	if err := h.uc.Health(r.Context()); err != nil {
		return nil, err
	}

	return HealthResponse{Status: "ok"}, nil
}
