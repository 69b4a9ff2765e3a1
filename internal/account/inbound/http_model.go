package inbound

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	AccountID       string `json:"account_id"`
	Username        string `json:"username"`
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code"`
}

func (RegisterResponse) Message() string {
	return "Enrollment successful. Scan the QR code with your authenticator app."
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct{}

func (ChangePasswordResponse) Message() string {
	return "Password has been changed."
}

type QRCodeResponse struct {
	Username        string `json:"username"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
