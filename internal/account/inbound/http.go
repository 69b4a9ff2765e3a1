package inbound

import (
	"context"

	"github.com/otpgate/otpgate/internal/account/usecase"
	"github.com/otpgate/otpgate/internal/pkg/router"
)

type uc interface {
	Enroll(ctx context.Context, in usecase.EnrollInput) (*usecase.EnrollOutput, error)
	Rotate(ctx context.Context, in usecase.RotateInput) error
	QRCode(ctx context.Context, in usecase.QRCodeInput) (*usecase.QRCodeOutput, error)
	Describe(ctx context.Context, in usecase.DescribeInput) (*usecase.DescribeOutput, error)
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
	Health(ctx context.Context) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Enrollment & credential rotation
	r.POST("/api/register", end.Register)
	r.POST("/api/change-password", end.ChangePassword)

	// Provisioning
	r.GET("/api/user/:username/qr-code", end.QRCode)

	// Directory & operations
	r.GET("/api/user/:username", end.User)
	r.GET("/api/users", end.Users)
	r.GET("/api/health", end.Health)
}
