package main

import (
	"context"
	"time"

	"github.com/otpgate/otpgate/internal/app"
)

// @title           OTPGate API
// @version         1.0
// @description     OTPGate gates local credential rotation behind TOTP enrollment and verification.
// @termsOfService  https://otpgate.dev/terms
// @contact.name    Contact Support
// @contact.url     https://otpgate.dev/contact
// @contact.email   support@otpgate.dev
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @server          https://localhost:8080
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
