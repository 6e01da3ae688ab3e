package main

import (
	"context"
	"time"

	"github.com/jzmart/account/internal/app"
)

// @title           JZ Mart Account API
// @version         1.0
// @description     JZ Mart storefront account service: OTP gated signup and password reset, sessions and profile management.
// @contact.name    JZ Mart Support
// @contact.email   support@jzmart.com
// @server          http://localhost:8080
// @securityDefinitions.apikey  CookieAuth
// @in cookie
// @name token
// @description Session token set by signup and login.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
