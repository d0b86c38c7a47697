package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/passcode/internal/app"
)

// @title           Passcode API
// @version         1.0
// @description     Passcode provides passwordless email login with one-time passcodes and cookie sessions.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  SessionCookie
// @in cookie
// @name passcode.session_token
// @description Session token issued by the verify endpoint.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
