// cmd/main.go
package main

import (
	"go-session-api/app"
	_ "go-session-api/docs"
)

// @title           Go Session API
// @version         1.0
// @description     Cookie-based session service with short-lived access tokens and opaque refresh tokens.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
