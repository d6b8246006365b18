package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/hubicito/hubicito-api/cmd/app"
)

// @title          Hubicito API
// @version        1.0
// @description    Student projects, presentations and their review.
// @termsOfService  http://swagger.io/terms/
// @contact.name   API Support
//
// @BasePath  /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
