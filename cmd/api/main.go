package main

import (
	"fmt"
	"net/http"
	"os"

	"petvax-hub/internal/app"
	"petvax-hub/internal/platform/config"

	"go.uber.org/fx"
)

// @title PetvaxHub API
// @version 1.0
// @description Historial de mascotas y vacunas por dueño.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		app.Module,
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
