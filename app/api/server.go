package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/moltbook/moltscope/app/api/controller"
	"github.com/moltbook/moltscope/app/api/types"
	"github.com/moltbook/moltscope/pkg/utils"
)

// NewServer creates the HTTP server and attaches it to the app.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3000")

	app.Server = &http.Server{Addr: addr, Handler: controller.WithCORS(router)}
	app.Logger.Info("Starting server", zap.String("addr", addr))

	return nil
}
