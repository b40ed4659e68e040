package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/analytics-server/internal/handlers/v1/analytics"
	cachehandler "github.com/carson-networks/analytics-server/internal/handlers/v1/cache"
	"github.com/carson-networks/analytics-server/internal/handlers/v1/status"
	"github.com/carson-networks/analytics-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/analytics-server/internal/logging"
	"github.com/carson-networks/analytics-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("analytics-server", "1.0.0"))
	humaAPI.UseMiddleware(logging.LoggingMiddleware(r.Logger))

	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)

	analytics.NewGetForecastHandler(r.Service.Analytics).Register(humaAPI)
	analytics.NewGetInsightsHandler(r.Service.Analytics).Register(humaAPI)
	analytics.NewGetCreditScoreHandler(r.Service.Analytics).Register(humaAPI)
	analytics.NewGetClassifiedHandler(r.Service.Analytics).Register(humaAPI)

	cachehandler.NewGetStatsHandler(r.Service.Analytics).Register(humaAPI)
	cachehandler.NewClearHandler(r.Service.Analytics).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
