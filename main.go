package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/analytics-server/api"
	"github.com/carson-networks/analytics-server/internal/cache"
	"github.com/carson-networks/analytics-server/internal/config"
	"github.com/carson-networks/analytics-server/internal/logging"
	"github.com/carson-networks/analytics-server/internal/service"
	"github.com/carson-networks/analytics-server/internal/storage"
	"github.com/carson-networks/analytics-server/internal/upstream/categorizer"
	"github.com/carson-networks/analytics-server/internal/upstream/forecast"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("analytics-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	cacheStore := cache.NewStore()
	cacheStore.StartSweeper(cache.SweepInterval)
	defer cacheStore.Stop()

	categorizerClient := categorizer.NewClient(envConfig.CategorizerURL)
	forecastClient := forecast.NewClient(envConfig.ForecastURL)

	svc := service.NewService(dbStorage, cacheStore, categorizerClient, forecastClient)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
