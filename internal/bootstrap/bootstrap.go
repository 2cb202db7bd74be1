/*
Copyright 2025 Stride Team

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-stride/stride/internal/engine/conf"
	"github.com/go-stride/stride/internal/engine/router"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/cache"
	"github.com/go-stride/stride/pkg/ctx"
	"github.com/go-stride/stride/pkg/database"
	"github.com/go-stride/stride/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// App holds the wired process: the HTTP server, the mail dispatcher and
// the handles they share.
type App struct {
	HttpApp    *fiber.App
	Dispatcher *notify.Dispatcher
	Mongo      *database.MongoClient
	AppConf    conf.AppConfig
}

// NewApp builds the full application from a config file path.
func NewApp(configFile string) (*App, error) {
	appConf := conf.NewConf(configFile)

	if err := log.Init(&appConf.Log); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	mongoClient, err := database.NewMongoDB(appConf.MongoDB, context.Background())
	if err != nil {
		return nil, fmt.Errorf("init mongodb: %w", err)
	}

	appCtx := ctx.NewContext(context.Background(), mongoClient, redisClient, log.GetLogger())

	dispatcher := notify.NewDispatcher(notify.NewSMTPMailer(appConf.Smtp))

	rt := router.NewRouter(&appConf.Http, appCtx, dispatcher)

	return &App{
		HttpApp:    rt.Router(),
		Dispatcher: dispatcher,
		Mongo:      mongoClient,
		AppConf:    appConf,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down in order: listener,
// mail queue, store.
func (a *App) Run() error {
	addr := fmt.Sprintf("%s:%d", a.AppConf.Http.Host, a.AppConf.Http.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.HttpApp.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infof("received signal %s, shutting down", sig)
	}

	shutdownTimeout := time.Duration(a.AppConf.Http.ShutdownTimeout) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	if err := a.HttpApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorf("http shutdown: %v", err)
	}

	a.Dispatcher.Close()

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Mongo.Close(closeCtx); err != nil {
		log.Errorf("mongodb close: %v", err)
	}

	log.Info("shutdown complete")
	return nil
}
