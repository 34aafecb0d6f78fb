package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrymomot/servekit"
	"github.com/dmitrymomot/servekit/modules/product"
	"github.com/dmitrymomot/servekit/modules/user"
	"github.com/dmitrymomot/servekit/pkg/config"
	"github.com/dmitrymomot/servekit/pkg/httpclient"
	"github.com/dmitrymomot/servekit/pkg/httpserver"
	"github.com/dmitrymomot/servekit/pkg/logger"
	"github.com/dmitrymomot/servekit/pkg/mongo"
	"github.com/dmitrymomot/servekit/pkg/requestid"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		logCfg     logger.Config
		serverCfg  httpserver.Config
		mongoCfg   mongo.Config
		clientCfg  httpclient.Config
		productCfg product.Config
		userCfg    user.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&logCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&mongoCfg) },
		func() error { return config.Load(&clientCfg) },
		func() error { return config.Load(&productCfg) },
		func() error { return config.Load(&userCfg) },
	} {
		if err := load(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return httpserver.ExitStart
		}
	}

	log := logger.NewFromConfig(logCfg, logger.WithContextExtractors(requestid.LoggerExtractor()))
	logger.SetAsDefault(log)

	ctx := context.Background()

	client, err := mongo.New(ctx, mongoCfg, mongo.WithLogger(log))
	if err != nil {
		log.Error("failed to connect to mongo", logger.Error(err))
		return httpserver.ExitStart
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	products := product.NewMongoRepository(
		client.Database(productCfg.Database).Collection(productCfg.Collection),
		productCfg.BaseURL,
	)
	users := user.NewMongoRepository(
		client.Database(userCfg.Database).Collection(userCfg.Collection),
	)
	upstream := httpclient.NewFromConfig(clientCfg, httpclient.WithLogger(log))

	app := servekit.New(
		servekit.WithLogger(log),
		servekit.WithServer(httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))),
		servekit.WithHealthCheck(mongo.Healthcheck(client)),
	)
	app.Router(
		product.Router(product.NewService(products, log)),
		user.Router(users, upstream, userCfg.UpstreamURL),
	)

	started := false
	err = app.Listen(ctx, func() {
		if !started {
			started = true
			log.Info("server is ready", logger.Addr(serverCfg.Addr))
			return
		}
		log.Info("server stopped")
	})
	if err != nil {
		log.Error("server exited with error", logger.Error(err))
	}
	return httpserver.ExitCode(err)
}
