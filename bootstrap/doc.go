// Package bootstrap wires a service's startup path.
//
// NewApp applies config defaults, validates, initializes the logger and
// installs the configured error renderer as the registry default. Start,
// ready and stop hooks carry the rest of the lifecycle.
//
// # Quick Start
//
//	var cfg MyConfig
//	if err := config.LoadConfig("my-service", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg.Server, app.Logger, app.Registry)
//	srv.ApplyMiddleware()
//	app.OnStart(srv.Start)
//	app.OnStop(srv.Stop)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
