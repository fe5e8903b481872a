package main

import (
	"log"

	"go.uber.org/zap"

	"amat_hosting/internal/adapter/http/routes"
	"amat_hosting/internal/config"
	"amat_hosting/internal/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Amat Hosting API
// @version         1.0
// @description     Hosting order checkout, payment reconciliation and server provisioning.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	if err := routes.Run(cfg, l); err != nil {
		l.Fatal("server stopped", zap.Error(err))
	}
	l.Info("server exited")
}
