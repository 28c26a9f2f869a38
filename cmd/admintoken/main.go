package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tabc-sales-api/internal/config"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/tabc-sales-api/pkg/log"
	"github.com/vfg2006/tabc-sales-api/pkg/middleware"
)

// admintoken emite um token HS256 assinado com AUTH_SECRET para as rotas administrativas
func main() {
	name := flag.String("name", "", "identificação de quem vai usar o token")
	role := flag.Int("role", middleware.RoleAdmin, "papel do token (1 = admin)")
	ttl := flag.Duration("ttl", authenticating.DefaultTokenTTL, "validade do token")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)

	token, err := authenticating.NewService(cfg).GenerateToken(*name, *role, *ttl)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gerar token")
		os.Exit(1)
	}

	logrus.WithFields(logrus.Fields{
		"name": *name,
		"role": *role,
		"ttl":  ttl.String(),
	}).Info("Token gerado")

	fmt.Println(token)
}
