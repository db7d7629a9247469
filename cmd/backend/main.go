package main

import (
	"buildcost/internal/api"

	"github.com/sirupsen/logrus"
)

// @title BuildCost Procurement API
// @version 1.0
// @description План закупок по смете и журнал фактических закупок
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")
	if err := api.StartServer(); err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("App terminated")
}
