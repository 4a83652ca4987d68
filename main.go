package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/flotahub/fleet-api/api/handlers"

	"go.uber.org/zap"

	"github.com/flotahub/fleet-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	a.Initialize() //initialize database, router and scheduler

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("fleet-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
