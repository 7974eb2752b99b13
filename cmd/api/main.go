package main

import (
	"monitoring_tunggakan/internal/adapter/http/routes"
)

// @title           Monitoring Tunggakan API
// @version         1.0
// @description     Relay to the spreadsheet-backed billing backend used by the monitoring views.

// @host localhost:8080

// @BasePath  /

func main() {
	routes.Run()
}
