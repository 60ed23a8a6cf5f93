package main

import (
	_ "go.uber.org/automaxprocs"

	"locatrack.io/locatrack/cmd/locatrack-monitor/app"
)

func main() {
	app.NewApp().Run()
}
