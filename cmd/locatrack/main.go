package main

import (
	"locatrack.io/locatrack/cmd/locatrack/app"
)

func main() {
	app.NewApp().Run()
}
