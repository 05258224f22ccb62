package main

import (
	"collabboard/cmd/app"
)

func main() {
	app.NewApp().LetsGo()
}
