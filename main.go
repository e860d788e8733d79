package main

import (
	"eldenlens.dev/backend/cmd/app"
)

func main() {
	app.Run()
}
