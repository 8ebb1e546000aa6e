package main

import (
	"fortune_wheel/internal/app"
	"log"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
