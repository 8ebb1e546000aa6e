// Command token mints an operator access token signed with ACCESS_TOKEN.
package main

import (
	"flag"
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/config/env"
	"fortune_wheel/pkg/token"
	"log"
	"os"
)

func main() {
	operator := flag.String("operator", "", "operator name stored in the token")
	envFile := flag.String("env", ".env", "env file to load")
	flag.Parse()

	if *operator == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := config.Load(*envFile); err != nil {
		log.Printf("Error loading %s: %v", *envFile, err)
	}

	cfg, err := env.NewJWTConfig()
	if err != nil {
		log.Fatalf("jwt config: %v", err)
	}
	tok, err := token.GenerateAccessToken(*operator, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(tok)
}
