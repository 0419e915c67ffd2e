package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"infinite-experiment/crewcenter/internal/auth"
	"infinite-experiment/crewcenter/internal/config"
)

// Issues an access token for a pilot, e.g. for API clients or local testing.
func main() {
	userID := flag.String("user", "", "user id to issue the token for")
	name := flag.String("name", "", "display name stored in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := config.LoadDotEnv(".env", ".env.local"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	if *userID == "" {
		log.Fatal("-user is required")
	}

	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	token, err := auth.NewTokenManager(secret).Issue(*userID, *name, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
