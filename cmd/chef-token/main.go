// Command chef-token prints a token for the configured chef. Tokens only stay
// valid across restarts when JWT_SECRET_KEY is set.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rsmanito/restaurant-api/config"
	"github.com/rsmanito/restaurant-api/service"
	log "github.com/sirupsen/logrus"
)

func main() {
	ttl := flag.Duration("ttl", 15*time.Minute, "token lifetime, 0 for no expiry")
	flag.Parse()

	cfg := config.Load()
	if cfg.SecretGenerated() {
		log.Warn("The token is signed with a throwaway secret and will not verify against the server")
	}

	token, err := service.New(cfg).IssueChefToken(*ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
