// Command devtoken prints a signed bearer token for local testing. It reads the
// same JWT_SECRET and JWT_ISSUER settings as the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/splitbalance/internal/platform/config"
	"github.com/SscSPs/splitbalance/internal/utils"
	"github.com/SscSPs/splitbalance/pkg/logging"
)

func main() {
	participant := flag.String("participant", "", "participant ID to put in the subject claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(cfg.IsProduction, cfg.LogLevel)

	if *participant == "" {
		logger.Error("-participant is required")
		os.Exit(2)
	}

	token, err := utils.GenerateJWT(*participant, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
