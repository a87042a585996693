package main

import (
	"flag"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"cluedo-manor/internal/cli"
	"cluedo-manor/internal/config"
)

func main() {
	// Optional overrides (CLUEDO_SEED, CLUEDO_CONFIG) come from the
	// environment; a missing .env file is not an error.
	_ = godotenv.Load()

	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", envOr("CLUEDO_CONFIG", "default_config.json"), "Path to the card configuration file")
	seed := flag.Int64("seed", envSeed(), "Random seed (0 uses the current time)")
	flag.Parse()

	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	gameConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	randSource := rand.New(rand.NewSource(*seed))

	ui := cli.NewCLI(log)
	if err := ui.Run(flag.Args(), gameConfig, randSource); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeed() int64 {
	v := os.Getenv("CLUEDO_SEED")
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
