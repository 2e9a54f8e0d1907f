package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	TelegramToken    string
	WebhookPublicURL string
	OpenAIKey        string
	Port             string
	DBPath           string
	StartYear        int // default first year for /ytd history
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9095"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "/app/data/ytd.db"
	}
	startYear := 2004
	if v := os.Getenv("START_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1990 {
			startYear = n
		} else {
			log.Printf("config: ignoring invalid START_YEAR=%q", v)
		}
	}
	return Config{
		TelegramToken:    mustEnv("TELEGRAM_BOT_TOKEN"),
		WebhookPublicURL: mustEnv("WEBHOOK_PUBLIC_URL"),
		OpenAIKey:        mustEnv("OPENAI_API_KEY"),
		Port:             port,
		DBPath:           dbPath,
		StartYear:        startYear,
	}
}
