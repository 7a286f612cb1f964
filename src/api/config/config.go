package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	MySQLDSN          string
	RedisURL          string
	JWTSecret         string
	CORSOrigins       string
	LLMProvider       string // "openai" or "anthropic"
	LLMAPIKey         string
	LLMModel          string
	MaxToolIterations int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

func Load() Config {
	// .env.local wins over .env when present, same as the frontend tooling.
	if _, err := os.Stat(".env.local"); err == nil {
		_ = godotenv.Load(".env.local")
	}
	_ = godotenv.Load()

	maxIter, _ := strconv.Atoi(getenv("MAX_TOOL_ITERATIONS", "5"))
	if maxIter <= 0 {
		maxIter = 5
	}

	return Config{
		Port:              getenv("PORT", "3000"),
		MySQLDSN:          getenv("MYSQL_DSN", "chat:chat@tcp(127.0.0.1:3306)/chat_agent?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisURL:          getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:         getenv("JWT_SECRET", ""),
		CORSOrigins:       getenv("CORS_ORIGINS", "http://localhost:5173"),
		LLMProvider:       getenv("LLM_PROVIDER", "openai"),
		LLMAPIKey:         getenv("LLM_API_KEY", ""),
		LLMModel:          os.Getenv("LLM_MODEL"),
		MaxToolIterations: maxIter,
	}
}
