package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	SMTPHost     string // レシートメールの送信先SMTP
	SMTPPort     string
	SMTPFrom     string
	SMTPUser     string
	SMTPPassword string

	GoEnv string // dev/prod
}

// Loadは環境変数から設定を読む
// DB接続はinfra/dbが自分で環境変数を読む（DATABASE_URL優先）
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SMTPHost:     getenv("SMTP_HOST", "localhost"),
		SMTPPort:     getenv("SMTP_PORT", "25"),
		SMTPFrom:     getenv("SMTP_FROM", "no-reply@bookstore.local"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	// 必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
