// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"os"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// 必須の環境変数はなく、すべてデフォルト値で起動できる。
type Config struct {
	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// Static
	StaticDir string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
func Load() *Config {
	return &Config{
		ServerPort:        getEnvString("SERVER_PORT", "8080"),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		StaticDir:         getEnvString("STATIC_DIR", "./static"),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:8080"),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
