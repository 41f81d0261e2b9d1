package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Remote       RemoteConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
	}

	// RemoteConfig locates the appraisal API every section is submitted to.
	RemoteConfig struct {
		BaseURL string
		Faculty string // path segment of every endpoint; single tenant
		Timeout time.Duration
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "APAR")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("remote.baseURL", "https://restartsihproject.onrender.com/api")
	conf.SetDefault("remote.faculty", "Neha Patel")
	conf.SetDefault("remote.timeout", 30*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Address:         conf.GetString("server.address"),
			DebugHost:       conf.GetString("server.debugHost"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
		Remote: RemoteConfig{
			BaseURL: strings.TrimRight(conf.GetString("remote.baseURL"), "/"),
			Faculty: CleanString(conf.GetString("remote.faculty")),
			Timeout: conf.GetDuration("remote.timeout"),
		},
	}
}
