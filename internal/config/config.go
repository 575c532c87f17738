package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the directory connection parameters shared by every command.
type Settings struct {
	Server   string
	Port     string
	BindDN   string
	Password string
	BaseDN   string
	Timeout  time.Duration
}

// Load reads connection settings from the environment, optionally seeded from
// an env file. A missing env file is not an error when the variables are
// already present in the process environment.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
			return Settings{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	s := Settings{
		Server:   strings.TrimSpace(os.Getenv("LDAP_SERVER")),
		Port:     strings.TrimSpace(os.Getenv("LDAP_PORT")),
		BindDN:   strings.TrimSpace(os.Getenv("LDAP_USER")),
		Password: strings.TrimSpace(os.Getenv("LDAP_PASSWORD")),
		BaseDN:   strings.TrimSpace(os.Getenv("BASE_DN")),
	}
	if s.Port == "" {
		s.Port = "389"
	}

	if s.Server == "" {
		return Settings{}, fmt.Errorf("LDAP_SERVER is not set")
	}
	if s.BaseDN == "" {
		return Settings{}, fmt.Errorf("BASE_DN is not set")
	}

	return s, nil
}
