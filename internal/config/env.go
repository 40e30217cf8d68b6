package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names for the required secrets.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Credentials holds the secrets read once at startup.
// All three are required; the process must not start polling without them.
type Credentials struct {
	PracticumToken string
	TelegramToken  string
	ChatID         int64
}

// MissingEnvError lists every required environment variable that is absent,
// so a single startup failure names all of them at once.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Vars, ", ")
}

// LoadCredentials reads the required secrets from the environment.
func LoadCredentials() (Credentials, error) {
	var missing []string

	practicum := strings.TrimSpace(os.Getenv(EnvPracticumToken))
	if practicum == "" {
		missing = append(missing, EnvPracticumToken)
	}
	telegram := strings.TrimSpace(os.Getenv(EnvTelegramToken))
	if telegram == "" {
		missing = append(missing, EnvTelegramToken)
	}
	chatRaw := strings.TrimSpace(os.Getenv(EnvTelegramChatID))
	if chatRaw == "" {
		missing = append(missing, EnvTelegramChatID)
	}
	if len(missing) > 0 {
		return Credentials{}, &MissingEnvError{Vars: missing}
	}

	chatID, err := strconv.ParseInt(chatRaw, 10, 64)
	if err != nil {
		return Credentials{}, fmt.Errorf("%s: invalid chat id %q: %w", EnvTelegramChatID, chatRaw, err)
	}

	return Credentials{
		PracticumToken: practicum,
		TelegramToken:  telegram,
		ChatID:         chatID,
	}, nil
}
