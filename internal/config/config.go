package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"sportsmeet-portal/internal/models"
)

const (
	BackendScript = "script"
	BackendSheets = "sheets"

	insecureExportSecret = "change-me"
)

type Config struct {
	HTTPAddr      string
	BasePublicURL string
	CORSOrigins   []string
	LogLevel      string

	StoreBackend string
	StoreTimeout time.Duration

	GoogleScriptURL          string
	SpreadsheetID            string
	GoogleServiceAccountJSON string
	SheetName                string

	TelegramToken string
	AdminTGIDs    map[int64]bool

	Managers []ManagerCredential
	Admins   []Credential

	ExportSecret string
	SessionTTL   time.Duration
}

type rawEnv struct {
	HTTPAddr      string   `env:"HTTP_ADDR" envDefault:":8080"`
	BasePublicURL string   `env:"BASE_PUBLIC_URL"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`

	StoreBackend string        `env:"STORE_BACKEND" envDefault:"script"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"30s"`

	GoogleScriptURL          string `env:"GOOGLE_SCRIPT_URL"`
	SpreadsheetID            string `env:"GOOGLE_SHEETS_SPREADSHEET_ID"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	SheetName                string `env:"SHEET_NAME" envDefault:"Registrations"`

	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`
	AdminTGIDs    string `env:"ADMIN_TG_IDS"`

	ManagerCredentials string `env:"MANAGER_CREDENTIALS"`
	AdminCredentials   string `env:"ADMIN_CREDENTIALS"`

	ExportSecret string        `env:"EXPORT_SECRET"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

type Credential struct {
	Username string
	Password string
}

// ManagerCredential binds a login to the one team it may edit.
type ManagerCredential struct {
	Credential
	Team int
}

func FromEnv() (Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	c := Config{
		HTTPAddr:                 strings.TrimSpace(raw.HTTPAddr),
		BasePublicURL:            strings.TrimRight(strings.TrimSpace(raw.BasePublicURL), "/"),
		CORSOrigins:              raw.CORSOrigins,
		LogLevel:                 strings.TrimSpace(raw.LogLevel),
		StoreBackend:             strings.ToLower(strings.TrimSpace(raw.StoreBackend)),
		StoreTimeout:             raw.StoreTimeout,
		GoogleScriptURL:          strings.TrimSpace(raw.GoogleScriptURL),
		SpreadsheetID:            strings.TrimSpace(raw.SpreadsheetID),
		GoogleServiceAccountJSON: strings.TrimSpace(raw.GoogleServiceAccountJSON),
		SheetName:                strings.TrimSpace(raw.SheetName),
		TelegramToken:            strings.TrimSpace(raw.TelegramToken),
		ExportSecret:             strings.TrimSpace(raw.ExportSecret),
		SessionTTL:               raw.SessionTTL,
	}

	switch c.StoreBackend {
	case BackendScript:
		if c.GoogleScriptURL == "" {
			return c, fmt.Errorf("GOOGLE_SCRIPT_URL is empty")
		}
	case BackendSheets:
		if c.SpreadsheetID == "" {
			return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
		}
		if c.GoogleServiceAccountJSON == "" {
			return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
		}
	default:
		return c, fmt.Errorf("unknown STORE_BACKEND: %s", c.StoreBackend)
	}

	// the secret signs a download link that needs no login
	if c.ExportSecret == "" || c.ExportSecret == insecureExportSecret {
		return c, fmt.Errorf("EXPORT_SECRET must be set to a private value")
	}

	if c.SessionTTL <= 0 {
		return c, fmt.Errorf("SESSION_TTL must be positive")
	}

	var err error
	if c.Managers, err = ParseManagerCredentials(raw.ManagerCredentials); err != nil {
		return c, fmt.Errorf("MANAGER_CREDENTIALS: %w", err)
	}
	if c.Admins, err = ParseCredentials(raw.AdminCredentials); err != nil {
		return c, fmt.Errorf("ADMIN_CREDENTIALS: %w", err)
	}
	if len(c.Managers) == 0 && len(c.Admins) == 0 {
		return c, fmt.Errorf("no credentials configured")
	}

	c.AdminTGIDs = parseAdminIDs(raw.AdminTGIDs)

	return c, nil
}

// ParseManagerCredentials reads "team:username:password" entries separated by commas.
func ParseManagerCredentials(raw string) ([]ManagerCredential, error) {
	out := []ManagerCredential{}
	seenTeams := map[int]bool{}
	for _, entry := range splitList(raw) {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("entry %q: expected team:username:password", entry)
		}
		team, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || !models.ValidTeam(team) {
			return nil, fmt.Errorf("entry %q: team must be 1..%d", entry, models.TeamCount)
		}
		if seenTeams[team] {
			return nil, fmt.Errorf("team %d has more than one manager", team)
		}
		seenTeams[team] = true
		cred, err := credential(parts[1], parts[2])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		out = append(out, ManagerCredential{Credential: cred, Team: team})
	}
	return out, nil
}

// ParseCredentials reads "username:password" entries separated by commas.
func ParseCredentials(raw string) ([]Credential, error) {
	out := []Credential{}
	for _, entry := range splitList(raw) {
		user, pass, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("entry %q: expected username:password", entry)
		}
		cred, err := credential(user, pass)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		out = append(out, cred)
	}
	return out, nil
}

func credential(user, pass string) (Credential, error) {
	user = strings.TrimSpace(user)
	if user == "" || pass == "" {
		return Credential{}, fmt.Errorf("username and password required")
	}
	return Credential{Username: user, Password: pass}, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseAdminIDs(raw string) map[int64]bool {
	m := map[int64]bool{}
	for _, p := range splitList(raw) {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		m[v] = true
	}
	return m
}
