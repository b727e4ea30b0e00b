package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	JWT      JWTConfig
	WhatsApp WhatsAppConfig
	Gemini   GeminiConfig
	Whisper  WhisperConfig
	Sheets   SheetsConfig
	Redis    RedisConfig
	Storage  StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de los tokens del dashboard.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// WhatsAppConfig credenciales de la Cloud API de Meta.
type WhatsAppConfig struct {
	PhoneNumberID string
	AccessToken   string
	VerifyToken   string // token de verificación del webhook
	APIVersion    string
}

// GeminiConfig configuración del NLU. APIKey vacío = NLU deshabilitado
// (el pipeline usa solo el parser de respaldo).
type GeminiConfig struct {
	APIKey string
	Model  string
}

// WhisperConfig endpoint de transcripción compatible con OpenAI
// (/v1/audio/transcriptions). URL vacía = notas de voz no soportadas.
type WhisperConfig struct {
	URL   string
	Model string
}

// SheetsConfig backend de hoja de cálculo (alternativa a PostgreSQL).
type SheetsConfig struct {
	CredentialsFile string // JSON de la service account
	SpreadsheetID   string
}

// RedisConfig dedup de webhooks y almacenamiento de OTP. URL vacía = en memoria.
type RedisConfig struct {
	URL string
}

// StorageConfig selección del backend del ledger: "postgres" o "sheets".
type StorageConfig struct {
	Backend string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "backroom"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "backroom"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:  getString(v, "JWT_SECRET", ""),
			ExpDays: getInt(v, "JWT_EXPIRATION_DAYS", 30),
			Issuer:  getString(v, "JWT_ISSUER", "the-backroom"),
		},
		WhatsApp: WhatsAppConfig{
			PhoneNumberID: getString(v, "WHATSAPP_PHONE_NUMBER_ID", ""),
			AccessToken:   getString(v, "WHATSAPP_ACCESS_TOKEN", ""),
			VerifyToken:   getString(v, "WHATSAPP_VERIFY_TOKEN", ""),
			APIVersion:    getString(v, "WHATSAPP_API_VERSION", "v18.0"),
		},
		Gemini: GeminiConfig{
			APIKey: getString(v, "GEMINI_API_KEY", ""),
			Model:  getString(v, "GEMINI_MODEL", "gemini-2.0-flash-lite"),
		},
		Whisper: WhisperConfig{
			URL:   getString(v, "WHISPER_URL", ""),
			Model: getString(v, "WHISPER_MODEL", "whisper-base"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getString(v, "GOOGLE_CREDENTIALS_FILE", ""),
			SpreadsheetID:   getString(v, "GOOGLE_SPREADSHEET_ID", ""),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		Storage: StorageConfig{
			Backend: getString(v, "STORAGE_BACKEND", "postgres"),
		},
	}

	if cfg.App.Env == "production" {
		if cfg.JWT.Secret == "" {
			return nil, fmt.Errorf("JWT_SECRET es obligatorio en producción")
		}
		if len(cfg.JWT.Secret) < 32 {
			return nil, fmt.Errorf("JWT_SECRET debe tener al menos 32 caracteres en producción")
		}
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
