// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Logging    LoggingConfig
	Validation ValidationConfig
	Messages   MessagesConfig
	Text       TextConfig
	Features   FeaturesConfig
	Security   SecurityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1, the tool is single-operator)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 15s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// StorageConfig selects the durable key-value backend.
type StorageConfig struct {
	// Backend is one of: file, postgres, memory (default: file)
	Backend string `env:"STORAGE_BACKEND" default:"file"`

	// Dir is where the file backend keeps its JSON files (default: ./data)
	Dir string `env:"STORAGE_DIR" default:"./data"`

	// DatabaseURL is the PostgreSQL connection string for the postgres backend.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility.
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Table is the key/value table used by the postgres backend (default: kv_store)
	Table string `env:"STORAGE_TABLE" default:"kv_store"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ValidationConfig holds the field rules applied to user records.
type ValidationConfig struct {
	NameMinLength int `env:"VALIDATION_NAME_MIN_LENGTH" default:"2"`
	NameMaxLength int `env:"VALIDATION_NAME_MAX_LENGTH" default:"50"`

	EmailPattern       string `env:"VALIDATION_EMAIL_PATTERN" default:"^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$"`
	LinkedinURLPattern string `env:"VALIDATION_LINKEDIN_URL_PATTERN" default:"^https?://(www\\.)?linkedin\\.com/.+$"`
	PinPattern         string `env:"VALIDATION_PIN_PATTERN" default:"^\\d+$"`

	// PinMaxLength caps pin input at entry time (default: 6)
	PinMaxLength int `env:"VALIDATION_PIN_MAX_LENGTH" default:"6"`
}

// MessagesConfig holds the validation messages shown next to form fields.
type MessagesConfig struct {
	Required       string `env:"MSG_REQUIRED" default:"This field is required"`
	MinChars       string `env:"MSG_MIN_CHARS" default:"Minimum"`
	MaxChars       string `env:"MSG_MAX_CHARS" default:"Maximum"`
	Chars          string `env:"MSG_CHARS" default:"characters"`
	InvalidEmail   string `env:"MSG_INVALID_EMAIL" default:"Please enter a valid email address"`
	DuplicateEmail string `env:"MSG_DUPLICATE_EMAIL" default:"This email is already registered"`
	InvalidURL     string `env:"MSG_INVALID_URL" default:"Please enter a valid LinkedIn URL"`
	InvalidGender  string `env:"MSG_INVALID_GENDER" default:"Please select a valid gender"`
	InvalidCity    string `env:"MSG_INVALID_CITY" default:"Please select a city in the chosen state"`
	Digits         string `env:"MSG_DIGITS" default:"Only digits are allowed"`
}

// TextConfig holds every label shown on the page.
type TextConfig struct {
	PageTitle      string `env:"TEXT_PAGE_TITLE" default:"User Management"`
	PageSubtitle   string `env:"TEXT_PAGE_SUBTITLE" default:"Manage the people in your directory"`
	AddUser        string `env:"TEXT_ADD_USER" default:"Add User"`
	AddUserTitle   string `env:"TEXT_ADD_USER_TITLE" default:"Add New User"`
	EditUserTitle  string `env:"TEXT_EDIT_USER_TITLE" default:"Edit User"`
	NoUsers        string `env:"TEXT_NO_USERS" default:"No users found"`
	NoUsersSubtext string `env:"TEXT_NO_USERS_SUBTEXT" default:"Add a user to get started"`
	Loading        string `env:"TEXT_LOADING" default:"Loading users..."`
	DeleteTitle    string `env:"TEXT_DELETE_TITLE" default:"Delete User"`
	DeleteQuestion string `env:"TEXT_DELETE_QUESTION" default:"Are you sure you want to delete"`
	Save           string `env:"TEXT_SAVE" default:"Add User"`
	Update         string `env:"TEXT_UPDATE" default:"Update"`
	Cancel         string `env:"TEXT_CANCEL" default:"Cancel"`
	Delete         string `env:"TEXT_DELETE" default:"Delete"`
	Edit           string `env:"TEXT_EDIT" default:"Edit"`
	LoadCities     string `env:"TEXT_LOAD_CITIES" default:"Load cities"`
	ViewProfile    string `env:"TEXT_VIEW_PROFILE" default:"View Profile"`
	Pin            string `env:"TEXT_PIN" default:"PIN"`
	FullAddress    string `env:"TEXT_COMPLETE_ADDRESS" default:"Complete Address"`
	NotAvailable   string `env:"TEXT_NOT_AVAILABLE" default:"N/A"`

	// Table column headers
	ColumnName     string `env:"TEXT_COLUMN_NAME" default:"Name"`
	ColumnEmail    string `env:"TEXT_COLUMN_EMAIL" default:"Email"`
	ColumnLinkedin string `env:"TEXT_COLUMN_LINKEDIN" default:"LinkedIn"`
	ColumnGender   string `env:"TEXT_COLUMN_GENDER" default:"Gender"`
	ColumnAddress  string `env:"TEXT_COLUMN_ADDRESS" default:"Address"`
	ColumnActions  string `env:"TEXT_COLUMN_ACTIONS" default:"Actions"`

	// Form field labels, also used in the expanded address view
	FieldName        string `env:"TEXT_FIELD_NAME" default:"Name"`
	FieldEmail       string `env:"TEXT_FIELD_EMAIL" default:"Email"`
	FieldLinkedinURL string `env:"TEXT_FIELD_LINKEDIN_URL" default:"LinkedIn URL"`
	FieldGender      string `env:"TEXT_FIELD_GENDER" default:"Gender"`
	FieldLine1       string `env:"TEXT_FIELD_LINE1" default:"Address Line 1"`
	FieldLine2       string `env:"TEXT_FIELD_LINE2" default:"Address Line 2"`
	FieldState       string `env:"TEXT_FIELD_STATE" default:"State"`
	FieldCity        string `env:"TEXT_FIELD_CITY" default:"City"`
	FieldPin         string `env:"TEXT_FIELD_PIN" default:"PIN Code"`

	// Placeholders; for selects this is the empty option
	PlaceholderName        string `env:"TEXT_PLACEHOLDER_NAME" default:"Enter full name"`
	PlaceholderEmail       string `env:"TEXT_PLACEHOLDER_EMAIL" default:"Enter email address"`
	PlaceholderLinkedinURL string `env:"TEXT_PLACEHOLDER_LINKEDIN_URL" default:"https://linkedin.com/in/username"`
	PlaceholderGender      string `env:"TEXT_PLACEHOLDER_GENDER" default:"Select gender"`
	PlaceholderLine1       string `env:"TEXT_PLACEHOLDER_LINE1" default:"Street address"`
	PlaceholderLine2       string `env:"TEXT_PLACEHOLDER_LINE2" default:"Apartment, suite, etc. (optional)"`
	PlaceholderState       string `env:"TEXT_PLACEHOLDER_STATE" default:"Select state"`
	PlaceholderCity        string `env:"TEXT_PLACEHOLDER_CITY" default:"Select city"`
	PlaceholderPin         string `env:"TEXT_PLACEHOLDER_PIN" default:"Enter PIN code"`

	// Gender option labels; submitted values stay Male, Female and Other
	GenderMale   string `env:"TEXT_GENDER_MALE" default:"Male"`
	GenderFemale string `env:"TEXT_GENDER_FEMALE" default:"Female"`
	GenderOther  string `env:"TEXT_GENDER_OTHER" default:"Other"`
}

// FeaturesConfig gates which row actions are offered.
type FeaturesConfig struct {
	EditableUsers  bool `env:"FEATURE_EDITABLE_USERS" default:"true"`
	DeletableUsers bool `env:"FEATURE_DELETABLE_USERS" default:"true"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
