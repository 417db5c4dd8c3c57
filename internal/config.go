package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Data    DataConfig        `yaml:"data"`
	Trip    TripConfig        `yaml:"trip"`
	OpenAI  OpenAIConfig      `yaml:"openai"`
	Maps    MapsConfig        `yaml:"maps"`
	Weather WeatherConfig     `yaml:"weather"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Trip.Validate(); err != nil {
		return err
	}
	if err := c.OpenAI.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig holds the path to the data directory where the schedule,
// candidate, and expense files and the photo gallery live.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// TripConfig describes the trip itself: the header shown on the
// dashboard and the year used to anchor month/day schedule labels.
type TripConfig struct {
	Title   string   `yaml:"title"`
	Year    int      `yaml:"year"`
	Dates   string   `yaml:"dates"`
	Members []string `yaml:"members"`
	Hotel   string   `yaml:"hotel"`
}

// Validate validates the trip configuration.
func (c *TripConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Year, validation.Required, validation.Min(2000), validation.Max(2200)),
	)
}

// OpenAIConfig selects the interpreter models. An empty APIKey disables
// the interpreter routes rather than failing startup.
type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TranslateModel string `yaml:"translate_model"`
	STTModel       string `yaml:"stt_model"`
	TTSModel       string `yaml:"tts_model"`
	TTSVoice       string `yaml:"tts_voice"`
	OCRModel       string `yaml:"ocr_model"`
	CooldownMS     int    `yaml:"cooldown_ms"`
}

// Validate validates the OpenAI configuration.
func (c *OpenAIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TranslateModel, validation.Required),
		validation.Field(&c.STTModel, validation.Required),
		validation.Field(&c.TTSModel, validation.Required),
		validation.Field(&c.TTSVoice, validation.Required),
		validation.Field(&c.OCRModel, validation.Required),
		validation.Field(&c.CooldownMS, validation.Min(0)),
	)
}

// MapsConfig holds the optional Google Maps embed API key. Search links
// work without it.
type MapsConfig struct {
	APIKey string `yaml:"api_key"`
}

// WeatherConfig holds the forecast location.
type WeatherConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// Validate validates the weather configuration.
func (c *WeatherConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Latitude, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&c.Longitude, validation.Min(-180.0), validation.Max(180.0)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Trip: TripConfig{
			Title: "Family Trip",
			Year:  2026,
		},
		OpenAI: OpenAIConfig{
			TranslateModel: "gpt-4o-mini",
			STTModel:       "whisper-1",
			TTSModel:       "gpt-4o-mini-tts",
			TTSVoice:       "alloy",
			OCRModel:       "gpt-4o-mini",
			CooldownMS:     1200,
		},
		Maps: MapsConfig{},
		Weather: WeatherConfig{
			Latitude:  33.5902,
			Longitude: 130.4017,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
