package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/glowdesk/booking-bot/internal/model"
	"github.com/glowdesk/booking-bot/pkg/timeslot"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres or memory
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type WhatsAppConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type BookingConfig struct {
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	RecentAccessTTL time.Duration `mapstructure:"recent_access_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// SalonConfig is the declarative tenant record. Hours are keyed by
// lowercase weekday name with "HH:MM-HH:MM" ranges; a missing day means
// closed.
type SalonConfig struct {
	ID           string            `mapstructure:"id"`
	Name         string            `mapstructure:"name"`
	Phone        string            `mapstructure:"phone"`
	Address      string            `mapstructure:"address"`
	Timezone     string            `mapstructure:"timezone"`
	SlotInterval int               `mapstructure:"slot_interval"`
	Hours        map[string]string `mapstructure:"hours"`
	Active       bool              `mapstructure:"active"`
}

type ServiceSeed struct {
	ID          string  `mapstructure:"id"`
	SalonID     string  `mapstructure:"salon_id"`
	Name        string  `mapstructure:"name"`
	Duration    int     `mapstructure:"duration"`
	Price       float64 `mapstructure:"price"`
	Description string  `mapstructure:"description"`
}

type StaffSeed struct {
	Name        string   `mapstructure:"name"`
	SalonID     string   `mapstructure:"salon_id"`
	Email       string   `mapstructure:"email"`
	ServiceIDs  []string `mapstructure:"service_ids"`
	WorkingDays []string `mapstructure:"working_days"`
	Specialties []string `mapstructure:"specialties"`
}

type SeedConfig struct {
	Services []ServiceSeed `mapstructure:"services"`
	Staff    []StaffSeed   `mapstructure:"staff"`
}

type Config struct {
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Redis        RedisConfig     `mapstructure:"redis"`
	WhatsApp     WhatsAppConfig  `mapstructure:"whatsapp"`
	Email        EmailConfig     `mapstructure:"email"`
	Booking      BookingConfig   `mapstructure:"booking"`
	Logging      LoggingConfig   `mapstructure:"logging"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
	DefaultSalon string          `mapstructure:"default_salon"`
	Salons       []SalonConfig   `mapstructure:"salons"`
	Seed         SeedConfig      `mapstructure:"seed"`
}

// envOverrides are the deployment-level knobs that vary per
// environment; everything else lives in the config file.
type envOverrides struct {
	Port        int    `envconfig:"PORT"`
	DBDriver    string `envconfig:"DB_DRIVER"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      int    `envconfig:"DB_PORT"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	RedisURL    string `envconfig:"REDIS_URL"`
	WhatsAppURL string `envconfig:"WHATSAPP_URL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	applyOverrides(&config, env)

	if config.Booking.SessionTTL <= 0 {
		config.Booking.SessionTTL = 30 * time.Minute
	}
	if config.Booking.RecentAccessTTL <= 0 {
		config.Booking.RecentAccessTTL = 5 * time.Minute
	}

	return &config, nil
}

func applyOverrides(config *Config, env envOverrides) {
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.DBDriver != "" {
		config.Database.Driver = env.DBDriver
	}
	if env.DBHost != "" {
		config.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		config.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		config.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		config.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		config.Database.Name = env.DBName
	}
	if env.RedisURL != "" {
		config.Redis.URL = env.RedisURL
	}
	if env.WhatsAppURL != "" {
		config.WhatsApp.BaseURL = env.WhatsAppURL
	}
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToModel parses the declarative tenant record into the domain salon.
func (c SalonConfig) ToModel() (model.Salon, error) {
	hours := make(map[time.Weekday]timeslot.Range, len(c.Hours))
	for day, window := range c.Hours {
		wd, ok := weekdays[strings.ToLower(day)]
		if !ok {
			return model.Salon{}, fmt.Errorf("salon %s: unknown weekday %q", c.ID, day)
		}
		r, err := timeslot.ParseRange(window)
		if err != nil {
			return model.Salon{}, fmt.Errorf("salon %s: invalid hours for %s: %w", c.ID, day, err)
		}
		hours[wd] = r
	}

	return model.Salon{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Address:      c.Address,
		Timezone:     c.Timezone,
		Hours:        hours,
		SlotInterval: c.SlotInterval,
		Active:       c.Active,
	}, nil
}

// ParsedSalons parses every configured tenant.
func (c *Config) ParsedSalons() ([]model.Salon, error) {
	salons := make([]model.Salon, 0, len(c.Salons))
	for _, sc := range c.Salons {
		s, err := sc.ToModel()
		if err != nil {
			return nil, err
		}
		salons = append(salons, s)
	}
	return salons, nil
}

// SeedServices converts the seed catalog into domain services.
func (c *Config) SeedServices() []model.Service {
	services := make([]model.Service, 0, len(c.Seed.Services))
	for _, s := range c.Seed.Services {
		services = append(services, model.Service{
			ID:          s.ID,
			SalonID:     s.SalonID,
			Name:        s.Name,
			Duration:    s.Duration,
			Price:       s.Price,
			Description: s.Description,
		})
	}
	return services
}

// SeedStaff converts the seed roster into domain staff members.
func (c *Config) SeedStaff() []model.StaffMember {
	staff := make([]model.StaffMember, 0, len(c.Seed.Staff))
	for _, m := range c.Seed.Staff {
		staff = append(staff, model.StaffMember{
			Name:        m.Name,
			SalonID:     m.SalonID,
			Email:       m.Email,
			ServiceIDs:  m.ServiceIDs,
			WorkingDays: m.WorkingDays,
			Specialties: m.Specialties,
		})
	}
	return staff
}
