package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr            string `yaml:"addr"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	JWT struct {
		Issuer   string `yaml:"issuer"`
		Audience string `yaml:"audience"`
		Secret   string `yaml:"secret"`
		TTL      string `yaml:"ttl"`
	} `yaml:"jwt"`

	SMTP struct {
		Enabled            bool   `yaml:"enabled"`
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
	} `yaml:"smtp"`

	Email struct {
		BaseURL string `yaml:"base_url"` // base para links de confirmación/reset
	} `yaml:"email"`

	Security struct {
		PasswordPolicy struct {
			MinLength int `yaml:"min_length"`
		} `yaml:"password_policy"`
	} `yaml:"security"`
}

// Load lee el YAML, aplica overrides de entorno y defaults.
// NO valida secretos acá; eso lo hace Validate() para que el caller
// decida si es fatal (serve) o ignorable (migrate).
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// Overrides por entorno (ganan sobre el YAML; útiles en contenedores)
	if v := os.Getenv("DOTCART_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DOTCART_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("DOTCART_JWT_SECRET"); v != "" {
		c.JWT.Secret = v
	}
	if v := os.Getenv("DOTCART_SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("DOTCART_REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "5m"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "dotcart"
	}
	if c.JWT.Audience == "" {
		c.JWT.Audience = "dotcart-api"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "1h"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.Email.BaseURL == "" {
		c.Email.BaseURL = "http://localhost:8080"
	}
	if c.Security.PasswordPolicy.MinLength == 0 {
		c.Security.PasswordPolicy.MinLength = 8
	}

	return &c, nil
}

// Validate chequea la configuración que es fatal al arranque del server.
// Un secret de firma vacío o credenciales SMTP incompletas no son
// recuperables por request.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is required (env DOTCART_JWT_SECRET)")
	}
	if d, err := time.ParseDuration(c.JWT.TTL); err != nil || d <= 0 {
		return fmt.Errorf("config: jwt.ttl invalid: %q", c.JWT.TTL)
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn is required (env DOTCART_DSN)")
	}
	if c.SMTP.Enabled {
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			return fmt.Errorf("config: smtp.host and smtp.from are required when smtp.enabled")
		}
		if c.SMTP.Username == "" || c.SMTP.Password == "" {
			return fmt.Errorf("config: smtp credentials are required when smtp.enabled")
		}
	}
	return nil
}

// JWTTTL devuelve el TTL parseado (Validate ya garantizó que es válido).
func (c *Config) JWTTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.TTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// ShutdownTimeoutDuration parseado, con fallback.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
