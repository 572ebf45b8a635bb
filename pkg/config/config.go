package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "BITPAY"

type Config struct {
	APIKey      string `mapstructure:"API_KEY" envDefault:"" envInfo:"BitPay API key" validate:"required"`
	BaseURL     string `mapstructure:"BASE_URL" envDefault:"https://bitpay.com/api/" envInfo:"BitPay API base URL" validate:"required,url"`
	HTTPTimeout uint32 `mapstructure:"HTTP_TIMEOUT" envDefault:"0" envInfo:"HTTP timeout in seconds, 0 disables it"`
	PluginInfo  string `mapstructure:"PLUGIN_INFO" envDefault:"GoLib" envInfo:"Value of the X-BitPay-Plugin-Info header" validate:"required"`
	LogLevel    uint32 `mapstructure:"LOG_LEVEL" envDefault:"4" envInfo:"Log verbosity (higher = more verbose)" validate:"lte=6"`
}

var validate = validator.New()

// LoadConfig reads the BITPAY_ prefixed environment, after loading an
// optional .env file from the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := setDefaultConfig(v); err != nil {
		return nil, fmt.Errorf("error setting default config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Timeout is the HTTP client timeout, zero meaning none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) ApplyLogLevel() {
	log.SetLevel(log.Level(c.LogLevel))
}

func setDefaultConfig(v *viper.Viper) error {
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := f.Tag.Get("mapstructure")
		def := f.Tag.Get("envDefault")
		if def != "" {
			v.SetDefault(key, def)
		}
		err := v.BindEnv(key)
		if err != nil {
			return fmt.Errorf("error binding env variable for key %s: %w", key, err)
		}
	}
	return nil
}
