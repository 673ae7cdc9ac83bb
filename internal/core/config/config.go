package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Store holds the storefront REST API configuration.
	Store StoreConfig `mapstructure:",squash"`

	// Mpesa holds the M-Pesa gateway configuration.
	Mpesa MpesaConfig `mapstructure:",squash"`

	// Cache holds the Redis cache configuration.
	Cache CacheConfig `mapstructure:",squash"`
}

// StoreConfig holds the connection details for the AROBISCA store REST API.
type StoreConfig struct {
	// URL is the base URL of the store API (coupons, shipping fees, orders).
	URL string `mapstructure:"STORE_API_URL" required:"true"`
	// TimeoutSeconds is the request timeout for store API calls.
	TimeoutSeconds int `mapstructure:"STORE_API_TIMEOUT_SECONDS" default:"10"`
}

// MpesaConfig holds the M-Pesa gateway and realtime channel details.
type MpesaConfig struct {
	// URL is the base URL of the M-Pesa gateway API (STK push, status poll).
	URL string `mapstructure:"MPESA_API_URL" required:"true"`
	// SocketURL is the WebSocket endpoint delivering payment confirmations.
	SocketURL string `mapstructure:"SOCKET_URL" required:"true"`
	// ResendCooldownSeconds is the minimum wait between STK resends for one session.
	ResendCooldownSeconds int `mapstructure:"STK_RESEND_COOLDOWN_SECONDS" default:"30"`
}

// CacheConfig holds cache connection details.
type CacheConfig struct {
	// RedisURL is the Redis connection URL. Empty disables caching.
	RedisURL string `mapstructure:"REDIS_URL"`
	// ShippingTTLSeconds is how long the shipping-fee list stays cached.
	ShippingTTLSeconds int `mapstructure:"SHIPPING_CACHE_TTL_SECONDS" default:"300"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
