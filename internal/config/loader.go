package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hpn/voice-agent-gateway/internal/adapter"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "VAG"

	// Bare environment variables read in addition to the VAG_ prefixed ones.
	EnvPort         = "PORT"
	EnvVapiAPIKey   = "VAPI_API_KEY"
	EnvRetellAPIKey = "RETELL_API_KEY"
)

// envAliases maps config keys to the unprefixed variables operators already
// export for this service. The prefixed form wins when both are set.
var envAliases = map[string]string{
	"server.port":              EnvPort,
	"providers.vapi.api_key":   EnvVapiAPIKey,
	"providers.retell.api_key": EnvRetellAPIKey,
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"host":      "server.host",
	"log-level": "logging.level",
}

// Load builds the Configuration.
// Priority order (highest to lowest):
// 1. Command-line flags that were explicitly set
// 2. VAG_ prefixed environment variables (e.g. VAG_SERVER_PORT)
// 3. PORT, VAPI_API_KEY, RETELL_API_KEY
// 4. config.yaml
// 5. Default values
//
// flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Configuration, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure Viper
	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	// Add config search paths
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/voice-agent-gateway")
		v.AddConfigPath("$HOME/.voice-agent-gateway")
	}

	// Enable environment variable override
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := bindEnvAliases(v); err != nil {
		return nil, &ConfigError{Op: "bind_env", Err: err}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, &ConfigError{Op: "bind_flags", Err: err}
		}
	}

	// Read configuration file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{Op: "read", Path: configPath, Err: err}
		}
	} else if v.InConfig("providers.vapi.api_key") || v.InConfig("providers.retell.api_key") {
		fmt.Fprintf(os.Stderr, "[SECURITY] Warning: API keys found in %s - prefer %s / %s env vars in production\n",
			v.ConfigFileUsed(), EnvVapiAPIKey, EnvRetellAPIKey)
	}

	// Unmarshal configuration
	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{Op: "unmarshal", Path: v.ConfigFileUsed(), Err: err}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 0)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Provider defaults
	v.SetDefault("providers.vapi.api_key", "")
	v.SetDefault("providers.vapi.endpoint", adapter.DefaultVapiURL)
	v.SetDefault("providers.vapi.timeout_seconds", 0)
	v.SetDefault("providers.retell.api_key", "")
	v.SetDefault("providers.retell.endpoint", adapter.DefaultRetellURL)
	v.SetDefault("providers.retell.timeout_seconds", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// UI defaults
	v.SetDefault("ui.banner", true)
	v.SetDefault("ui.console", false)
}

// bindEnvAliases registers the prefixed variable first so it takes precedence
// over the bare alias.
func bindEnvAliases(v *viper.Viper) error {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	for key, alias := range envAliases {
		prefixed := envPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// bindFlags binds the known flags present in fs. Unset flags keep their
// lower-priority value because viper only honours changed flags.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}
