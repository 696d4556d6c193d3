package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "COURIERCTL"
	defaultAPIURL  = "http://localhost:5000"
	defaultTimeout = 15 * time.Second
	configDirName  = ".courierctl"
)

// Config настройки CLI. Приоритет: флаг, COURIERCTL_*, файл конфига,
// значение по умолчанию.
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	SessionFile string        `mapstructure:"session_file"`
	LogFile     string        `mapstructure:"log_file"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Output      Format        `mapstructure:"output"`
}

// flagKeys имя флага -> ключ viper.
var flagKeys = map[string]string{
	"api-url":      "api_url",
	"session-file": "session_file",
	"log-file":     "log_file",
	"timeout":      "timeout",
	"output":       "output",
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("api-url", "", "backend base URL (env COURIERCTL_API_URL)")
	flags.String("session-file", "", "where the admin session is stored (env COURIERCTL_SESSION_FILE)")
	flags.String("log-file", "", "rotating log file (env COURIERCTL_LOG_FILE)")
	flags.Duration("timeout", 0, "per-request timeout (env COURIERCTL_TIMEOUT)")
	flags.StringP("output", "o", "", "output format: text, json or yaml (env COURIERCTL_OUTPUT)")
}

// LoadConfig configFile пустой - ищем ~/.courierctl/config.yaml, его
// отсутствие не ошибка.
func LoadConfig(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	dir := configDir()
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("session_file", filepath.Join(dir, "session.json"))
	v.SetDefault("log_file", filepath.Join(dir, "courierctl.log"))
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("output", string(FormatText))

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return errors.New("api url is required (set via --api-url or COURIERCTL_API_URL)")
	}
	if cfg.SessionFile == "" {
		return errors.New("session file is required (set via --session-file or COURIERCTL_SESSION_FILE)")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	format, err := ParseFormat(string(cfg.Output))
	if err != nil {
		return err
	}
	cfg.Output = format
	return nil
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}
