// Package config loads client settings from ~/.qps/config.toml, QPS_*
// environment variables and bound command-line flags, in rising precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quantastica/qps-client/internal/domain"
)

const (
	KeyHost             = "host"
	KeyPort             = "port"
	KeySSL              = "ssl"
	KeyAccount          = "account"
	KeyBackends         = "backends"
	KeyPythonExecutable = "python_executable"
	KeyProfilePath      = "profile.path"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyLockPath         = "lock.path"

	configName = "config"
	configType = "toml"
	configDir  = ".qps"
	envPrefix  = "QPS"

	defaultHost = "quantum-circuit.com"
	defaultPort = 443
	sslPort     = 443
)

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

type Config struct {
	Host    string
	Port    int
	SSL     bool
	Account string

	// Backends, when set, replaces detection.
	Backends         []domain.BackendID
	PythonExecutable string
	ProfilePath      string
	LockPath         string

	LogLevel  slog.Level
	LogFormat LogFormat
}

// Load registers defaults and sources on v and decodes the result. A missing
// config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyHost, defaultHost)
	v.SetDefault(KeyPort, defaultPort)
	v.SetDefault(KeyAccount, "")
	v.SetDefault(KeyBackends, []string{})
	v.SetDefault(KeyPythonExecutable, "")
	v.SetDefault(KeyProfilePath, filepath.Join(baseDir, "backends.toml"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, string(LogFormatText))
	v.SetDefault(KeyLockPath, filepath.Join(baseDir, "qps.lock"))

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Host:             strings.TrimSpace(v.GetString(KeyHost)),
		Port:             v.GetInt(KeyPort),
		Account:          strings.TrimSpace(v.GetString(KeyAccount)),
		PythonExecutable: strings.TrimSpace(v.GetString(KeyPythonExecutable)),
		ProfilePath:      expandHome(v.GetString(KeyProfilePath), homeDir),
		LockPath:         expandHome(v.GetString(KeyLockPath), homeDir),
		LogFormat:        LogFormat(strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat)))),
	}

	// Port 443 implies TLS unless ssl is set explicitly.
	cfg.SSL = cfg.Port == sslPort
	if v.IsSet(KeySSL) {
		cfg.SSL = v.GetBool(KeySSL)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v.GetString(KeyLogLevel)))); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	backends, err := parseBackends(v.GetStringSlice(KeyBackends))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyBackends, err)
	}
	cfg.Backends = backends

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("invalid %s: empty", KeyHost)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid %s: %d out of range", KeyPort, c.Port)
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid %s: %q", KeyLogFormat, c.LogFormat)
	}
	if c.ProfilePath == "" {
		return fmt.Errorf("invalid %s: empty", KeyProfilePath)
	}
	if c.LockPath == "" {
		return fmt.Errorf("invalid %s: empty", KeyLockPath)
	}
	return nil
}

// parseBackends accepts ids separated by commas or whitespace and drops
// duplicates, keeping first-seen order.
func parseBackends(raw []string) ([]domain.BackendID, error) {
	var ids []domain.BackendID
	seen := map[domain.BackendID]bool{}

	for _, entry := range raw {
		for _, field := range strings.FieldsFunc(entry, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
			id, err := domain.ParseBackendID(field)
			if err != nil {
				return nil, err
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func expandHome(path, homeDir string) string {
	path = strings.TrimSpace(path)
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(homeDir, rest)
	}
	return path
}
