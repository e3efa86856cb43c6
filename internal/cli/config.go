package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "erpctl"

// Settings is the resolved client configuration.
type Settings struct {
	BaseURL   string
	TokenFile string
	Timeout   time.Duration
	// Location is the zone local calendar days are computed in.
	Location *time.Location
	// Routes overrides fallback candidates per operation, e.g. leave_approve.
	Routes map[string][]string
}

// configHome returns $XDG_CONFIG_HOME or the platform default.
func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(homeDir, "AppData", "Roaming"), nil
	}
	return filepath.Join(homeDir, ".config"), nil
}

// setupViper points v at <home>/erpctl/erpctl.yml, creating it with the
// defaults on first run, and returns the file path.
func setupViper(v *viper.Viper, home string) (string, error) {
	v.SetConfigType("yaml")
	path := filepath.Join(home, appName, appName+".yml")
	v.SetConfigFile(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	v.SetDefault("base_url", "http://localhost:8080/api/v1")
	v.SetDefault("token_file", filepath.Join(home, appName, "token.json"))
	v.SetDefault("timeout", "30s")
	v.SetDefault("timezone", "Local")
	v.SetDefault("routes", map[string][]string{})

	v.SetEnvPrefix("ERPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("error reading config file: %w", err)
		}
		slog.Debug("config file not found; creating one with default values", "path", path)
		if err := v.WriteConfigAs(path); err != nil {
			return "", fmt.Errorf("error creating config file: %w", err)
		}
	}
	return path, nil
}

func loadSettings(v *viper.Viper) (Settings, error) {
	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil || timeout <= 0 {
		return Settings{}, fmt.Errorf("invalid timeout %q in config", v.GetString("timeout"))
	}
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Settings{}, fmt.Errorf("invalid timezone %q in config: %w", v.GetString("timezone"), err)
	}
	s := Settings{
		BaseURL:   strings.TrimSpace(v.GetString("base_url")),
		TokenFile: v.GetString("token_file"),
		Timeout:   timeout,
		Location:  loc,
		Routes:    v.GetStringMapStringSlice("routes"),
	}
	if s.BaseURL == "" {
		return Settings{}, errors.New("base_url is not configured")
	}
	return s, nil
}
