// Package config loads bidtrack settings from an optional YAML file, BIDTRACK_*
// environment variables and built-in defaults, in increasing precedence:
// defaults < file < environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/bidtrack/internal/constants"
	"github.com/julianstephens/bidtrack/internal/email"
	"github.com/julianstephens/bidtrack/internal/utils"
)

type Config struct {
	Sender         SenderConfig
	Principal      PrincipalConfig
	CloseAfterDays int
	Timezone       string
	StateDir       string

	// Source is the config file that was read, empty when none was.
	Source string
}

type SenderConfig struct {
	Name    string
	Company string
}

type PrincipalConfig struct {
	Name  string
	Email string
}

// Load reads path when it exists. A missing file is not an error; a file that
// exists but cannot be parsed is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}
	if path != "" {
		expanded, err := utils.ExpandPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path %q: %w", path, err)
		}
		v.SetConfigFile(expanded)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
			}
		} else {
			cfg.Source = expanded
		}
	}

	cfg.Sender = SenderConfig{
		Name:    v.GetString(constants.SettingSenderName),
		Company: v.GetString(constants.SettingSenderCompany),
	}
	cfg.Principal = PrincipalConfig{
		Name:  v.GetString(constants.SettingPrincipalName),
		Email: v.GetString(constants.SettingPrincipalEmail),
	}
	cfg.CloseAfterDays = v.GetInt(constants.SettingCloseAfterDays)
	cfg.Timezone = v.GetString(constants.SettingTimezone)

	stateDir, err := utils.ExpandPath(v.GetString(constants.SettingStateDir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state dir: %w", err)
	}
	cfg.StateDir = stateDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Sender:         SenderConfig{Name: constants.DefaultSenderName, Company: constants.DefaultSenderCompany},
		Principal:      PrincipalConfig{Name: constants.DefaultPrincipalName, Email: constants.DefaultPrincipalEmail},
		CloseAfterDays: constants.DefaultCloseAfterDays,
		Timezone:       constants.DefaultTimezone,
		StateDir:       constants.DefaultStateDir,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(constants.SettingSenderName, d.Sender.Name)
	v.SetDefault(constants.SettingSenderCompany, d.Sender.Company)
	v.SetDefault(constants.SettingPrincipalName, d.Principal.Name)
	v.SetDefault(constants.SettingPrincipalEmail, d.Principal.Email)
	v.SetDefault(constants.SettingCloseAfterDays, d.CloseAfterDays)
	v.SetDefault(constants.SettingTimezone, d.Timezone)
	v.SetDefault(constants.SettingStateDir, d.StateDir)
}

// Validate rejects settings the rest of the program can't work with.
func (c *Config) Validate() error {
	if c.CloseAfterDays <= 0 {
		return fmt.Errorf("invalid %s %d: must be positive", constants.SettingCloseAfterDays, c.CloseAfterDays)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid %s %q: use \"Local\" or an IANA name like America/Chicago", constants.SettingTimezone, c.Timezone)
	}
	if c.Principal.Email == "" {
		return fmt.Errorf("%s is required", constants.SettingPrincipalEmail)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// EmailSender is the email identity derived from the config.
func (c *Config) EmailSender() email.Sender {
	return email.Sender{
		Name:           c.Sender.Name,
		Company:        c.Sender.Company,
		PrincipalName:  c.Principal.Name,
		PrincipalEmail: c.Principal.Email,
	}
}
