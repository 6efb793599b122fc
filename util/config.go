package util

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const Name = "bloglist"
const ConfigFileName = "config.yaml"
const StorageFileName = "bloglist.db"

//go:embed config_default.yaml
var embeddedConfig []byte

type AppConfig struct {
	Conf struct {
		ServerURL         string  `yaml:"serverUrl"`
		StoragePath       string  `yaml:"storagePath"`
		NotifySeconds     int     `yaml:"notifySeconds"`
		TimeoutSeconds    int     `yaml:"timeoutSeconds"`
		RequestsPerSecond float64 `yaml:"requestsPerSecond"`
		HttpPort          int     `yaml:"httpPort"`
		LogFile           string  `yaml:"logFile"`
	}
}

func ReadConf() (*AppConfig, error) {

	c := &AppConfig{}

	// Try to resolve config file path (local first, then user dir)
	configPath := ResolveFilePath(ConfigFileName)

	buf, err := os.ReadFile(configPath)
	if err != nil {
		// If file doesn't exist, use embedded config and create user config file
		log.Printf("Config file not found at %s, using embedded defaults", configPath)
		buf = embeddedConfig

		configDir, dirErr := GetConfigDir()
		if dirErr == nil {
			userConfigPath := filepath.Join(configDir, ConfigFileName)
			writeErr := os.WriteFile(userConfigPath, embeddedConfig, 0644)
			if writeErr != nil {
				log.Printf("Warning: could not write default config to %s: %v", userConfigPath, writeErr)
			} else {
				log.Printf("Created default config file at %s", userConfigPath)
			}
		}
	}

	if err := ParseConf(buf, c); err != nil {
		return nil, err
	}

	applyEnv(c)
	applyDefaults(c)

	return c, nil
}

// ParseConf decodes a yaml config document into c
func ParseConf(buf []byte, c *AppConfig) error {
	if err := yaml.Unmarshal(buf, c); err != nil {
		return fmt.Errorf("in config file: %w", err)
	}
	return nil
}

func applyEnv(c *AppConfig) {
	envServerURL := os.Getenv("BLOGLIST_SERVER_URL")
	envStoragePath := os.Getenv("BLOGLIST_STORAGE_PATH")
	envNotifySeconds := os.Getenv("BLOGLIST_NOTIFY_SECONDS")
	envTimeoutSeconds := os.Getenv("BLOGLIST_TIMEOUT_SECONDS")
	envRps := os.Getenv("BLOGLIST_RPS")
	envHttpPort := os.Getenv("BLOGLIST_HTTP_PORT")
	envLogFile := os.Getenv("BLOGLIST_LOG_FILE")

	if envServerURL != "" {
		c.Conf.ServerURL = envServerURL
	}

	if envStoragePath != "" {
		c.Conf.StoragePath = envStoragePath
	}

	if envNotifySeconds != "" {
		v, err := strconv.Atoi(envNotifySeconds)
		if err != nil {
			log.Printf("Error parsing BLOGLIST_NOTIFY_SECONDS: %v", err)
		} else {
			c.Conf.NotifySeconds = v
		}
	}

	if envTimeoutSeconds != "" {
		v, err := strconv.Atoi(envTimeoutSeconds)
		if err != nil {
			log.Printf("Error parsing BLOGLIST_TIMEOUT_SECONDS: %v", err)
		} else {
			c.Conf.TimeoutSeconds = v
		}
	}

	if envRps != "" {
		v, err := strconv.ParseFloat(envRps, 64)
		if err != nil {
			log.Printf("Error parsing BLOGLIST_RPS: %v", err)
		} else {
			c.Conf.RequestsPerSecond = v
		}
	}

	if envHttpPort != "" {
		v, err := strconv.Atoi(envHttpPort)
		if err != nil {
			log.Printf("Error parsing BLOGLIST_HTTP_PORT: %v", err)
		} else {
			c.Conf.HttpPort = v
		}
	}

	if envLogFile != "" {
		c.Conf.LogFile = envLogFile
	}
}

func applyDefaults(c *AppConfig) {
	if c.Conf.ServerURL == "" {
		c.Conf.ServerURL = "http://localhost:3003"
	}

	if c.Conf.NotifySeconds < 1 {
		log.Printf("notifySeconds value %d is less than minimum of 1, setting to default 5", c.Conf.NotifySeconds)
		c.Conf.NotifySeconds = 5
	}

	if c.Conf.TimeoutSeconds < 0 {
		c.Conf.TimeoutSeconds = 0
	}

	if c.Conf.RequestsPerSecond < 0 {
		c.Conf.RequestsPerSecond = 0
	}

	if c.Conf.HttpPort == 0 {
		c.Conf.HttpPort = 3003
	}

	if c.Conf.StoragePath == "" {
		c.Conf.StoragePath = ResolveFilePath(StorageFileName)
	}
}

// GetConfigDir returns ~/.config/bloglist, creating it if needed
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ResolveFilePath prefers a file in the working directory and falls back to
// the user config directory
func ResolveFilePath(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(configDir, name)
}
