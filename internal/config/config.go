package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Backend kinds accepted by ITEMS_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Events EventsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	events, err := loadEventsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Store: store, Events: events}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StoreConfig 描述条目存储配置。
type StoreConfig struct {
	Backend    string
	Path       string
	CreateFile bool
	SeedFile   string
}

func loadStoreConfig() (StoreConfig, error) {
	backend := strings.ToLower(getEnvOrDefault("ITEMS_BACKEND", BackendFile))
	if backend != BackendMemory && backend != BackendFile {
		return StoreConfig{}, fmt.Errorf("invalid ITEMS_BACKEND value %q: want %q or %q", backend, BackendMemory, BackendFile)
	}

	createFile, err := parseBoolEnv("ITEMS_CREATE_FILE", true)
	if err != nil {
		return StoreConfig{}, err
	}

	return StoreConfig{
		Backend:    backend,
		Path:       getEnvOrDefault("ITEMS_DB_PATH", "fakeDb.json"),
		CreateFile: createFile,
		SeedFile:   strings.TrimSpace(os.Getenv("ITEMS_SEED_FILE")),
	}, nil
}

// EventsConfig 描述变更推送配置
type EventsConfig struct {
	Buffer int
}

func loadEventsConfig() (EventsConfig, error) {
	buffer := 16
	if override, err := parseOptionalIntEnv("EVENTS_BUFFER"); err != nil {
		return EventsConfig{}, err
	} else if override != nil {
		if *override < 1 {
			buffer = 1
		} else {
			buffer = *override
		}
	}
	return EventsConfig{Buffer: buffer}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
