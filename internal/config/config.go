package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix 环境变量前缀，例如 ROMANEIO_SERVER_PORT
const EnvPrefix = "ROMANEIO"

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server" envconfig:"SERVER"`
	Data    DataConfig    `toml:"data" envconfig:"DATA"`
	Import  ImportConfig  `toml:"import" envconfig:"IMPORT"`
	Export  ExportConfig  `toml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `toml:"logging" envconfig:"LOGGING"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	DevMode bool `toml:"dev_mode" envconfig:"DEV_MODE"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	Backend string `toml:"backend" envconfig:"BACKEND" validate:"oneof=sqlite file memory"`
}

// ImportConfig 导入配置
type ImportConfig struct {
	MaxUploadMB int `toml:"max_upload_mb" envconfig:"MAX_UPLOAD_MB" validate:"min=1,max=1024"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	DefaultFormat      string `toml:"default_format" envconfig:"DEFAULT_FORMAT" validate:"oneof=csv xlsx"`
	DownloadTTLMinutes int    `toml:"download_ttl_minutes" envconfig:"DOWNLOAD_TTL_MINUTES" validate:"min=1"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `toml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `toml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
			Backend: "sqlite",
		},
		Import: ImportConfig{
			MaxUploadMB: 32,
		},
		Export: ExportConfig{
			DefaultFormat:      "csv",
			DownloadTTLMinutes: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置；.env 与环境变量覆盖文件配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	loadDotEnv(filepath.Join(exeDir, ".env"), ".env")
	return LoadFile(filepath.Join(exeDir, "config.toml"))
}

// LoadFile 读取指定 toml 文件（不存在时使用默认配置），再应用环境变量并校验
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// 配置文件不存在，使用默认配置
	case err != nil:
		return nil, info, fmt.Errorf("failed to read config: %w", err)
	default:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, info, fmt.Errorf("failed to apply environment: %w", err)
	}
	if os.Getenv(EnvPrefix+"_SERVER_PORT") != "" {
		info.PortSpecified = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

// Validate 校验配置取值范围
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// loadDotEnv 依次加载存在的 .env 文件；已存在的环境变量不会被覆盖
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// ResolveDataDir 相对路径的数据目录位于可执行文件同目录下
func ResolveDataDir(cfg *AppConfig) string {
	if filepath.IsAbs(cfg.Data.DataDir) {
		return cfg.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, cfg.Data.DataDir)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := ResolveDataDir(cfg)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
