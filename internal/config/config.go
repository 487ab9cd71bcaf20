package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Device DeviceConfig `yaml:"device"`
	Record RecordConfig `yaml:"record"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// DeviceConfig はデバイス関連の設定
type DeviceConfig struct {
	// キャプチャ取得の既定値
	FPSModeID              uint32 `yaml:"fps_mode_id"`              // FPSモードID
	CaptureTimeoutMS       int    `yaml:"capture_timeout_ms"`       // 1キャプチャ取得の待機上限（ミリ秒）
	SynchronizedImagesOnly bool   `yaml:"synchronized_images_only"` // 同期済みキャプチャのみ返す

	// フェイクデバイス設定（実ハードウェアなしでの動作用）
	FakeDevices int `yaml:"fake_devices"` // 列挙するフェイクデバイス数
}

// CaptureTimeout はキャプチャ取得の待機上限をDurationとして返す
func (d DeviceConfig) CaptureTimeout() time.Duration {
	return time.Duration(d.CaptureTimeoutMS) * time.Millisecond
}

// RecordConfig は記録関連の設定
type RecordConfig struct {
	Dir string `yaml:"dir"` // 記録ファイルの保存ディレクトリ
}

// Load は設定を読み込む
// デフォルト値に対して、CONFIG_FILE が指定されていればYAMLファイルの内容を適用し、
// 最後に環境変数で上書きする
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Device: DeviceConfig{
			FPSModeID:              15,
			CaptureTimeoutMS:       1000,
			SynchronizedImagesOnly: true,
			FakeDevices:            1,
		},
		Record: RecordConfig{
			Dir: "recordings",
		},
	}

	// YAMLファイルがあれば適用する
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
	}

	// 環境変数による上書き
	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsIntOrDefault("SERVER_PORT", cfg.Server.Port)
	cfg.Device.FakeDevices = getEnvAsIntOrDefault("FAKE_DEVICES", cfg.Device.FakeDevices)

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// loadFile はYAMLファイルから設定を読み込む
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ファイルの読み込みに失敗: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("YAMLの解析に失敗: %w", err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// デバイス設定の検証
	if c.Device.FPSModeID == 0 {
		return fmt.Errorf("FPSモードIDに0（オフ）は指定できません")
	}
	if c.Device.CaptureTimeoutMS <= 0 {
		return fmt.Errorf("無効なキャプチャタイムアウト: %dms", c.Device.CaptureTimeoutMS)
	}
	if c.Device.FakeDevices < 0 {
		return fmt.Errorf("無効なフェイクデバイス数: %d", c.Device.FakeDevices)
	}

	// 記録設定の検証
	if c.Record.Dir == "" {
		return fmt.Errorf("記録ディレクトリが設定されていません")
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
