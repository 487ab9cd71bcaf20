package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	// 設定を読み込む
	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// 基本的な設定値を検証
	if cfg == nil {
		t.Fatal("設定がnilです")
	}

	// サーバー設定の検証
	if cfg.Server.Host == "" {
		t.Error("サーバーホストが設定されていません")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		t.Errorf("無効なポート番号: %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		t.Error("読み込みタイムアウトが設定されていません")
	}

	// デバイス設定の検証
	if cfg.Device.FPSModeID != 15 {
		t.Errorf("デフォルトFPSモードIDが不正: got %d, want 15", cfg.Device.FPSModeID)
	}
	if cfg.Device.CaptureTimeout() != 1000*time.Millisecond {
		t.Errorf("デフォルトキャプチャタイムアウトが不正: got %v", cfg.Device.CaptureTimeout())
	}
	if !cfg.Device.SynchronizedImagesOnly {
		t.Error("SynchronizedImagesOnlyのデフォルトがtrueではありません")
	}

	// 記録設定の検証
	if cfg.Record.Dir == "" {
		t.Error("記録ディレクトリが設定されていません")
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{
			name: "正常な設定",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Device: DeviceConfig{FPSModeID: 15, CaptureTimeoutMS: 1000},
				Record: RecordConfig{Dir: "recordings"},
			},
			expectErr: false,
		},
		{
			name: "無効なポート番号",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 99999},
				Device: DeviceConfig{FPSModeID: 15, CaptureTimeoutMS: 1000},
				Record: RecordConfig{Dir: "recordings"},
			},
			expectErr: true,
		},
		{
			name: "FPSモードIDが0",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Device: DeviceConfig{FPSModeID: 0, CaptureTimeoutMS: 1000},
				Record: RecordConfig{Dir: "recordings"},
			},
			expectErr: true,
		},
		{
			name: "キャプチャタイムアウトが0",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Device: DeviceConfig{FPSModeID: 15, CaptureTimeoutMS: 0},
				Record: RecordConfig{Dir: "recordings"},
			},
			expectErr: true,
		},
		{
			name: "記録ディレクトリなし",
			config: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				Device: DeviceConfig{FPSModeID: 15, CaptureTimeoutMS: 1000},
				Record: RecordConfig{Dir: ""},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	expected := "192.168.1.100:9090"
	actual := cfg.ServerAddress()

	if actual != expected {
		t.Errorf("サーバーアドレスが一致しません: got %s, want %s", actual, expected)
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
// 注意: このテストは環境変数を変更するため、parallelは使わない
func TestEnvironmentVariables(t *testing.T) {
	originalHost := os.Getenv("SERVER_HOST")
	originalPort := os.Getenv("SERVER_PORT")

	defer func() {
		// テスト後に環境変数を復元
		_ = os.Setenv("SERVER_HOST", originalHost)
		_ = os.Setenv("SERVER_PORT", originalPort)
	}()

	_ = os.Setenv("SERVER_HOST", "test.example.com")
	_ = os.Setenv("SERVER_PORT", "9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "test.example.com" {
		t.Errorf("環境変数のホストが反映されていません: got %s, want test.example.com", cfg.Server.Host)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("環境変数のポートが反映されていません: got %d, want 9999", cfg.Server.Port)
	}
}

// TestConfigFile はYAMLファイルからの読み込みをテストする
// 注意: このテストは環境変数を変更するため、parallelは使わない
func TestConfigFile(t *testing.T) {
	original := os.Getenv("CONFIG_FILE")
	defer func() { _ = os.Setenv("CONFIG_FILE", original) }()

	content := `server:
  host: 10.0.0.1
  port: 9000
device:
  fps_mode_id: 30
  capture_timeout_ms: 2000
  fake_devices: 3
record:
  dir: /tmp/recordings
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗: %v", err)
	}

	_ = os.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "10.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("サーバー設定が反映されていません: %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Device.FPSModeID != 30 {
		t.Errorf("FPSモードIDが反映されていません: got %d", cfg.Device.FPSModeID)
	}
	if cfg.Device.CaptureTimeout() != 2*time.Second {
		t.Errorf("キャプチャタイムアウトが反映されていません: got %v", cfg.Device.CaptureTimeout())
	}
	if cfg.Device.FakeDevices != 3 {
		t.Errorf("フェイクデバイス数が反映されていません: got %d", cfg.Device.FakeDevices)
	}
	if cfg.Record.Dir != "/tmp/recordings" {
		t.Errorf("記録ディレクトリが反映されていません: got %s", cfg.Record.Dir)
	}
}
