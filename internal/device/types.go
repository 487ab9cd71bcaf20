package device

import (
	"context"
	"time"
)

// Status はデバイスの動作状態を表す
type Status string

const (
	StatusInactive Status = "inactive" // デバイスは停止中
	StatusActive   Status = "active"   // デバイスは動作中
	StatusError    Status = "error"    // デバイスでエラーが発生
)

// ImageFormat は画像フォーマットを表す
type ImageFormat int32

const (
	// FormatColorMJPG はMotion JPEG圧縮のカラー画像
	FormatColorMJPG ImageFormat = iota
	// FormatColorNV12 はNV12形式のカラー画像
	FormatColorNV12
	// FormatColorYUY2 はYUY2形式のカラー画像
	FormatColorYUY2
	// FormatColorBGRA32 はBGRA 8bit×4チャンネルのカラー画像
	FormatColorBGRA32
	// FormatDepth16 は16bit深度画像（ミリメートル単位）
	FormatDepth16
	// FormatIR16 は16bit赤外線画像
	FormatIR16
	// FormatCustom はデバイス固有のフォーマット
	FormatCustom
)

// String はフォーマット名を返す
func (f ImageFormat) String() string {
	switch f {
	case FormatColorMJPG:
		return "COLOR_MJPG"
	case FormatColorNV12:
		return "COLOR_NV12"
	case FormatColorYUY2:
		return "COLOR_YUY2"
	case FormatColorBGRA32:
		return "COLOR_BGRA32"
	case FormatDepth16:
		return "DEPTH16"
	case FormatIR16:
		return "IR16"
	default:
		return "CUSTOM"
	}
}

// WiredSyncMode は複数デバイス間の有線同期モードを表す
type WiredSyncMode int32

const (
	// WiredSyncStandalone は単独動作（同期なし）
	WiredSyncStandalone WiredSyncMode = iota
	// WiredSyncMaster はマスターとして同期信号を送出する
	WiredSyncMaster
	// WiredSyncSubordinate はマスターの同期信号に従う
	WiredSyncSubordinate
)

// ModeOff はモードID 0（オフ）を表す
const ModeOff uint32 = 0

// FPSMode15 は15fpsモードのモードID
const FPSMode15 uint32 = 15

// DeviceConfiguration はカメラ開始時のデバイス設定を表す
type DeviceConfiguration struct {
	ColorFormat                   ImageFormat   // カラー画像のフォーマット
	ColorModeID                   uint32        // カラーモードID（0はオフ）
	DepthModeID                   uint32        // 深度モードID（0はオフ）
	FPSModeID                     uint32        // FPSモードID（0はオフ）
	SynchronizedImagesOnly        bool          // カラーと深度が揃ったキャプチャのみ返す
	DepthDelayOffColorUsec        int32         // カラーに対する深度キャプチャの遅延（マイクロ秒）
	WiredSyncMode                 WiredSyncMode // 有線同期モード
	SubordinateDelayOffMasterUsec uint32        // マスターに対するサブオーディネートの遅延（マイクロ秒）
	DisableStreamingIndicator     bool          // ストリーミングLEDを無効化する
}

// DisableAllConfig は全ストリームをオフにした初期設定を返す
func DisableAllConfig() DeviceConfiguration {
	return DeviceConfiguration{
		ColorFormat:   FormatColorMJPG,
		ColorModeID:   ModeOff,
		DepthModeID:   ModeOff,
		FPSModeID:     ModeOff,
		WiredSyncMode: WiredSyncStandalone,
	}
}

// DeviceInfo はデバイスの能力情報を表す
type DeviceInfo struct {
	VendorID        uint32 // ベンダーID
	DeviceID        uint32 // デバイスID
	HasColorCamera  bool   // カラーカメラを搭載しているか
	HasDepthCamera  bool   // 深度カメラを搭載しているか
	FirmwareVersion string // ファームウェアバージョン
}

// ColorModeInfo はカラーモードの詳細を表す
type ColorModeInfo struct {
	ModeID uint32 // モードID（0はオフ）
	Width  uint32 // 画像幅
	Height uint32 // 画像高さ
}

// DepthModeInfo は深度モードの詳細を表す
type DepthModeInfo struct {
	ModeID        uint32  // モードID（0はオフ）
	Width         uint32  // 画像幅
	Height        uint32  // 画像高さ
	HorizontalFOV float32 // 水平視野角（度）
	VerticalFOV   float32 // 垂直視野角（度）
	PassiveIROnly bool    // IRのみのモードか
}

// FPSModeInfo はフレームレートモードの詳細を表す
type FPSModeInfo struct {
	ModeID uint32 // モードID（0はオフ）
	FPS    int    // フレームレート
}

// Device は1台の深度カメラデバイスへの操作を提供する
// 実体は外部のデバイスドライバーバインディングであり、
// このインターフェースは呼び出し順序のみを規定する
type Device interface {
	// SerialNumber はデバイスのシリアル番号を取得する
	SerialNumber() string

	// Info はデバイスの能力情報を取得する
	Info() DeviceInfo

	// ColorModes はサポートされるカラーモード一覧を取得する
	ColorModes() []ColorModeInfo

	// DepthModes はサポートされる深度モード一覧を取得する
	DepthModes() []DepthModeInfo

	// FPSModes はサポートされるFPSモード一覧を取得する
	FPSModes() []FPSModeInfo

	// StartCameras は指定された設定でカメラのストリーミングを開始する
	StartCameras(ctx context.Context, config *DeviceConfiguration) error

	// GetCapture はタイムアウトまでブロックして1キャプチャを取得する
	// 失敗・タイムアウト時もハンドル値（nilの場合あり）を返すことがある
	GetCapture(ctx context.Context, timeout time.Duration) (*Capture, error)

	// StopCameras はストリーミングを停止する。結果は返さない
	StopCameras()

	// Close はデバイスハンドルを解放する
	Close() error
}

// Enumerator は接続済みデバイスの列挙とオープンを提供する
type Enumerator interface {
	// InstalledCount は接続されているデバイス数を取得する
	InstalledCount(ctx context.Context) (uint32, error)

	// Open は指定インデックスのデバイスを開く
	Open(ctx context.Context, index uint32) (Device, error)
}
