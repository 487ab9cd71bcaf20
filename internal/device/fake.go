package device

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// FakeDevice はテスト用のデバイス実装
// 実ハードウェアなしで開始・取得・停止の呼び出し列を再現し、
// 呼び出し回数と順序違反を記録する
type FakeDevice struct {
	serial     string
	info       DeviceInfo
	colorModes []ColorModeInfo
	depthModes []DepthModeInfo
	fpsModes   []FPSModeInfo

	mu            sync.Mutex
	streaming     bool
	closed        bool
	lastConfig    DeviceConfiguration
	timestampUsec uint64

	// テスト制御用
	shouldFailStart   bool
	shouldFailCapture bool

	// 呼び出し記録
	startCount         int
	stopCount          int
	captureCount       int
	sequenceViolations int
	issued             []*Capture
}

// NewFakeDevice は新しいFakeDeviceを作成する
// モードテーブルは実デバイスと同等の構成で初期化される
func NewFakeDevice(serial string) *FakeDevice {
	return &FakeDevice{
		serial: serial,
		info: DeviceInfo{
			VendorID:        0x045E,
			DeviceID:        0x097C,
			HasColorCamera:  true,
			HasDepthCamera:  true,
			FirmwareVersion: "1.6.110079014",
		},
		colorModes: []ColorModeInfo{
			{ModeID: 0},
			{ModeID: 1, Width: 1280, Height: 720},
			{ModeID: 2, Width: 1920, Height: 1080},
			{ModeID: 3, Width: 2560, Height: 1440},
			{ModeID: 4, Width: 2048, Height: 1536},
			{ModeID: 5, Width: 3840, Height: 2160},
			{ModeID: 6, Width: 4096, Height: 3072},
		},
		depthModes: []DepthModeInfo{
			{ModeID: 0},
			{ModeID: 1, Width: 320, Height: 288, HorizontalFOV: 75, VerticalFOV: 65},
			{ModeID: 2, Width: 640, Height: 576, HorizontalFOV: 75, VerticalFOV: 65},
			{ModeID: 3, Width: 512, Height: 512, HorizontalFOV: 120, VerticalFOV: 120},
			{ModeID: 4, Width: 1024, Height: 1024, HorizontalFOV: 120, VerticalFOV: 120},
			{ModeID: 5, Width: 1024, Height: 1024, HorizontalFOV: 120, VerticalFOV: 120, PassiveIROnly: true},
		},
		fpsModes: []FPSModeInfo{
			{ModeID: 0, FPS: 0},
			{ModeID: 5, FPS: 5},
			{ModeID: 15, FPS: 15},
			{ModeID: 30, FPS: 30},
		},
	}
}

// SerialNumber はデバイスのシリアル番号を取得する
func (d *FakeDevice) SerialNumber() string {
	return d.serial
}

// Info はデバイスの能力情報を取得する
func (d *FakeDevice) Info() DeviceInfo {
	return d.info
}

// ColorModes はサポートされるカラーモード一覧を取得する
func (d *FakeDevice) ColorModes() []ColorModeInfo {
	return d.colorModes
}

// DepthModes はサポートされる深度モード一覧を取得する
func (d *FakeDevice) DepthModes() []DepthModeInfo {
	return d.depthModes
}

// FPSModes はサポートされるFPSモード一覧を取得する
func (d *FakeDevice) FPSModes() []FPSModeInfo {
	return d.fpsModes
}

// StartCameras は指定された設定でストリーミングを開始する
func (d *FakeDevice) StartCameras(_ context.Context, config *DeviceConfiguration) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("デバイス %s は既にクローズされています", d.serial)
	}

	if d.streaming {
		// 停止前の再開始は呼び出し順序の違反
		d.sequenceViolations++
		return fmt.Errorf("デバイス %s は既に開始されています", d.serial)
	}

	if err := ValidateConfiguration(config); err != nil {
		return fmt.Errorf("設定が無効: %w", err)
	}

	d.startCount++

	if d.shouldFailStart {
		return fmt.Errorf("フェイク: カメラ開始に失敗")
	}

	d.streaming = true
	d.lastConfig = *config
	return nil
}

// GetCapture は1キャプチャを生成して返す
func (d *FakeDevice) GetCapture(_ context.Context, _ time.Duration) (*Capture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.streaming {
		d.sequenceViolations++
		return nil, fmt.Errorf("デバイス %s は開始されていません", d.serial)
	}

	d.captureCount++

	if d.shouldFailCapture {
		return nil, fmt.Errorf("フェイク: キャプチャ取得がタイムアウト")
	}

	capture := d.buildCapture()
	d.issued = append(d.issued, capture)
	return capture, nil
}

// StopCameras はストリーミングを停止する
// 開始に失敗した後の防御的な停止呼び出しも正常として扱う
func (d *FakeDevice) StopCameras() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopCount++
	d.streaming = false
}

// Close はデバイスハンドルを解放する
func (d *FakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return fmt.Errorf("デバイス %s は既にクローズされています", d.serial)
	}

	d.streaming = false
	d.closed = true
	return nil
}

// buildCapture は現在の設定に応じたキャプチャを生成する（ロック済み前提）
func (d *FakeDevice) buildCapture() *Capture {
	d.timestampUsec += 33333

	var color, depth, ir *Image

	if d.lastConfig.ColorModeID != ModeOff {
		if mode, ok := d.findColorMode(d.lastConfig.ColorModeID); ok {
			color = &Image{
				Format:              d.lastConfig.ColorFormat,
				Width:               int(mode.Width),
				Height:              int(mode.Height),
				StrideBytes:         colorStride(d.lastConfig.ColorFormat, int(mode.Width)),
				DeviceTimestampUsec: d.timestampUsec,
				Payload:             fakePayload(),
			}
		}
	}

	if d.lastConfig.DepthModeID != ModeOff {
		if mode, ok := d.findDepthMode(d.lastConfig.DepthModeID); ok {
			if !mode.PassiveIROnly {
				depth = &Image{
					Format:              FormatDepth16,
					Width:               int(mode.Width),
					Height:              int(mode.Height),
					StrideBytes:         int(mode.Width) * 2,
					DeviceTimestampUsec: d.timestampUsec,
					Payload:             fakePayload(),
				}
			}
			ir = &Image{
				Format:              FormatIR16,
				Width:               int(mode.Width),
				Height:              int(mode.Height),
				StrideBytes:         int(mode.Width) * 2,
				DeviceTimestampUsec: d.timestampUsec,
				Payload:             fakePayload(),
			}
		}
	}

	return NewCapture(color, depth, ir)
}

// findColorMode は指定IDのカラーモードを検索する
func (d *FakeDevice) findColorMode(id uint32) (ColorModeInfo, bool) {
	for _, mode := range d.colorModes {
		if mode.ModeID == id {
			return mode, true
		}
	}
	return ColorModeInfo{}, false
}

// findDepthMode は指定IDの深度モードを検索する
func (d *FakeDevice) findDepthMode(id uint32) (DepthModeInfo, bool) {
	for _, mode := range d.depthModes {
		if mode.ModeID == id {
			return mode, true
		}
	}
	return DepthModeInfo{}, false
}

// colorStride はフォーマットと幅からストライドを計算する
func colorStride(format ImageFormat, width int) int {
	switch format {
	case FormatColorNV12:
		return width
	case FormatColorYUY2:
		return width * 2
	case FormatColorBGRA32:
		return width * 4
	default:
		// 圧縮フォーマットはストライドを持たない
		return 0
	}
}

// fakePayload はテスト用の小さなペイロードを返す
// 実画像データの代わりであり、サイズの検証には使わないこと
func fakePayload() []byte {
	return []byte{0xFF, 0xD8, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xD9}
}

// SetShouldFailStart はテスト用にStartCameras失敗を設定する
func (d *FakeDevice) SetShouldFailStart(shouldFail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shouldFailStart = shouldFail
}

// SetShouldFailCapture はテスト用にGetCapture失敗を設定する
func (d *FakeDevice) SetShouldFailCapture(shouldFail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shouldFailCapture = shouldFail
}

// StartCount はStartCamerasの呼び出し回数を返す
func (d *FakeDevice) StartCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startCount
}

// StopCount はStopCamerasの呼び出し回数を返す
func (d *FakeDevice) StopCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopCount
}

// CaptureCount はGetCaptureの呼び出し回数を返す
func (d *FakeDevice) CaptureCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.captureCount
}

// SequenceViolations は開始・取得・停止の順序違反の回数を返す
func (d *FakeDevice) SequenceViolations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sequenceViolations
}

// ReleasedCount は発行済みキャプチャのうち解放されたものの数を返す
func (d *FakeDevice) ReleasedCount() int {
	d.mu.Lock()
	issued := make([]*Capture, len(d.issued))
	copy(issued, d.issued)
	d.mu.Unlock()

	released := 0
	for _, capture := range issued {
		if capture.Released() {
			released++
		}
	}
	return released
}

// IssuedCount は発行済みキャプチャの数を返す
func (d *FakeDevice) IssuedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.issued)
}

// LastConfig は最後にStartCamerasへ渡された設定を返す
func (d *FakeDevice) LastConfig() DeviceConfiguration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastConfig
}

// FakeEnumerator はテスト用のEnumerator実装
type FakeEnumerator struct {
	mu      sync.Mutex
	devices []*FakeDevice
}

// NewFakeEnumerator は指定されたデバイスを列挙するFakeEnumeratorを作成する
func NewFakeEnumerator(devices ...*FakeDevice) *FakeEnumerator {
	return &FakeEnumerator{devices: devices}
}

// AddDevice は列挙対象にデバイスを追加する
func (e *FakeEnumerator) AddDevice(d *FakeDevice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devices = append(e.devices, d)
}

// InstalledCount は接続されているデバイス数を取得する
func (e *FakeEnumerator) InstalledCount(_ context.Context) (uint32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return uint32(len(e.devices)), nil
}

// Open は指定インデックスのデバイスを開く
func (e *FakeEnumerator) Open(_ context.Context, index uint32) (Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if int(index) >= len(e.devices) {
		return nil, fmt.Errorf("デバイスインデックス %d は範囲外です（接続数: %d）", index, len(e.devices))
	}

	return e.devices[index], nil
}
