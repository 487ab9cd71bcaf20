package capcache

import (
	"context"
	"sync"
	"time"

	"shingan/internal/device"
)

// captureTimeout は1キャプチャ取得の待機上限
const captureTimeout = 1000 * time.Millisecond

// Cache はキャプチャとその取得パラメータを1件だけ保持するキャッシュ
// テストプロセスごとに1つ作成し、参照で持ち回ること
type Cache struct {
	mu sync.Mutex

	capture     *device.Capture
	colorFormat device.ImageFormat
	colorModeID uint32
	depthModeID uint32
}

// New は新しい空のCacheを作成する
func New() *Cache {
	return &Cache{}
}

// Get は指定パラメータのキャプチャを返す
// 直前の取得とパラメータが一致すればハードウェアに触れずに同じキャプチャを返し、
// 異なれば旧キャプチャを解放して開始→取得→停止の1サイクルを実行する
//
// 取得の失敗はエラーとして返さない。開始またはキャプチャ取得に失敗した場合は
// nil がキャッシュされ、そのまま返される。呼び出し元が有効性を確認すること
func (c *Cache) Get(ctx context.Context, dev device.Device, colorFormat device.ImageFormat, colorModeID, depthModeID uint32) *device.Capture {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil &&
		c.colorFormat == colorFormat &&
		c.colorModeID == colorModeID &&
		c.depthModeID == depthModeID {
		return c.capture
	}

	// 旧キャプチャを解放する。上書き前の解放は正確に1回
	if c.capture != nil {
		_ = c.capture.Release()
		c.capture = nil
	}

	config := device.DeviceConfiguration{
		ColorFormat:                   colorFormat,
		ColorModeID:                   colorModeID,
		DepthModeID:                   depthModeID,
		FPSModeID:                     device.FPSMode15,
		SynchronizedImagesOnly:        true,
		DepthDelayOffColorUsec:        0,
		WiredSyncMode:                 device.WiredSyncStandalone,
		SubordinateDelayOffMasterUsec: 0,
		DisableStreamingIndicator:     false,
	}

	var capture *device.Capture
	if err := dev.StartCameras(ctx, &config); err == nil {
		// 取得結果のステータスは意図的に無視する
		// タイムアウト時もハンドル値（nilの場合あり）をそのまま採用する
		capture, _ = dev.GetCapture(ctx, captureTimeout)
	}

	// 開始に失敗していてもカメラは必ず停止する
	dev.StopCameras()

	c.capture = capture
	c.colorFormat = colorFormat
	c.colorModeID = colorModeID
	c.depthModeID = depthModeID

	return c.capture
}

// Close は保持中のキャプチャを解放してキャッシュを空にする
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture != nil {
		_ = c.capture.Release()
		c.capture = nil
	}
}
