package device

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrCaptureReleased は解放済みキャプチャへの操作を表すエラー
var ErrCaptureReleased = errors.New("キャプチャは既に解放されています")

// Image は1枚のセンサー画像を表す
type Image struct {
	Format              ImageFormat // 画像フォーマット
	Width               int         // 画像幅（ピクセル）
	Height              int         // 画像高さ（ピクセル）
	StrideBytes         int         // 1行あたりのバイト数
	DeviceTimestampUsec uint64      // デバイスタイムスタンプ（マイクロ秒）
	Payload             []byte      // 画像データ
}

// Capture は1回のキャプチャで得られた同期済み画像バンドルを表す
// 保持者は不要になったら Release を正確に1回呼ぶこと
type Capture struct {
	id         string
	colorImage *Image
	depthImage *Image
	irImage    *Image

	mu       sync.Mutex
	released bool
}

// NewCapture は新しいキャプチャを作成する
// 含まれない画像には nil を渡す
func NewCapture(color, depth, ir *Image) *Capture {
	return &Capture{
		id:         uuid.New().String(),
		colorImage: color,
		depthImage: depth,
		irImage:    ir,
	}
}

// ID はキャプチャの一意識別子を返す
func (c *Capture) ID() string {
	return c.id
}

// ColorImage はカラー画像を返す（含まれない場合は nil）
// 解放済みのキャプチャへのアクセスは不正であり、nil を返す
func (c *Capture) ColorImage() *Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil
	}
	return c.colorImage
}

// DepthImage は深度画像を返す（含まれない場合は nil）
// 解放済みのキャプチャへのアクセスは不正であり、nil を返す
func (c *Capture) DepthImage() *Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil
	}
	return c.depthImage
}

// IRImage はIR画像を返す（含まれない場合は nil）
// 解放済みのキャプチャへのアクセスは不正であり、nil を返す
func (c *Capture) IRImage() *Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil
	}
	return c.irImage
}

// TimestampUsec はキャプチャのタイムスタンプを返す
// 深度画像を優先し、なければカラー画像、IR画像の順に参照する
// 解放済みのキャプチャへのアクセスは不正であり、0 を返す
func (c *Capture) TimestampUsec() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return 0
	}

	switch {
	case c.depthImage != nil:
		return c.depthImage.DeviceTimestampUsec
	case c.colorImage != nil:
		return c.colorImage.DeviceTimestampUsec
	case c.irImage != nil:
		return c.irImage.DeviceTimestampUsec
	default:
		return 0
	}
}

// Release はキャプチャのリソースを解放する
// 2回目以降の呼び出しは ErrCaptureReleased を返す
func (c *Capture) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrCaptureReleased
	}

	c.released = true
	return nil
}

// Released はキャプチャが解放済みかどうかを返す
func (c *Capture) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}
