package record

import (
	"errors"

	"shingan/internal/device"
)

// ErrEOF はストリームの終端を表すエラー
var ErrEOF = errors.New("ストリームの終端に達しました")

// recordMagic は記録ファイルの先頭に置くマジックバイト
var recordMagic = []byte("SHINGANREC1\n")

// maxBlockBytes は1ブロックの上限サイズ。破損ファイル対策
const maxBlockBytes = 64 << 20

// RecordConfiguration は記録時のデバイス設定を表す
type RecordConfiguration struct {
	DeviceSerial                  string               `json:"device_serial"`
	ColorFormat                   device.ImageFormat   `json:"color_format"`
	ColorModeID                   uint32               `json:"color_mode_id"`
	DepthModeID                   uint32               `json:"depth_mode_id"`
	FPSModeID                     uint32               `json:"fps_mode_id"`
	SynchronizedImagesOnly        bool                 `json:"synchronized_images_only"`
	DepthDelayOffColorUsec        int32                `json:"depth_delay_off_color_usec"`
	WiredSyncMode                 device.WiredSyncMode `json:"wired_sync_mode"`
	SubordinateDelayOffMasterUsec uint32               `json:"subordinate_delay_off_master_usec"`
	StartTimestampUsec            uint64               `json:"start_timestamp_usec"`
}

// imageRecord は1画像の記録形式
type imageRecord struct {
	Format              device.ImageFormat `json:"format"`
	Width               int                `json:"width"`
	Height              int                `json:"height"`
	StrideBytes         int                `json:"stride_bytes"`
	DeviceTimestampUsec uint64             `json:"device_timestamp_usec"`
	Payload             []byte             `json:"payload"`
}

// captureRecord は1キャプチャの記録形式
type captureRecord struct {
	TimestampUsec uint64       `json:"timestamp_usec"`
	Color         *imageRecord `json:"color,omitempty"`
	Depth         *imageRecord `json:"depth,omitempty"`
	IR            *imageRecord `json:"ir,omitempty"`
}

// toImageRecord はImageを記録形式に変換する
func toImageRecord(img *device.Image) *imageRecord {
	if img == nil {
		return nil
	}
	return &imageRecord{
		Format:              img.Format,
		Width:               img.Width,
		Height:              img.Height,
		StrideBytes:         img.StrideBytes,
		DeviceTimestampUsec: img.DeviceTimestampUsec,
		Payload:             img.Payload,
	}
}

// toImage は記録形式をImageに変換する
func (r *imageRecord) toImage() *device.Image {
	if r == nil {
		return nil
	}
	return &device.Image{
		Format:              r.Format,
		Width:               r.Width,
		Height:              r.Height,
		StrideBytes:         r.StrideBytes,
		DeviceTimestampUsec: r.DeviceTimestampUsec,
		Payload:             r.Payload,
	}
}

// toCapture は記録形式からキャプチャを復元する
func (r *captureRecord) toCapture() *device.Capture {
	return device.NewCapture(r.Color.toImage(), r.Depth.toImage(), r.IR.toImage())
}
