package record

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"shingan/internal/device"
)

// Writer はキャプチャ列を記録ファイルへ書き出す
type Writer struct {
	file         *os.File
	buf          *bufio.Writer
	captureCount int
	closed       bool
}

// NewWriter は記録ファイルを作成してヘッダーを書き込む
func NewWriter(path string, config RecordConfiguration) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("記録ファイルの作成に失敗: %w", err)
	}

	buf := bufio.NewWriter(file)

	if _, err := buf.Write(recordMagic); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("マジックバイトの書き込みに失敗: %w", err)
	}

	if err := writeBlock(buf, config); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("記録設定の書き込みに失敗: %w", err)
	}

	return &Writer{file: file, buf: buf}, nil
}

// WriteCapture はキャプチャを1件書き込む
func (w *Writer) WriteCapture(capture *device.Capture) error {
	if w.closed {
		return fmt.Errorf("記録ファイルは既にクローズされています")
	}
	if capture == nil {
		return fmt.Errorf("nilのキャプチャは記録できません")
	}
	if capture.Released() {
		return fmt.Errorf("解放済みのキャプチャは記録できません: %w", device.ErrCaptureReleased)
	}

	rec := captureRecord{
		TimestampUsec: capture.TimestampUsec(),
		Color:         toImageRecord(capture.ColorImage()),
		Depth:         toImageRecord(capture.DepthImage()),
		IR:            toImageRecord(capture.IRImage()),
	}

	if err := writeBlock(w.buf, rec); err != nil {
		return fmt.Errorf("キャプチャの書き込みに失敗: %w", err)
	}

	w.captureCount++
	return nil
}

// CaptureCount は書き込み済みキャプチャ数を返す
func (w *Writer) CaptureCount() int {
	return w.captureCount
}

// Close はバッファをフラッシュしてファイルをクローズする
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("記録ファイルのフラッシュに失敗: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("記録ファイルのクローズに失敗: %w", err)
	}

	return nil
}

// writeBlock は長さ接頭辞付きJSONブロックを書き込む
func writeBlock(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("JSONエンコードに失敗: %w", err)
	}

	if len(data) > maxBlockBytes {
		return fmt.Errorf("ブロックサイズが上限を超えています: %d", len(data))
	}

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))

	if _, err := w.Write(length[:]); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	return nil
}
