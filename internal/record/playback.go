package record

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"shingan/internal/device"
)

// Playback は記録ファイルをキャプチャ単位で再生する
// 再生位置は前後それぞれのカーソルで管理される。NextCapture と
// PreviousCapture が同じキャプチャを2回続けて返すことはない
type Playback struct {
	config RecordConfiguration
	frames []captureRecord

	// nextPos は次に NextCapture が返すフレームのインデックス
	// len(frames) は終端を表す
	nextPos int
	// prevPos は次に PreviousCapture が返すフレームのインデックス
	// -1 は先頭を表す
	prevPos int

	closed bool
}

// Open は記録ファイルを開いて全フレームを読み込む
func Open(path string) (*Playback, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("記録ファイルのオープンに失敗: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := bufio.NewReader(file)

	magic := make([]byte, len(recordMagic))
	if _, err := io.ReadFull(reader, magic); err != nil {
		return nil, fmt.Errorf("マジックバイトの読み込みに失敗: %w", err)
	}
	if !bytes.Equal(magic, recordMagic) {
		return nil, fmt.Errorf("記録ファイルの形式が不正です: %s", path)
	}

	var config RecordConfiguration
	if err := readBlock(reader, &config); err != nil {
		return nil, fmt.Errorf("記録設定の読み込みに失敗: %w", err)
	}

	var frames []captureRecord
	for {
		var rec captureRecord
		if err := readBlock(reader, &rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("キャプチャの読み込みに失敗: %w", err)
		}
		frames = append(frames, rec)
	}

	return &Playback{config: config, frames: frames, nextPos: 0, prevPos: -1}, nil
}

// RecordConfiguration は記録時のデバイス設定を返す
func (p *Playback) RecordConfiguration() RecordConfiguration {
	return p.config
}

// CaptureCount は記録されているキャプチャ数を返す
func (p *Playback) CaptureCount() int {
	return len(p.frames)
}

// NextCapture は次のキャプチャを返す
// 終端に達している場合は ErrEOF を返す。終端で ErrEOF を返した後の
// PreviousCapture は最後のキャプチャを返す
func (p *Playback) NextCapture() (*device.Capture, error) {
	if p.closed {
		return nil, fmt.Errorf("再生は既にクローズされています")
	}

	if p.nextPos >= len(p.frames) {
		p.nextPos = len(p.frames)
		p.prevPos = len(p.frames) - 1
		return nil, ErrEOF
	}

	capture := p.frames[p.nextPos].toCapture()
	p.prevPos = p.nextPos - 1
	p.nextPos++
	return capture, nil
}

// PreviousCapture は直前に返したキャプチャの1つ前を返す
// 先頭に達している場合は ErrEOF を返す。先頭で ErrEOF を返した後の
// NextCapture は先頭のキャプチャを返す
func (p *Playback) PreviousCapture() (*device.Capture, error) {
	if p.closed {
		return nil, fmt.Errorf("再生は既にクローズされています")
	}

	if p.prevPos < 0 {
		p.prevPos = -1
		p.nextPos = 0
		return nil, ErrEOF
	}

	capture := p.frames[p.prevPos].toCapture()
	p.nextPos = p.prevPos + 1
	p.prevPos--
	return capture, nil
}

// SeekTimestamp は指定タイムスタンプ（マイクロ秒）へシークする
// 次の NextCapture は指定タイムスタンプ以降の最初のキャプチャを返し、
// 次の PreviousCapture はその1つ前のキャプチャを返す
func (p *Playback) SeekTimestamp(timestampUsec uint64) error {
	if p.closed {
		return fmt.Errorf("再生は既にクローズされています")
	}

	for i, frame := range p.frames {
		if frame.TimestampUsec >= timestampUsec {
			p.nextPos = i
			p.prevPos = i - 1
			return nil
		}
	}

	// 全フレームより後ろへのシークは終端に位置づける
	p.nextPos = len(p.frames)
	p.prevPos = len(p.frames) - 1
	return nil
}

// Close は再生をクローズする
func (p *Playback) Close() error {
	p.closed = true
	p.frames = nil
	return nil
}

// readBlock は長さ接頭辞付きJSONブロックを読み込む
// ストリーム終端では io.EOF を返す
func readBlock(r io.Reader, v interface{}) error {
	var length [4]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("ブロック長の読み込みに失敗: %w", err)
	}

	size := binary.BigEndian.Uint32(length[:])
	if size > maxBlockBytes {
		return fmt.Errorf("ブロックサイズが上限を超えています: %d", size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return fmt.Errorf("ブロック本体の読み込みに失敗: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("JSONデコードに失敗: %w", err)
	}

	return nil
}
