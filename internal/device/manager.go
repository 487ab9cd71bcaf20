package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ManagedDevice は管理対象デバイスの情報を表す
type ManagedDevice struct {
	ID       string    // 管理用の一意識別子
	Serial   string    // デバイスのシリアル番号
	Index    uint32    // 列挙時のデバイスインデックス
	Status   Status    // 現在の状態
	LastSeen time.Time // 最後に確認された時刻
}

// Manager は複数デバイスの統合管理を担うインターフェース
type Manager interface {
	// Start は接続済みデバイスをすべて開いて管理を開始する
	Start(ctx context.Context) error

	// Stop は管理中のデバイスをすべてクローズする
	Stop(ctx context.Context) error

	// GetDevices は現在管理されているデバイス一覧を取得する
	GetDevices() []ManagedDevice

	// GetDevice は指定されたIDのデバイス情報を取得する
	GetDevice(id string) (*ManagedDevice, bool)

	// GetHandle は指定されたIDのデバイスハンドルを取得する
	GetHandle(id string) (Device, bool)

	// OpenDevice は指定インデックスのデバイスを開いて管理対象に追加する
	OpenDevice(ctx context.Context, index uint32) (*ManagedDevice, error)

	// CloseDevice はデバイスをクローズして管理対象から削除する
	CloseDevice(ctx context.Context, id string) error
}

// DefaultManager はManagerのデフォルト実装
type DefaultManager struct {
	enumerator Enumerator
	devices    map[string]*ManagedDevice
	handles    map[string]Device
	mu         sync.RWMutex
}

// NewDefaultManager は新しいDefaultManagerを作成する
func NewDefaultManager(enumerator Enumerator) *DefaultManager {
	return &DefaultManager{
		enumerator: enumerator,
		devices:    make(map[string]*ManagedDevice),
		handles:    make(map[string]Device),
	}
}

// Start は接続済みデバイスをすべて開いて管理を開始する
func (m *DefaultManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	count, err := m.enumerator.InstalledCount(ctx)
	if err != nil {
		return fmt.Errorf("デバイス数の取得に失敗: %w", err)
	}

	for index := uint32(0); index < count; index++ {
		if _, err := m.openDeviceInternal(ctx, index); err != nil {
			// 一部のデバイスが開けなくても残りの管理は継続する
			continue
		}
	}

	return nil
}

// Stop は管理中のデバイスをすべてクローズする
func (m *DefaultManager) Stop(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var closeErrors []error
	for id, handle := range m.handles {
		handle.StopCameras()
		if err := handle.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("デバイス %s のクローズに失敗: %w", id, err))
		}
	}

	m.devices = make(map[string]*ManagedDevice)
	m.handles = make(map[string]Device)

	if len(closeErrors) > 0 {
		return fmt.Errorf("一部のデバイスクローズに失敗: %v", closeErrors)
	}

	return nil
}

// GetDevices は現在管理されているデバイス一覧を取得する
func (m *DefaultManager) GetDevices() []ManagedDevice {
	m.mu.RLock()
	defer m.mu.RUnlock()

	devices := make([]ManagedDevice, 0, len(m.devices))
	for _, d := range m.devices {
		devices = append(devices, *d)
	}

	return devices
}

// GetDevice は指定されたIDのデバイス情報を取得する
func (m *DefaultManager) GetDevice(id string) (*ManagedDevice, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, exists := m.devices[id]
	if !exists {
		return nil, false
	}

	// コピーを返す
	result := *d
	return &result, true
}

// GetHandle は指定されたIDのデバイスハンドルを取得する
func (m *DefaultManager) GetHandle(id string) (Device, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	handle, exists := m.handles[id]
	return handle, exists
}

// OpenDevice は指定インデックスのデバイスを開いて管理対象に追加する
func (m *DefaultManager) OpenDevice(ctx context.Context, index uint32) (*ManagedDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.openDeviceInternal(ctx, index)
}

// CloseDevice はデバイスをクローズして管理対象から削除する
func (m *DefaultManager) CloseDevice(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	handle, exists := m.handles[id]
	if !exists {
		return fmt.Errorf("デバイスが見つかりません: %s", id)
	}

	handle.StopCameras()
	if err := handle.Close(); err != nil {
		return fmt.Errorf("デバイスのクローズに失敗: %w", err)
	}

	delete(m.devices, id)
	delete(m.handles, id)

	return nil
}

// openDeviceInternal は内部でデバイスを開く（ロック済み前提）
func (m *DefaultManager) openDeviceInternal(ctx context.Context, index uint32) (*ManagedDevice, error) {
	handle, err := m.enumerator.Open(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("デバイス %d のオープンに失敗: %w", index, err)
	}

	// 既に同じシリアル番号のデバイスが登録されているかチェック
	serial := handle.SerialNumber()
	for _, d := range m.devices {
		if d.Serial == serial {
			return nil, fmt.Errorf("デバイス %s は既に開かれています", serial)
		}
	}

	managed := &ManagedDevice{
		ID:       uuid.New().String(),
		Serial:   serial,
		Index:    index,
		Status:   StatusActive,
		LastSeen: time.Now(),
	}

	m.devices[managed.ID] = managed
	m.handles[managed.ID] = handle

	return managed, nil
}
