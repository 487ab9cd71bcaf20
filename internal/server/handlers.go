package server

import (
	"net/http"
	"sync"
	"time"

	"shingan/internal/capcache"
	"shingan/internal/config"
	"shingan/internal/device"
	"shingan/internal/generated"

	"github.com/gin-gonic/gin"
)

// ShinganHandler は生成されたServerInterfaceを実装する
type ShinganHandler struct {
	config        *config.Config
	deviceManager device.Manager

	// デバイスごとのキャプチャキャッシュ
	mu     sync.Mutex
	caches map[string]*capcache.Cache
}

// NewShinganHandler は新しいShinganHandlerを作成する
func NewShinganHandler(cfg *config.Config, manager device.Manager) *ShinganHandler {
	return &ShinganHandler{
		config:        cfg,
		deviceManager: manager,
		caches:        make(map[string]*capcache.Cache),
	}
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *ShinganHandler) HealthCheck(c *gin.Context) {
	response := generated.HealthResponse{
		Status:    generated.Healthy,
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *ShinganHandler) GetStatus(c *gin.Context) {
	response := generated.StatusResponse{
		Status: generated.Running,
		Server: generated.ServerInfo{
			Host: h.config.Server.Host,
			Port: h.config.Server.Port,
		},
		Devices:   len(h.deviceManager.GetDevices()),
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetDevices はデバイス一覧取得エンドポイントの実装
func (h *ShinganHandler) GetDevices(c *gin.Context) {
	managed := h.deviceManager.GetDevices()
	devices := make([]generated.DeviceSummary, 0, len(managed))

	for _, d := range managed {
		summary := generated.DeviceSummary{
			Id:     d.ID,
			Serial: d.Serial,
			Index:  int(d.Index),
		}

		status := convertDeviceStatus(d.Status)
		summary.Status = &status

		lastSeen := d.LastSeen
		summary.LastSeen = &lastSeen

		devices = append(devices, summary)
	}

	response := generated.DevicesResponse{
		Devices: devices,
	}

	c.JSON(http.StatusOK, response)
}

// GetDeviceCapture はキャプチャ取得エンドポイントの実装
// 直前の取得とパラメータが一致する場合はキャッシュされたキャプチャを返す
func (h *ShinganHandler) GetDeviceCapture(c *gin.Context, deviceID string, params generated.GetDeviceCaptureParams) {
	handle, found := h.deviceManager.GetHandle(deviceID)
	if !found {
		errorResponse := generated.ErrorResponse{
			Error:     "device_not_found",
			Message:   "指定されたデバイスが見つかりません",
			Timestamp: time.Now(),
		}
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	// 省略されたパラメータには既定値を使う
	colorFormat := device.FormatColorBGRA32
	if params.ColorFormat != nil {
		colorFormat = convertColorFormat(*params.ColorFormat)
	}
	colorModeID := uint32(1)
	if params.ColorMode != nil {
		colorModeID = uint32(*params.ColorMode)
	}
	depthModeID := uint32(1)
	if params.DepthMode != nil {
		depthModeID = uint32(*params.DepthMode)
	}

	capture := h.cacheFor(deviceID).Get(c.Request.Context(), handle, colorFormat, colorModeID, depthModeID)
	if capture == nil {
		errorResponse := generated.ErrorResponse{
			Error:     "capture_failed",
			Message:   "キャプチャの取得に失敗しました",
			Details:   stringPtr("デバイスの起動またはキャプチャ取得がタイムアウトしました"),
			Timestamp: time.Now(),
		}
		c.JSON(http.StatusServiceUnavailable, errorResponse)
		return
	}

	response := generated.CaptureResponse{
		CaptureId:     capture.ID(),
		TimestampUsec: int64(capture.TimestampUsec()),
		Images:        collectImageInfo(capture),
	}

	c.JSON(http.StatusOK, response)
}

// Close は保持しているキャプチャキャッシュをすべて解放する
func (h *ShinganHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, cache := range h.caches {
		cache.Close()
	}
	h.caches = make(map[string]*capcache.Cache)
}

// cacheFor はデバイスIDに対応するキャッシュを返す（なければ作成する）
func (h *ShinganHandler) cacheFor(deviceID string) *capcache.Cache {
	h.mu.Lock()
	defer h.mu.Unlock()

	cache, exists := h.caches[deviceID]
	if !exists {
		cache = capcache.New()
		h.caches[deviceID] = cache
	}

	return cache
}

// ヘルパー関数

// convertDeviceStatus はデバイスステータスを変換する
func convertDeviceStatus(status device.Status) generated.DeviceSummaryStatus {
	switch status {
	case device.StatusActive:
		return generated.Active
	case device.StatusInactive:
		return generated.Inactive
	case device.StatusError:
		return generated.Error
	default:
		return generated.Inactive
	}
}

// convertColorFormat はクエリパラメータのフォーマット名を変換する
func convertColorFormat(format generated.GetDeviceCaptureParamsColorFormat) device.ImageFormat {
	switch format {
	case generated.COLORMJPG:
		return device.FormatColorMJPG
	case generated.COLORNV12:
		return device.FormatColorNV12
	case generated.COLORYUY2:
		return device.FormatColorYUY2
	case generated.COLORBGRA32:
		return device.FormatColorBGRA32
	default:
		return device.FormatColorBGRA32
	}
}

// collectImageInfo はキャプチャに含まれる画像のメタデータを集める
func collectImageInfo(capture *device.Capture) []generated.ImageInfo {
	images := make([]generated.ImageInfo, 0, 3)

	appendImage := func(kind generated.ImageInfoKind, img *device.Image) {
		if img == nil {
			return
		}
		ts := int64(img.DeviceTimestampUsec)
		images = append(images, generated.ImageInfo{
			Kind:          kind,
			Format:        img.Format.String(),
			Width:         img.Width,
			Height:        img.Height,
			StrideBytes:   img.StrideBytes,
			TimestampUsec: &ts,
		})
	}

	appendImage(generated.Color, capture.ColorImage())
	appendImage(generated.Depth, capture.DepthImage())
	appendImage(generated.Ir, capture.IRImage())

	return images
}

// stringPtr は文字列のポインタを返すヘルパー関数
func stringPtr(s string) *string {
	return &s
}
