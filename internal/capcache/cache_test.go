package capcache

import (
	"context"
	"sync"
	"testing"

	"shingan/internal/device"
)

// TestCacheMemoization は同一パラメータの呼び出しがハードウェアに触れないことをテストする
func TestCacheMemoization(t *testing.T) {
	ctx := context.Background()
	dev := device.NewFakeDevice("fake-000001")
	cache := New()
	defer cache.Close()

	first := cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
	if first == nil {
		t.Fatal("1回目のキャプチャがnilです")
	}

	if dev.StartCount() != 1 || dev.CaptureCount() != 1 || dev.StopCount() != 1 {
		t.Fatalf("1回目で開始/取得/停止が各1回実行されるはず: start=%d capture=%d stop=%d",
			dev.StartCount(), dev.CaptureCount(), dev.StopCount())
	}

	// 同一パラメータで再取得
	for i := 0; i < 5; i++ {
		capture := cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
		if capture != first {
			t.Fatalf("%d回目の呼び出しで同じキャプチャが返されませんでした", i+2)
		}
	}

	if dev.StartCount() != 1 || dev.CaptureCount() != 1 || dev.StopCount() != 1 {
		t.Errorf("キャッシュヒット時にハードウェア呼び出しが発生: start=%d capture=%d stop=%d",
			dev.StartCount(), dev.CaptureCount(), dev.StopCount())
	}

	if first.Released() {
		t.Error("キャッシュ保持中のキャプチャが解放されています")
	}
}

// TestCacheInvalidation はパラメータ変更で旧キャプチャが解放され再取得されることをテストする
func TestCacheInvalidation(t *testing.T) {
	testCases := []struct {
		name        string
		colorFormat device.ImageFormat
		colorModeID uint32
		depthModeID uint32
	}{
		{name: "カラーフォーマット変更", colorFormat: device.FormatColorMJPG, colorModeID: 2, depthModeID: 1},
		{name: "カラーモードID変更", colorFormat: device.FormatColorBGRA32, colorModeID: 3, depthModeID: 1},
		{name: "深度モードID変更", colorFormat: device.FormatColorBGRA32, colorModeID: 2, depthModeID: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			dev := device.NewFakeDevice("fake-000001")
			cache := New()
			defer cache.Close()

			first := cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
			if first == nil {
				t.Fatal("1回目のキャプチャがnilです")
			}

			second := cache.Get(ctx, dev, tc.colorFormat, tc.colorModeID, tc.depthModeID)
			if second == nil {
				t.Fatal("2回目のキャプチャがnilです")
			}
			if second == first {
				t.Fatal("パラメータ変更後に同じキャプチャが返されました")
			}

			// 旧キャプチャは正確に1回解放される
			if !first.Released() {
				t.Error("旧キャプチャが解放されていません")
			}
			if dev.ReleasedCount() != 1 {
				t.Errorf("解放されたキャプチャ数が不正: got %d, want 1", dev.ReleasedCount())
			}

			// 再取得は1サイクルのみ
			if dev.StartCount() != 2 || dev.CaptureCount() != 2 || dev.StopCount() != 2 {
				t.Errorf("再取得のサイクル数が不正: start=%d capture=%d stop=%d",
					dev.StartCount(), dev.CaptureCount(), dev.StopCount())
			}
		})
	}
}

// TestCacheReleaseDiscipline はN回のパラメータ変更で解放がN-1回だけ起きることをテストする
func TestCacheReleaseDiscipline(t *testing.T) {
	ctx := context.Background()
	dev := device.NewFakeDevice("fake-000001")
	cache := New()

	const changes = 5
	for i := 0; i < changes; i++ {
		capture := cache.Get(ctx, dev, device.FormatColorBGRA32, uint32(i+1), 1)
		if capture == nil {
			t.Fatalf("%d回目のキャプチャがnilです", i+1)
		}
	}

	if dev.IssuedCount() != changes {
		t.Fatalf("発行されたキャプチャ数が不正: got %d, want %d", dev.IssuedCount(), changes)
	}

	// 最後の1件はキャッシュが保持しているため未解放
	if dev.ReleasedCount() != changes-1 {
		t.Errorf("解放回数が不正: got %d, want %d", dev.ReleasedCount(), changes-1)
	}

	// クローズで最後の1件も解放される
	cache.Close()
	if dev.ReleasedCount() != changes {
		t.Errorf("クローズ後の解放回数が不正: got %d, want %d", dev.ReleasedCount(), changes)
	}

	// 二重解放は発生しない（再クローズしても回数は変わらない）
	cache.Close()
	if dev.ReleasedCount() != changes {
		t.Errorf("二重解放が発生: got %d, want %d", dev.ReleasedCount(), changes)
	}
}

// TestCacheStartFailure は開始失敗時も停止が必ず実行されることをテストする
func TestCacheStartFailure(t *testing.T) {
	ctx := context.Background()
	dev := device.NewFakeDevice("fake-000001")
	dev.SetShouldFailStart(true)
	cache := New()
	defer cache.Close()

	capture := cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
	if capture != nil {
		t.Fatal("開始失敗時はnilが返されるはず")
	}

	// 開始に失敗してもカメラ停止は実行される
	if dev.StopCount() != 1 {
		t.Errorf("開始失敗時に停止が実行されていません: stop=%d", dev.StopCount())
	}

	// キャプチャ取得はスキップされる
	if dev.CaptureCount() != 0 {
		t.Errorf("開始失敗時にキャプチャ取得が実行されました: capture=%d", dev.CaptureCount())
	}

	// 失敗結果（nil）はキャッシュされず、同一パラメータでも再試行される
	dev.SetShouldFailStart(false)
	capture = cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
	if capture == nil {
		t.Fatal("復旧後の再取得に失敗しました")
	}
	if dev.StartCount() != 2 || dev.StopCount() != 2 {
		t.Errorf("復旧後のサイクル数が不正: start=%d stop=%d", dev.StartCount(), dev.StopCount())
	}
}

// TestCacheCaptureFailure は取得失敗のステータスが無視されnilが採用されることをテストする
func TestCacheCaptureFailure(t *testing.T) {
	ctx := context.Background()
	dev := device.NewFakeDevice("fake-000001")
	dev.SetShouldFailCapture(true)
	cache := New()
	defer cache.Close()

	capture := cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
	if capture != nil {
		t.Fatal("取得失敗時はnilが返されるはず")
	}

	// 取得に失敗してもカメラ停止は実行される
	if dev.StartCount() != 1 || dev.CaptureCount() != 1 || dev.StopCount() != 1 {
		t.Errorf("取得失敗時のサイクルが不正: start=%d capture=%d stop=%d",
			dev.StartCount(), dev.CaptureCount(), dev.StopCount())
	}
}

// TestCacheConfiguration は再取得時の固定設定とパラメータの上書きをテストする
func TestCacheConfiguration(t *testing.T) {
	ctx := context.Background()
	dev := device.NewFakeDevice("fake-000001")
	cache := New()
	defer cache.Close()

	cache.Get(ctx, dev, device.FormatColorNV12, 1, 2)

	config := dev.LastConfig()
	if config.ColorFormat != device.FormatColorNV12 {
		t.Errorf("カラーフォーマットが不正: got %v", config.ColorFormat)
	}
	if config.ColorModeID != 1 || config.DepthModeID != 2 {
		t.Errorf("モードIDが不正: color=%d depth=%d", config.ColorModeID, config.DepthModeID)
	}
	if config.FPSModeID != device.FPSMode15 {
		t.Errorf("FPSモードIDが不正: got %d, want %d", config.FPSModeID, device.FPSMode15)
	}
	if !config.SynchronizedImagesOnly {
		t.Error("SynchronizedImagesOnlyがtrueではありません")
	}
	if config.DepthDelayOffColorUsec != 0 || config.SubordinateDelayOffMasterUsec != 0 {
		t.Error("遅延設定が0ではありません")
	}
	if config.WiredSyncMode != device.WiredSyncStandalone {
		t.Errorf("有線同期モードが不正: got %v", config.WiredSyncMode)
	}
	if config.DisableStreamingIndicator {
		t.Error("DisableStreamingIndicatorがfalseではありません")
	}
}

// TestCacheMutualExclusion は並行呼び出しで開始・取得・停止の列が交錯しないことをテストする
func TestCacheMutualExclusion(t *testing.T) {
	ctx := context.Background()
	dev := device.NewFakeDevice("fake-000001")
	cache := New()
	defer cache.Close()

	const iterations = 50
	var wg sync.WaitGroup
	wg.Add(2)

	// 異なるパラメータで交互にキャッシュを奪い合う
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			cache.Get(ctx, dev, device.FormatColorBGRA32, 2, 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			cache.Get(ctx, dev, device.FormatColorMJPG, 1, 3)
		}
	}()

	wg.Wait()

	if violations := dev.SequenceViolations(); violations != 0 {
		t.Errorf("ハードウェア呼び出し列の交錯を検出: %d件", violations)
	}

	// 開始と停止は常に対になる
	if dev.StartCount() != dev.StopCount() {
		t.Errorf("開始と停止の回数が一致しません: start=%d stop=%d", dev.StartCount(), dev.StopCount())
	}
}
