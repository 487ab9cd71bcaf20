// Package main は深度カメラのストリーミング確認コマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shingan/internal/device"
	"shingan/internal/record"
)

func main() {
	// コマンドラインオプション
	var (
		count      = flag.Int("count", 20, "取得するキャプチャ数")
		serial     = flag.String("serial", "fake-000001", "使用するフェイクデバイスのシリアル番号")
		recordPath = flag.String("record", "", "キャプチャの記録先ファイル（省略時は記録しない）")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("Shingan ストリーミング確認コマンド")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  streaming [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if err := run(*count, *serial, *recordPath); err != nil {
		log.Fatalf("ストリーミングに失敗しました: %v", err)
	}
}

// run は最高品質のモードを選択してキャプチャループを実行する
func run(count int, serial, recordPath string) error {
	ctx := context.Background()

	enumerator := device.NewFakeEnumerator(device.NewFakeDevice(serial))

	installed, err := enumerator.InstalledCount(ctx)
	if err != nil {
		return fmt.Errorf("デバイス数の取得に失敗: %w", err)
	}
	if installed == 0 {
		return fmt.Errorf("デバイスが見つかりません")
	}

	dev, err := enumerator.Open(ctx, 0)
	if err != nil {
		return fmt.Errorf("デバイスのオープンに失敗: %w", err)
	}
	defer func() {
		if err := dev.Close(); err != nil {
			log.Printf("デバイスのクローズに失敗しました: %v", err)
		}
	}()

	info := dev.Info()
	log.Printf("デバイス: serial=%s firmware=%s", dev.SerialNumber(), info.FirmwareVersion)

	// 最も高品質なモードを選択する
	// 4K以上のカラー、576行以上かつ狭視野の深度、最大フレームレート
	colorModeID, err := device.SelectColorMode(dev, 2160)
	if err != nil {
		return fmt.Errorf("カラーモードの選択に失敗: %w", err)
	}
	depthModeID, err := device.SelectDepthMode(dev, 576, 65.0)
	if err != nil {
		return fmt.Errorf("深度モードの選択に失敗: %w", err)
	}
	fpsModeID, err := device.SelectMaxFPSMode(dev)
	if err != nil {
		return fmt.Errorf("FPSモードの選択に失敗: %w", err)
	}

	config := device.DisableAllConfig()
	config.ColorFormat = device.FormatColorMJPG
	config.ColorModeID = colorModeID
	config.DepthModeID = depthModeID
	config.FPSModeID = fpsModeID

	log.Printf("選択されたモード: color=%d depth=%d fps=%d", colorModeID, depthModeID, fpsModeID)

	if err := dev.StartCameras(ctx, &config); err != nil {
		return fmt.Errorf("カメラの開始に失敗: %w", err)
	}
	defer dev.StopCameras()

	// 記録が指定されていれば記録ファイルを開く
	var writer *record.Writer
	if recordPath != "" {
		writer, err = record.NewWriter(recordPath, record.RecordConfiguration{
			DeviceSerial:           dev.SerialNumber(),
			ColorFormat:            config.ColorFormat,
			ColorModeID:            config.ColorModeID,
			DepthModeID:            config.DepthModeID,
			FPSModeID:              config.FPSModeID,
			SynchronizedImagesOnly: config.SynchronizedImagesOnly,
			WiredSyncMode:          config.WiredSyncMode,
		})
		if err != nil {
			return fmt.Errorf("記録ファイルの作成に失敗: %w", err)
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("記録ファイルのクローズに失敗しました: %v", err)
			}
		}()
	}

	// キャプチャループ
	for i := 0; i < count; i++ {
		capture, err := dev.GetCapture(ctx, 1000*time.Millisecond)
		if err != nil {
			return fmt.Errorf("キャプチャの取得に失敗: %w", err)
		}

		printCapture(capture)

		if writer != nil {
			if err := writer.WriteCapture(capture); err != nil {
				return fmt.Errorf("キャプチャの記録に失敗: %w", err)
			}
		}

		if err := capture.Release(); err != nil {
			return fmt.Errorf("キャプチャの解放に失敗: %w", err)
		}
	}

	if writer != nil {
		log.Printf("%d キャプチャを %s に記録しました", writer.CaptureCount(), recordPath)
	}

	return nil
}

// printCapture はキャプチャに含まれる画像の概要を出力する
func printCapture(capture *device.Capture) {
	line := fmt.Sprintf("Capture %s |", capture.ID()[:8])

	if img := capture.ColorImage(); img != nil {
		line += fmt.Sprintf(" Color res:%4dx%4d stride:%5d |", img.Height, img.Width, img.StrideBytes)
	} else {
		line += " Color None |"
	}

	if img := capture.IRImage(); img != nil {
		line += fmt.Sprintf(" IR16 res:%4dx%4d stride:%5d |", img.Height, img.Width, img.StrideBytes)
	} else {
		line += " IR16 None |"
	}

	if img := capture.DepthImage(); img != nil {
		line += fmt.Sprintf(" Depth16 res:%4dx%4d stride:%5d", img.Height, img.Width, img.StrideBytes)
	} else {
		line += " Depth16 None"
	}

	fmt.Println(line)
}
