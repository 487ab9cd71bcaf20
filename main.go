package main

import (
	"context"
	"fmt"
	"log"

	"shingan/internal/config"
	"shingan/internal/device"
	"shingan/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// コンテキストを作成
	ctx := context.Background()

	// フェイクデバイスを列挙してデバイスマネージャーを起動する
	enumerator := device.NewFakeEnumerator()
	for i := 0; i < cfg.Device.FakeDevices; i++ {
		enumerator.AddDevice(device.NewFakeDevice(fmt.Sprintf("fake-%06d", i+1)))
	}

	manager := device.NewDefaultManager(enumerator)
	if err := manager.Start(ctx); err != nil {
		log.Fatalf("デバイスマネージャーの起動に失敗しました: %v", err)
	}
	defer func() {
		if err := manager.Stop(ctx); err != nil {
			log.Printf("デバイスの停止に失敗しました: %v", err)
		}
	}()

	// サーバーを作成
	srv := server.New(cfg, manager)

	// サーバーを起動
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("サーバーの起動に失敗しました: %v", err)
	}
}
