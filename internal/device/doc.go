// Package device は深度カメラデバイスのバインディング抽象を提供する
//
// # 責務
// - デバイスハンドルの抽象化（開始・停止・キャプチャ取得）
// - デバイス設定（カラーフォーマット、モードID、同期モード）の表現
// - カラー/深度/FPSモードの列挙と選択
// - キャプチャ（カラー・深度・IR画像の同期バンドル）の所有権管理
// - 複数デバイスの統合管理
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - デバイスのカメラを開始して1フレーム取得したい
// - デバイスがサポートするモードを列挙・選択したい
// - 実ハードウェアなしでテストを実行したい（FakeDevice）
//
// # 仕様
// - Device: 外部ドライバーバインディングへの操作列（開始→取得→停止）
// - Capture: 1回のキャプチャ結果。Release は正確に1回呼ぶこと
// - Manager: 接続済みデバイスの統合管理
// - モードID 0 は「オフ」を意味し、選択対象にならない
// - Thread-safe な操作をサポート
package device
