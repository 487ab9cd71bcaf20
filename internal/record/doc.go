// Package record はキャプチャ列のファイルへの記録と再生を提供する
//
// # 責務
// - デバイス設定とキャプチャ列のファイルへの書き出し
// - 記録ファイルの読み込みと記録時設定の取得
// - キャプチャ単位での順方向・逆方向の再生とタイムスタンプシーク
//
// # 仕様
// - コンテナは独自形式: マジックバイト + 長さ接頭辞付きJSONブロック列
//   （先頭ブロックが記録設定、以降が各キャプチャ）
// - NextCapture は直前に返したキャプチャの次を返す
// - PreviousCapture が終端（先頭）に達した後の NextCapture は
//   先頭のキャプチャを返す
// - SeekTimestamp 後の最初の NextCapture は指定タイムスタンプ以降の
//   最初のキャプチャを返す
// - 再生が返すキャプチャの解放は呼び出し元の責務
package record
