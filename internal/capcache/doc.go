// Package capcache はデバイスキャプチャのプロセス内キャッシュを提供する
//
// # 責務
// - 開始→取得→停止のハードウェア往復コストの複数テストケース間での共有
// - 同一パラメータでの再取得の抑止（メモ化）
// - パラメータ変更時の旧キャプチャの解放と再取得
//
// # 仕様
// - キャッシュはキャプチャを常に最大1件だけ保持する
// - 保持中のキャプチャは上書き前に正確に1回解放される
// - 取得失敗は呼び出し元へ伝播しない。失敗時は nil がキャッシュされ、
//   そのまま返される（ベストエフォート方針）
// - 全操作は単一のミューテックスで直列化される。ロック保持中に
//   ハードウェア呼び出しを行うため、本番のレイテンシ経路では使わないこと
package capcache
