// Package server は、HTTPサーバーとAPIハンドラを管理します。
//
// このパッケージは、HTTPサーバーの起動、OpenAPI定義から生成された
// ルーティングの登録、デバイス状態とキャプチャ取得APIの処理を担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - 生成されたServerInterfaceの実装
//   - デバイス一覧・システム状態の提供
//   - デバイスごとのキャプチャキャッシュの管理
//
// 仕様:
//   - ルーティングはgin-gonic/ginを使用
//   - ハンドラの型はoapi-codegenで生成されたスキーマを使用
//   - グレースフルシャットダウンに対応（シャットダウン時にキャッシュも解放）
//   - キャプチャ取得は直前のパラメータと一致すればハードウェアへアクセスしない
package server
