// Package assets はバイナリに埋め込むマイグレーションと初期データです。
package assets

import "embed"

// Migrations は golang-migrate 形式のスキーマ定義です。
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir は Migrations 内のディレクトリ名です。
const MigrationsDir = "migrations"

// SeedSQL はデモストアと同じ初期データを投入する SQL です。何度実行しても結果は変わりません。
//
//go:embed seeds/seed.sql
var SeedSQL string
