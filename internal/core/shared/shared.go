// Package shared はユースケース層で共通に使う抽象とヘルパーです。
package shared

import (
	"context"
	"strings"
	"time"
)

// DateLayout は日付フィールドの表現形式です。
const DateLayout = "2006-01-02"

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// RealClock は UTC の現在時刻を返す Clock です。
func RealClock() Clock {
	return realClock{}
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// NoopTransactionManager は fn をそのまま実行する TransactionManager を返します。
func NoopTransactionManager() TransactionManager {
	return noopTransactionManager{}
}

// NormalizeDate は時刻部分を切り捨てた UTC の日付を返します。
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeDatePtr は NormalizeDate のポインタ版です。
func NormalizeDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := NormalizeDate(*t)
	return &d
}

// ParseDate は YYYY-MM-DD または RFC3339 形式の文字列を日付として解釈します。
func ParseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(DateLayout, trimmed, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// FormatDate は日付を YYYY-MM-DD で表現します。nil の場合は nil を返します。
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// CloneTime は時刻ポインタを複製します。
func CloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

// CloneString は文字列ポインタを複製します。
func CloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// CloneInt64 は整数ポインタを複製します。
func CloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

// TrimOptional は前後の空白を除去し、空になった場合は nil を返します。
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
