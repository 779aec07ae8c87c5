// Package apperror はレコードストア共通のエラー分類を定義します。
package apperror

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// エラー分類。各エンティティのエラーは errors.Is でいずれかに一致します。
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldError は入力値の不備を表します。
type FieldError struct {
	Entity string
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", e.Entity, e.Field, e.Reason)
}

// Is は ErrValidation との比較を可能にします。
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateKeyError は一意制約違反を、衝突したフィールドと共に表します。
type DuplicateKeyError struct {
	Entity string
	Field  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: %s already exists", e.Entity, e.Field)
}

// Is は ErrDuplicateKey との比較を可能にします。
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// NotFoundError は対象レコードが存在しないことを表します。
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + ": not found"
}

// Is は ErrNotFound との比較を可能にします。
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Invalid は FieldError を生成します。
func Invalid(entity, field, reason string) error {
	return &FieldError{Entity: entity, Field: field, Reason: reason}
}

// Required は必須フィールド欠落の FieldError を生成します。
func Required(entity, field string) error {
	return &FieldError{Entity: entity, Field: field, Reason: "is required"}
}

// Duplicate は DuplicateKeyError を生成します。
func Duplicate(entity, field string) error {
	return &DuplicateKeyError{Entity: entity, Field: field}
}

// NotFound は NotFoundError を生成します。
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// Unavailable は永続化層に到達できない原因エラーを ErrStorageUnavailable で包みます。
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// DuplicateField は err が DuplicateKeyError であれば衝突したフィールド名を返します。
func DuplicateField(err error) (string, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup.Field, true
	}
	return "", false
}

// NotFoundEntity は err が NotFoundError であれば対象エンティティ名を返します。
func NotFoundEntity(err error) (string, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity, true
	}
	return "", false
}

// RequireText は前後の空白を除いた値を返し、空であれば必須エラーを返します。
func RequireText(entity, field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", Required(entity, field)
	}
	return trimmed, nil
}

// TextLimit は列の最大文字数です。Value が nil の場合は検査しません。
type TextLimit struct {
	Field string
	Value *string
	Max   int
}

// MaxLength は value が limit 文字を超えていれば FieldError を返します。limit が 0 以下なら制限しません。
func MaxLength(entity, field, value string, limit int) error {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return nil
	}
	return Invalid(entity, field, fmt.Sprintf("must be at most %d characters", limit))
}

// CheckLengths は limits を順に検査し、最初に超過したフィールドのエラーを返します。
func CheckLengths(entity string, limits ...TextLimit) error {
	for _, l := range limits {
		if l.Value == nil {
			continue
		}
		if err := MaxLength(entity, l.Field, *l.Value, l.Max); err != nil {
			return err
		}
	}
	return nil
}
