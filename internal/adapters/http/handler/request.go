package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// ActorHeader は変更履歴の usuario_cambio に記録する操作者を指定するヘッダーです。
const ActorHeader = "X-Usuario"

var registerTagNames sync.Once

// RegisterValidation は gin の validator が json/form タグ名でフィールドを報告するように設定します。
func RegisterValidation() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// bindingError は ShouldBind 系のエラーを FieldError に変換します。
func bindingError(entity string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return apperror.Required(entity, fe.Field())
		case "gt", "min":
			return apperror.Invalid(entity, fe.Field(), "must be greater than "+fe.Param())
		default:
			return apperror.Invalid(entity, fe.Field(), "is invalid")
		}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return apperror.Invalid(entity, "", "query parameter must be an integer")
	}
	return apperror.Invalid(entity, "", "malformed request body")
}

// pathID はパスパラメータ id を正の整数として取り出します。
func pathID(c *gin.Context, invalid error) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}

// parseDate は YYYY-MM-DD (または RFC3339) の任意項目を解釈します。
func parseDate(entity, field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := shared.ParseDate(*raw)
	if err != nil {
		return nil, apperror.Invalid(entity, field, "must be a date (YYYY-MM-DD)")
	}
	return &d, nil
}

func actor(c *gin.Context) string {
	return c.GetHeader(ActorHeader)
}
