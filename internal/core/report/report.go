// Package report は集計レポート (月次打刻・年次 vacacion) の読み取り専用プロジェクションです。
package report

import (
	"bytes"
	"context"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "reporte"

var (
	// ErrPeriodRequired は mes または anio が指定されない場合に返却されます。
	ErrPeriodRequired = apperror.Invalid(EntityName, "", "mes and anio are required")
	ErrInvalidMonth   = apperror.Invalid(EntityName, "mes", "must be between 1 and 12")
	ErrInvalidYear    = apperror.Invalid(EntityName, "anio", "must be between 1900 and 9999")
)

// MonthlyAttendanceRow は ACTIVO の funcionario 1 人分の月次打刻集計です。
type MonthlyAttendanceRow struct {
	Code         string  `json:"codigo_unico"`
	FullName     string  `json:"nombre_completo"`
	PositionName *string `json:"nombre_cargo"`
	DaysWorked   int64   `json:"dias_trabajados"`
	ClockIns     int64   `json:"entradas"`
	ClockOuts    int64   `json:"salidas"`
}

// VacationSummaryRow は ACTIVO の proyecto 1 件分の年次 vacacion 集計です。
// 申請がない場合 TotalDays は nil です。
type VacationSummaryRow struct {
	ProjectName   string `json:"nombre_proyecto"`
	TotalRequests int64  `json:"total_solicitudes"`
	Approved      int64  `json:"aprobadas"`
	Pending       int64  `json:"pendientes"`
	TotalDays     *int64 `json:"total_dias"`
}

// Tables は TablesStatus が確認するテーブルです。
var Tables = []string{"proyectos", "cargos", "ciudades", "funcionarios", "marcaciones", "vacaciones", "configuraciones"}

// TableStatus は 1 テーブル分の存在確認と件数です。テーブルが無い場合 Count は nil です。
type TableStatus struct {
	Exists bool   `json:"exists"`
	Count  *int64 `json:"count,omitempty"`
}

// Repository は集計クエリを提供します。
type Repository interface {
	// MonthlyAttendance は apellidos の昇順で返します。
	MonthlyAttendance(ctx context.Context, month, year int) ([]*MonthlyAttendanceRow, error)
	// VacationSummary は nombre_proyecto の昇順で返します。
	VacationSummary(ctx context.Context, year int) ([]*VacationSummaryRow, error)
	TableStatus(ctx context.Context, table string) (TableStatus, error)
}

// Service はレポートのユースケースです。
type Service struct {
	repo  Repository
	clock shared.Clock
	tx    shared.TransactionManager
}

// UseCase はレポートの公開インターフェースです。
type UseCase interface {
	MonthlyAttendance(ctx context.Context, in MonthlyInput) ([]*MonthlyAttendanceRow, error)
	VacationSummary(ctx context.Context, year int) ([]*VacationSummaryRow, error)
	ExportMonthlyAttendance(ctx context.Context, in MonthlyInput) (*bytes.Buffer, string, error)
	TablesStatus(ctx context.Context) (map[string]TableStatus, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock shared.Clock, tx shared.TransactionManager) *Service {
	if clock == nil {
		clock = shared.RealClock()
	}
	if tx == nil {
		tx = shared.NoopTransactionManager()
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// MonthlyInput は月次レポートの対象期間です。
type MonthlyInput struct {
	Month int
	Year  int
}

// MonthlyAttendance は指定月の打刻集計を返します。
func (s *Service) MonthlyAttendance(ctx context.Context, in MonthlyInput) ([]*MonthlyAttendanceRow, error) {
	if err := validatePeriod(in); err != nil {
		return nil, err
	}

	var rows []*MonthlyAttendanceRow
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.MonthlyAttendance(txCtx, in.Month, in.Year)
		if err != nil {
			return err
		}
		rows = result
		return nil
	}); err != nil {
		return nil, err
	}
	return rows, nil
}

// VacationSummary は指定年の vacacion 集計を返します。year が 0 の場合は現在の年です。
func (s *Service) VacationSummary(ctx context.Context, year int) ([]*VacationSummaryRow, error) {
	if year == 0 {
		year = s.clock.Now().Year()
	}
	if !validYear(year) {
		return nil, ErrInvalidYear
	}

	var rows []*VacationSummaryRow
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.VacationSummary(txCtx, year)
		if err != nil {
			return err
		}
		rows = result
		return nil
	}); err != nil {
		return nil, err
	}
	return rows, nil
}

// TablesStatus は Tables の各テーブルについて存在と件数を返します。
func (s *Service) TablesStatus(ctx context.Context) (map[string]TableStatus, error) {
	status := make(map[string]TableStatus, len(Tables))
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		for _, table := range Tables {
			st, err := s.repo.TableStatus(txCtx, table)
			if err != nil {
				return err
			}
			status[table] = st
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return status, nil
}

func validatePeriod(in MonthlyInput) error {
	if in.Month == 0 || in.Year == 0 {
		return ErrPeriodRequired
	}
	if in.Month < 1 || in.Month > 12 {
		return ErrInvalidMonth
	}
	if !validYear(in.Year) {
		return ErrInvalidYear
	}
	return nil
}

func validYear(year int) bool {
	return year >= 1900 && year <= 9999
}
