package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/report"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

// ReportRepository は集計 SQL をそのまま実行します。
type ReportRepository struct {
	pool pgdb.Queryer
}

// NewReportRepository は ReportRepository を生成します。
func NewReportRepository(pool pgdb.Queryer) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// MonthlyAttendance は ACTIVO の funcionario ごとの月次打刻集計を返します。
func (r *ReportRepository) MonthlyAttendance(ctx context.Context, month, year int) ([]*report.MonthlyAttendanceRow, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT f.codigo_unico,
               CONCAT(f.apellidos, ' ', f.nombres) AS nombre_completo,
               c.nombre_cargo,
               COUNT(DISTINCT DATE(m.fecha_hora)) AS dias_trabajados,
               COUNT(CASE WHEN m.tipo_marcacion = 'ENTRADA' THEN 1 END) AS entradas,
               COUNT(CASE WHEN m.tipo_marcacion = 'SALIDA' THEN 1 END) AS salidas
          FROM funcionarios f
          LEFT JOIN cargos c ON c.cargo_id = f.cargo_id
          LEFT JOIN marcaciones m ON m.funcionario_id = f.funcionario_id
               AND EXTRACT(MONTH FROM m.fecha_hora) = $1
               AND EXTRACT(YEAR FROM m.fecha_hora) = $2
         WHERE f.estado = 'ACTIVO'
         GROUP BY f.funcionario_id, f.codigo_unico, f.apellidos, f.nombres, c.nombre_cargo
         ORDER BY f.apellidos
    `, month, year)
	if err != nil {
		return nil, translatePgError(err, report.EntityName, nil)
	}
	defer rows.Close()

	result := make([]*report.MonthlyAttendanceRow, 0)
	for rows.Next() {
		var row report.MonthlyAttendanceRow
		if err := rows.Scan(&row.Code, &row.FullName, &row.PositionName, &row.DaysWorked, &row.ClockIns, &row.ClockOuts); err != nil {
			return nil, translatePgError(err, report.EntityName, nil)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, report.EntityName, nil)
	}
	return result, nil
}

// VacationSummary は ACTIVO の proyecto ごとの年次 vacacion 集計を返します。
func (r *ReportRepository) VacationSummary(ctx context.Context, year int) ([]*report.VacationSummaryRow, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT p.nombre_proyecto,
               COUNT(v.vacacion_id) AS total_solicitudes,
               COALESCE(SUM(CASE WHEN v.estado = 'APROBADO' THEN 1 ELSE 0 END), 0) AS aprobadas,
               COALESCE(SUM(CASE WHEN v.estado = 'PENDIENTE' THEN 1 ELSE 0 END), 0) AS pendientes,
               SUM(v.dias_totales) AS total_dias
          FROM proyectos p
          LEFT JOIN funcionarios f ON f.proyecto_id = p.proyecto_id
          LEFT JOIN vacaciones v ON v.funcionario_id = f.funcionario_id
               AND EXTRACT(YEAR FROM v.fecha_inicio) = $1
         WHERE p.estado = 'ACTIVO'
         GROUP BY p.proyecto_id, p.nombre_proyecto
         ORDER BY p.nombre_proyecto
    `, year)
	if err != nil {
		return nil, translatePgError(err, report.EntityName, nil)
	}
	defer rows.Close()

	result := make([]*report.VacationSummaryRow, 0)
	for rows.Next() {
		var row report.VacationSummaryRow
		if err := rows.Scan(&row.ProjectName, &row.TotalRequests, &row.Approved, &row.Pending, &row.TotalDays); err != nil {
			return nil, translatePgError(err, report.EntityName, nil)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, report.EntityName, nil)
	}
	return result, nil
}

// TableStatus は to_regclass でテーブルの有無を確認し、存在すれば件数を数えます。
func (r *ReportRepository) TableStatus(ctx context.Context, table string) (report.TableStatus, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, table).Scan(&exists); err != nil {
		return report.TableStatus{}, translatePgError(err, report.EntityName, nil)
	}
	if !exists {
		return report.TableStatus{}, nil
	}

	var count int64
	if err := exec.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&count); err != nil {
		return report.TableStatus{}, translatePgError(err, report.EntityName, nil)
	}
	return report.TableStatus{Exists: true, Count: &count}, nil
}
