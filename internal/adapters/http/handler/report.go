package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/report"
	"github.com/ogurasousui/funcionarios-api/internal/core/setting"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler は /api/reportes、/api/configuraciones と /api/tables-status の HTTP 実装です。
type ReportHandler struct {
	reports  report.UseCase
	settings setting.UseCase
	logger   *zap.Logger
}

// NewReportHandler は ReportHandler を生成します。
func NewReportHandler(reports report.UseCase, settings setting.UseCase, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, settings: settings, logger: logger.Named("reporte")}
}

// Register はルートを登録します。
func (h *ReportHandler) Register(r gin.IRouter) {
	r.GET("/reportes/mensual", h.Monthly)
	r.GET("/reportes/mensual/export", h.ExportMonthly)
	r.GET("/reportes/vacaciones", h.VacationSummary)
	r.GET("/configuraciones", h.Settings)
	r.GET("/tables-status", h.TablesStatus)
}

type monthlyQuery struct {
	Month int `form:"mes"`
	Year  int `form:"anio"`
}

type yearQuery struct {
	Year int `form:"anio"`
}

type settingsQuery struct {
	Category string `form:"categoria"`
}

// Monthly は月次打刻集計を返します。
func (h *ReportHandler) Monthly(c *gin.Context) {
	var q monthlyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(report.EntityName, err))
		return
	}

	rows, err := h.reports.MonthlyAttendance(c.Request.Context(), report.MonthlyInput{Month: q.Month, Year: q.Year})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if rows == nil {
		rows = []*report.MonthlyAttendanceRow{}
	}

	c.JSON(http.StatusOK, rows)
}

// ExportMonthly は月次打刻集計を xlsx で返します。
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	var q monthlyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(report.EntityName, err))
		return
	}

	buf, filename, err := h.reports.ExportMonthlyAttendance(c.Request.Context(), report.MonthlyInput{Month: q.Month, Year: q.Year})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// VacationSummary は年次 vacacion 集計を返します。anio を省略した場合は現在の年です。
func (h *ReportHandler) VacationSummary(c *gin.Context) {
	var q yearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(report.EntityName, err))
		return
	}

	rows, err := h.reports.VacationSummary(c.Request.Context(), q.Year)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if rows == nil {
		rows = []*report.VacationSummaryRow{}
	}

	c.JSON(http.StatusOK, rows)
}

// Settings は configuraciones を返します。
func (h *ReportHandler) Settings(c *gin.Context) {
	var q settingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(report.EntityName, err))
		return
	}

	found, err := h.settings.ListSettings(c.Request.Context(), q.Category)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]setting.Record, 0, len(found))
	for _, s := range found {
		records = append(records, setting.NewRecord(s))
	}
	c.JSON(http.StatusOK, records)
}

// TablesStatus はテーブル名をキーに存在と件数を返します。
func (h *ReportHandler) TablesStatus(c *gin.Context) {
	status, err := h.reports.TablesStatus(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
