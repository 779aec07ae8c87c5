package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
	"go.uber.org/zap"
)

// VacationHandler は /api/vacaciones の HTTP 実装です。
type VacationHandler struct {
	svc    vacation.UseCase
	logger *zap.Logger
}

// NewVacationHandler は VacationHandler を生成します。
func NewVacationHandler(svc vacation.UseCase, logger *zap.Logger) *VacationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VacationHandler{svc: svc, logger: logger.Named("vacacion")}
}

// Register はルートを登録します。
func (h *VacationHandler) Register(r gin.IRouter) {
	r.GET("/vacaciones", h.List)
	r.POST("/vacaciones", h.Create)
	r.GET("/vacaciones/:id", h.Get)
}

type requestVacationRequest struct {
	EmployeeID int64   `json:"funcionario_id" binding:"required,gt=0"`
	StartDate  *string `json:"fecha_inicio" binding:"required"`
	EndDate    *string `json:"fecha_fin" binding:"required"`
	Days       *int    `json:"dias_totales"`
	ApprovedBy *int64  `json:"aprobado_por"`
	Status     string  `json:"estado"`
	Notes      *string `json:"observaciones"`
}

type listRequestsQuery struct {
	Status     string `form:"estado"`
	EmployeeID *int64 `form:"funcionario_id"`
}

// Create は vacacion 申請を登録します。
func (h *VacationHandler) Create(c *gin.Context) {
	var req requestVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(vacation.EntityName, err))
		return
	}

	start, err := parseDate(vacation.EntityName, "fecha_inicio", req.StartDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	end, err := parseDate(vacation.EntityName, "fecha_fin", req.EndDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.svc.RequestVacation(c.Request.Context(), vacation.RequestVacationInput{
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Days:       req.Days,
		ApprovedBy: req.ApprovedBy,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, vacation.NewRecord(created))
}

// Get は ID で申請を取得します。
func (h *VacationHandler) Get(c *gin.Context) {
	id, err := pathID(c, vacation.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.svc.GetRequest(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vacation.NewRecord(found))
}

// List は申請の一覧を返します。
func (h *VacationHandler) List(c *gin.Context) {
	var q listRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(vacation.EntityName, err))
		return
	}

	in := vacation.ListRequestsInput{EmployeeID: q.EmployeeID}
	if q.Status != "" {
		status := vacation.Status(q.Status)
		in.Status = &status
	}

	found, err := h.svc.ListRequests(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]vacation.Record, 0, len(found))
	for _, r := range found {
		records = append(records, vacation.NewRecord(r))
	}
	c.JSON(http.StatusOK, records)
}
