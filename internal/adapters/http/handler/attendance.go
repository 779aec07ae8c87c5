package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"go.uber.org/zap"
)

// AttendanceHandler は /api/marcaciones の HTTP 実装です。
type AttendanceHandler struct {
	svc    attendance.UseCase
	logger *zap.Logger
}

// NewAttendanceHandler は AttendanceHandler を生成します。
func NewAttendanceHandler(svc attendance.UseCase, logger *zap.Logger) *AttendanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceHandler{svc: svc, logger: logger.Named("marcacion")}
}

// Register はルートを登録します。
func (h *AttendanceHandler) Register(r gin.IRouter) {
	r.GET("/marcaciones", h.List)
	r.POST("/marcaciones", h.Create)
	r.GET("/marcaciones/:id", h.Get)
}

type recordEventRequest struct {
	EmployeeID int64      `json:"funcionario_id" binding:"required,gt=0"`
	Type       string     `json:"tipo_marcacion" binding:"required"`
	Timestamp  *time.Time `json:"fecha_hora"`
	Device     string     `json:"dispositivo"`
	Location   *string    `json:"ubicacion"`
	IPAddress  *string    `json:"ip_address"`
	Notes      *string    `json:"observaciones"`
}

type listEventsQuery struct {
	Date       *string `form:"fecha"`
	EmployeeID *int64  `form:"funcionario_id"`
}

// Create は打刻を登録します。
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req recordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(attendance.EntityName, err))
		return
	}

	created, err := h.svc.RecordEvent(c.Request.Context(), attendance.RecordEventInput{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Timestamp:  req.Timestamp,
		Device:     req.Device,
		Location:   req.Location,
		IPAddress:  req.IPAddress,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, attendance.NewRecord(created))
}

// Get は ID で打刻を取得します。
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, err := pathID(c, attendance.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.svc.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, attendance.NewRecord(found))
}

// List は打刻の一覧を返します。
func (h *AttendanceHandler) List(c *gin.Context) {
	var q listEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(attendance.EntityName, err))
		return
	}

	date, err := parseDate(attendance.EntityName, "fecha", q.Date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.svc.ListEvents(c.Request.Context(), attendance.ListEventsInput{Date: date, EmployeeID: q.EmployeeID})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]attendance.Record, 0, len(found))
	for _, e := range found {
		records = append(records, attendance.NewRecord(e))
	}
	c.JSON(http.StatusOK, records)
}
