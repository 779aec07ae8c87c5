package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"go.uber.org/zap"
)

// EmployeeHandler は /api/funcionarios の HTTP 実装です。
type EmployeeHandler struct {
	svc    employee.UseCase
	logger *zap.Logger
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase, logger *zap.Logger) *EmployeeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeHandler{svc: svc, logger: logger.Named("funcionario")}
}

type createEmployeeRequest struct {
	Code                 string  `json:"codigo_unico" binding:"required"`
	IdentificationType   string  `json:"tipo_identificacion"`
	IdentificationNumber string  `json:"numero_identificacion" binding:"required"`
	LastName             string  `json:"apellidos" binding:"required"`
	FirstName            string  `json:"nombres" binding:"required"`
	Email                string  `json:"correo" binding:"required"`
	Phone                *string `json:"telefono"`
	HiredAt              *string `json:"fecha_ingreso" binding:"required"`
	TerminatedAt         *string `json:"fecha_salida"`
	Status               string  `json:"estado"`
	PositionID           *int64  `json:"cargo_id" binding:"omitempty,gt=0"`
	ProjectID            *int64  `json:"proyecto_id" binding:"omitempty,gt=0"`
	CityID               *int64  `json:"ciudad_id" binding:"omitempty,gt=0"`
	Gender               *string `json:"genero"`
	MaritalStatus        *string `json:"estado_civil"`
	BirthDate            *string `json:"fecha_nacimiento"`
	Address              *string `json:"direccion"`
	ContractType         string  `json:"tipo_contrato"`
	Schedule             string  `json:"jornada"`
	BiometricCode        *string `json:"codigo_biometrico"`
}

type listEmployeesQuery struct {
	Status    string `form:"estado"`
	ProjectID *int64 `form:"proyecto_id"`
}

type deleteEmployeeResponse struct {
	Message string          `json:"message"`
	Data    employee.Record `json:"data"`
}

// Register はルートを登録します。
func (h *EmployeeHandler) Register(r gin.IRouter) {
	g := r.Group("/funcionarios")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create は funcionario を作成します。
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(employee.EntityName, err))
		return
	}

	in, err := req.toInput(actor(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.svc.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, employee.NewRecord(created))
}

// Get は ID で funcionario を取得します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := pathID(c, employee.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.svc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{ID: id})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, employee.NewRecord(found))
}

// List は funcionario の一覧を返します。
func (h *EmployeeHandler) List(c *gin.Context) {
	var q listEmployeesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(employee.EntityName, err))
		return
	}

	in := employee.ListEmployeesInput{ProjectID: q.ProjectID}
	if q.Status != "" {
		status := employee.Status(q.Status)
		in.Status = &status
	}

	found, err := h.svc.ListEmployees(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]employee.Record, 0, len(found))
	for _, e := range found {
		records = append(records, employee.NewRecord(e))
	}
	c.JSON(http.StatusOK, records)
}

// Update は本文に含まれる列のみを更新します。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := pathID(c, employee.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		writeError(c, h.logger, bindingError(employee.EntityName, err))
		return
	}

	updated, err := h.svc.UpdateEmployee(c.Request.Context(), employee.UpdateEmployeeInput{
		ID:     id,
		Fields: fields,
		Actor:  actor(c),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, employee.NewRecord(updated))
}

// Delete は funcionario を INACTIVO にします。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := pathID(c, employee.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	deleted, err := h.svc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{ID: id, Actor: actor(c)})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, deleteEmployeeResponse{
		Message: "Funcionario marcado como inactivo",
		Data:    employee.NewRecord(deleted),
	})
}

func (r createEmployeeRequest) toInput(actor string) (employee.CreateEmployeeInput, error) {
	hired, err := parseDate(employee.EntityName, string(employee.FieldHiredAt), r.HiredAt)
	if err != nil {
		return employee.CreateEmployeeInput{}, err
	}
	terminated, err := parseDate(employee.EntityName, string(employee.FieldTerminatedAt), r.TerminatedAt)
	if err != nil {
		return employee.CreateEmployeeInput{}, err
	}
	birth, err := parseDate(employee.EntityName, string(employee.FieldBirthDate), r.BirthDate)
	if err != nil {
		return employee.CreateEmployeeInput{}, err
	}

	return employee.CreateEmployeeInput{
		Code:                 r.Code,
		IdentificationType:   r.IdentificationType,
		IdentificationNumber: r.IdentificationNumber,
		LastName:             r.LastName,
		FirstName:            r.FirstName,
		Email:                r.Email,
		Phone:                r.Phone,
		HiredAt:              hired,
		TerminatedAt:         terminated,
		Status:               r.Status,
		PositionID:           r.PositionID,
		ProjectID:            r.ProjectID,
		CityID:               r.CityID,
		Gender:               r.Gender,
		MaritalStatus:        r.MaritalStatus,
		BirthDate:            birth,
		Address:              r.Address,
		ContractType:         r.ContractType,
		Schedule:             r.Schedule,
		BiometricCode:        r.BiometricCode,
		Actor:                actor,
	}, nil
}
