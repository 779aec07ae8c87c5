package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"go.uber.org/zap"
)

// CatalogHandler は cargos / proyectos / ciudades の HTTP 実装です。
type CatalogHandler struct {
	positions position.UseCase
	projects  project.UseCase
	cities    city.UseCase
	logger    *zap.Logger
}

// NewCatalogHandler は CatalogHandler を生成します。
func NewCatalogHandler(positions position.UseCase, projects project.UseCase, cities city.UseCase, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{positions: positions, projects: projects, cities: cities, logger: logger.Named("catalogo")}
}

// Register はルートを登録します。
func (h *CatalogHandler) Register(r gin.IRouter) {
	r.GET("/cargos", h.ListPositions)
	r.POST("/cargos", h.CreatePosition)
	r.GET("/cargos/:id", h.GetPosition)

	r.GET("/proyectos", h.ListProjects)
	r.POST("/proyectos", h.CreateProject)
	r.GET("/proyectos/:id", h.GetProject)

	r.GET("/ciudades", h.ListCities)
	r.POST("/ciudades", h.CreateCity)
	r.GET("/ciudades/:id", h.GetCity)
}

type createPositionRequest struct {
	Code        string   `json:"codigo_cargo" binding:"required"`
	Name        string   `json:"nombre_cargo" binding:"required"`
	Level       *int     `json:"nivel"`
	BaseSalary  *float64 `json:"salario_base"`
	Description *string  `json:"descripcion"`
}

// CreatePosition は cargo を作成します。
func (h *CatalogHandler) CreatePosition(c *gin.Context) {
	var req createPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(position.EntityName, err))
		return
	}

	created, err := h.positions.CreatePosition(c.Request.Context(), position.CreatePositionInput{
		Code:        req.Code,
		Name:        req.Name,
		Level:       req.Level,
		BaseSalary:  req.BaseSalary,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, position.NewRecord(created))
}

// GetPosition は ID で cargo を取得します。
func (h *CatalogHandler) GetPosition(c *gin.Context) {
	id, err := pathID(c, position.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.positions.GetPosition(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, position.NewRecord(found))
}

// ListPositions は cargo の一覧を返します。
func (h *CatalogHandler) ListPositions(c *gin.Context) {
	found, err := h.positions.ListPositions(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]position.Record, 0, len(found))
	for _, p := range found {
		records = append(records, position.NewRecord(p))
	}
	c.JSON(http.StatusOK, records)
}

type createProjectRequest struct {
	Code        string   `json:"codigo_proyecto" binding:"required"`
	Name        string   `json:"nombre_proyecto" binding:"required"`
	Description *string  `json:"descripcion"`
	Budget      *float64 `json:"presupuesto"`
	StartDate   *string  `json:"fecha_inicio"`
	EndDate     *string  `json:"fecha_fin"`
	Status      string   `json:"estado"`
}

type listProjectsQuery struct {
	Status string `form:"estado"`
}

// CreateProject は proyecto を作成します。
func (h *CatalogHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(project.EntityName, err))
		return
	}

	start, err := parseDate(project.EntityName, "fecha_inicio", req.StartDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	end, err := parseDate(project.EntityName, "fecha_fin", req.EndDate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	created, err := h.projects.CreateProject(c.Request.Context(), project.CreateProjectInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		StartDate:   start,
		EndDate:     end,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, project.NewRecord(created))
}

// GetProject は ID で proyecto を取得します。
func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, err := pathID(c, project.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.projects.GetProject(c.Request.Context(), project.GetProjectInput{ID: id})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, project.NewRecord(found))
}

// ListProjects は proyecto の一覧を返します。
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	var q listProjectsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, h.logger, bindingError(project.EntityName, err))
		return
	}

	var in project.ListProjectsInput
	if q.Status != "" {
		status := project.Status(q.Status)
		in.Status = &status
	}

	found, err := h.projects.ListProjects(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]project.Record, 0, len(found))
	for _, p := range found {
		records = append(records, project.NewRecord(p))
	}
	c.JSON(http.StatusOK, records)
}

type createCityRequest struct {
	Name       string  `json:"nombre_ciudad" binding:"required"`
	PostalCode *string `json:"codigo_postal"`
	Province   *string `json:"provincia"`
	Country    *string `json:"pais"`
}

// CreateCity は ciudad を作成します。
func (h *CatalogHandler) CreateCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(city.EntityName, err))
		return
	}

	created, err := h.cities.CreateCity(c.Request.Context(), city.CreateCityInput{
		Name:       req.Name,
		PostalCode: req.PostalCode,
		Province:   req.Province,
		Country:    req.Country,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, city.NewRecord(created))
}

// GetCity は ID で ciudad を取得します。
func (h *CatalogHandler) GetCity(c *gin.Context) {
	id, err := pathID(c, city.ErrInvalidID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	found, err := h.cities.GetCity(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, city.NewRecord(found))
}

// ListCities は ciudad の一覧を返します。
func (h *CatalogHandler) ListCities(c *gin.Context) {
	found, err := h.cities.ListCities(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	records := make([]city.Record, 0, len(found))
	for _, item := range found {
		records = append(records, city.NewRecord(item))
	}
	c.JSON(http.StatusOK, records)
}
