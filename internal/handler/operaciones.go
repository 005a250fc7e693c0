package handler

import (
	"net/http"

	"routevendor/internal/dto"
	"routevendor/internal/service"

	"github.com/gin-gonic/gin"
)

type OperacionesHandler struct{ svc service.DayOperationService }

func NewOperacionesHandler(svc service.DayOperationService) *OperacionesHandler {
	return &OperacionesHandler{svc: svc}
}

// Listar godoc
// @Summary      Narrativa de la jornada
// @Description  Lista las operaciones del día en orden de posición.
// @Tags         operaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.OperacionDiaResponse
// @Router       /v1/operaciones [get]
func (h *OperacionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FueraDeRuta godoc
// @Summary      Atender cliente fuera de ruta
// @Tags         operaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarClienteRequest true "Tienda"
// @Success      201  {object} dto.OperacionDiaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/operaciones/fuera-de-ruta [post]
func (h *OperacionesHandler) FueraDeRuta(c *gin.Context) {
	var req dto.RegistrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AttendOutOfRoute(c.Request.Context(), req.StoreID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// NuevoCliente godoc
// @Summary      Registrar cliente nuevo
// @Tags         operaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarClienteRequest true "Tienda"
// @Success      201  {object} dto.OperacionDiaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/operaciones/nuevo-cliente [post]
func (h *OperacionesHandler) NuevoCliente(c *gin.Context) {
	var req dto.RegistrarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterNewClient(c.Request.Context(), req.StoreID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
