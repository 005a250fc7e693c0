package handler

import (
	"net/http"

	"routevendor/internal/dto"
	"routevendor/internal/service"

	"github.com/gin-gonic/gin"
)

type InventarioHandler struct{ svc service.InventoryService }

func NewInventarioHandler(svc service.InventoryService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar operación de inventario
// @Description  Registra un inventario de inicio, reabastecimiento, devolución o cierre. Inicio y reabastecimiento cargan stock.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarInventarioRequest true "Operación y líneas"
// @Success      201  {object} dto.InventarioOperacionResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/inventario/operaciones [post]
func (h *InventarioHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar operaciones de inventario
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.InventarioOperacionResponse
// @Router       /v1/inventario/operaciones [get]
func (h *InventarioHandler) Listar(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener operación de inventario
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "ID de la operación"
// @Success      200  {object} dto.InventarioOperacionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/inventario/operaciones/{id} [get]
func (h *InventarioHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelable godoc
// @Summary      Consultar si la operación se puede cancelar
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "ID de la operación"
// @Success      200  {object} dto.CancelableResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/inventario/operaciones/{id}/cancelable [get]
func (h *InventarioHandler) Cancelable(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.svc.Cancellable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CancelableResponse{ID: id, Cancelable: ok})
}

// Cancelar godoc
// @Summary      Cancelar operación de inventario
// @Description  Un reabastecimiento cancelado descuenta su stock.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "ID de la operación"
// @Success      200  {object} dto.InventarioOperacionResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/inventario/operaciones/{id}/cancelar [post]
func (h *InventarioHandler) Cancelar(c *gin.Context) {
	resp, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SiguienteTipo godoc
// @Summary      Próximo tipo de inventario
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.SiguienteTipoResponse
// @Router       /v1/inventario/siguiente-tipo [get]
func (h *InventarioHandler) SiguienteTipo(c *gin.Context) {
	next, err := h.svc.NextType(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SiguienteTipoResponse{Tipo: string(next)})
}

// Stock godoc
// @Summary      Stock a bordo
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.StockResponse
// @Router       /v1/inventario/stock [get]
func (h *InventarioHandler) Stock(c *gin.Context) {
	resp, err := h.svc.Stock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
