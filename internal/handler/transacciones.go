package handler

import (
	"net/http"

	"routevendor/internal/dto"
	"routevendor/internal/service"

	"github.com/gin-gonic/gin"
)

type TransaccionesHandler struct{ svc service.RouteTransactionService }

func NewTransaccionesHandler(svc service.RouteTransactionService) *TransaccionesHandler {
	return &TransaccionesHandler{svc: svc}
}

// Registrar godoc
// @Summary      Registrar transacción en tienda
// @Description  Registra ventas, reposiciones y devoluciones de una tienda. Ventas y reposiciones descuentan stock.
// @Tags         transacciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarTransaccionRequest true "Detalle de la transacción"
// @Success      201  {object} dto.TransaccionResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/transacciones [post]
func (h *TransaccionesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarTransaccionRequest
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
// @Summary      Listar transacciones
// @Description  Filtra por tienda cuando se envía ?store=.
// @Tags         transacciones
// @Produce      json
// @Security     BearerAuth
// @Param        store query    string false "ID de la tienda"
// @Success      200   {array}  dto.TransaccionResponse
// @Router       /v1/transacciones [get]
func (h *TransaccionesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListByStore(c.Request.Context(), c.Query("store"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener transacción
// @Tags         transacciones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "ID de la transacción"
// @Success      200  {object} dto.TransaccionResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/transacciones/{id} [get]
func (h *TransaccionesHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary      Cancelar transacción
// @Description  Restaura el stock consumido por ventas y reposiciones.
// @Tags         transacciones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string true "ID de la transacción"
// @Success      200  {object} dto.TransaccionResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/transacciones/{id}/cancelar [post]
func (h *TransaccionesHandler) Cancelar(c *gin.Context) {
	resp, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
