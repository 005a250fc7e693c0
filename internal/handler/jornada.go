package handler

import (
	"net/http"

	"routevendor/internal/dto"
	"routevendor/internal/service"

	"github.com/gin-gonic/gin"
)

type JornadaHandler struct{ svc service.WorkDayService }

func NewJornadaHandler(svc service.WorkDayService) *JornadaHandler {
	return &JornadaHandler{svc: svc}
}

// Iniciar godoc
// @Summary      Iniciar jornada
// @Description  Abre la jornada del vendedor y genera una visita programada por cada tienda de la ruta.
// @Tags         jornada
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.IniciarJornadaRequest true "Ruta y caja chica inicial"
// @Success      201  {object} dto.JornadaResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/jornada/iniciar [post]
func (h *JornadaHandler) Iniciar(c *gin.Context) {
	var req dto.IniciarJornadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Start(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Finalizar godoc
// @Summary      Finalizar jornada
// @Description  Cierra la jornada con la caja chica final y encola el reporte de cierre.
// @Tags         jornada
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FinalizarJornadaRequest true "Caja chica final"
// @Success      200  {object} dto.JornadaResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/jornada/finalizar [post]
func (h *JornadaHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarJornadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finish(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actual godoc
// @Summary      Jornada actual
// @Tags         jornada
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.JornadaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/jornada [get]
func (h *JornadaHandler) Actual(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reiniciar godoc
// @Summary      Reiniciar datos de jornada
// @Description  Borra la jornada, su narrativa, el stock y todas las operaciones. Solo supervisor.
// @Tags         jornada
// @Security     BearerAuth
// @Success      204
// @Router       /v1/jornada [delete]
func (h *JornadaHandler) Reiniciar(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
