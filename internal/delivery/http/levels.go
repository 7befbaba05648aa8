package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"intraday-levels/internal/dto"
	"intraday-levels/pkg/common"
)

func (h *HttpAPIHandler) SetupLevels(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/sessions", h.GetSessions)
		v1.GET("/levels/:symbol", h.GetLevels)
		v1.GET("/directive/:symbol", h.GetDirective)
		v1.GET("/briefing/:symbol", h.GetBriefing)
	}
}

func (h *HttpAPIHandler) GetSessions(c echo.Context) error {
	sessions, err := h.service.LevelService.ListSessions(c.Request().Context(), time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err.Error()))
	}
	return c.JSON(http.StatusOK, dto.NewOKResponse(sessions))
}

func (h *HttpAPIHandler) GetLevels(c echo.Context) error {
	var req dto.GetLevelsRequest
	if err := h.bind(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	}

	sc, levels, err := h.service.LevelService.GetLevels(c.Request().Context(), req.Symbol, req.Exchange, req.Session)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err.Error()))
	}

	return c.JSON(http.StatusOK, dto.NewOKResponse(dto.LevelsResponse{
		Symbol:    req.Symbol,
		Session:   sc,
		Levels:    levels,
		UpdatedAt: time.Now().Unix(),
	}))
}

func (h *HttpAPIHandler) GetDirective(c echo.Context) error {
	var req dto.GetDirectiveRequest
	if err := h.bind(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	}

	resp, err := h.service.DirectiveService.Evaluate(c.Request().Context(), req.Symbol, req.Exchange, req.Session)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err.Error()))
	}

	return c.JSON(http.StatusOK, dto.NewOKResponse(resp))
}

func (h *HttpAPIHandler) GetBriefing(c echo.Context) error {
	var req dto.GetDirectiveRequest
	if err := h.bind(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
	}

	resp, err := h.service.NarrativeService.Briefing(c.Request().Context(), req.Symbol, req.Exchange, req.Session)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err.Error()))
	}

	return c.JSON(http.StatusOK, dto.NewOKResponse(resp))
}

func (h *HttpAPIHandler) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}
	normalizeExchange(req)
	return nil
}

func normalizeExchange(req interface{}) {
	switch r := req.(type) {
	case *dto.GetLevelsRequest:
		if r.Exchange == "" {
			r.Exchange = common.EXCHANGE_BINANCE
		}
	case *dto.GetDirectiveRequest:
		if r.Exchange == "" {
			r.Exchange = common.EXCHANGE_BINANCE
		}
	}
}
