package handler

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/gate"
	"Chirp/internal/pkg/response"
	"Chirp/internal/pkg/util"

	"github.com/gin-gonic/gin"
)

// GatekeeperHandler 灰度开关运维接口
type GatekeeperHandler struct {
	gateKeeper *gate.GateKeeper
}

func NewGatekeeperHandler(gateKeeper *gate.GateKeeper) *GatekeeperHandler {
	return &GatekeeperHandler{
		gateKeeper: gateKeeper,
	}
}

func (s *GatekeeperHandler) GetGate(c *gin.Context) {
	name := c.Param("name")

	g, err := s.gateKeeper.Get(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.GateDTO{
		Name:        g.Name,
		Percent:     g.Percent,
		Description: g.Description,
	})
}

func (s *GatekeeperHandler) SetGate(c *gin.Context) {
	name := c.Param("name")

	var req dto.SetGateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.gateKeeper.SetPercent(ctx, name, req.Percent); err != nil {
		response.Error(c, err)
		return
	}
	if req.Description != nil {
		if err := s.gateKeeper.SetDescription(ctx, name, *req.Description); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.Success(c, nil)
}
