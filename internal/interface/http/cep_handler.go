package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastroapp/cadastro-api/pkg/cep"
	"github.com/cadastroapp/cadastro-api/pkg/response"
)

type CEPHandler struct {
	CEP    *cep.Client
	Logger *logrus.Logger
}

func NewCEPHandler(client *cep.Client, logger *logrus.Logger) *CEPHandler {
	return &CEPHandler{CEP: client, Logger: logger}
}

// Lookup GET /api/cep/:cep — every failure cause (network, not-found,
// malformed code) collapses into one generic client error.
func (h *CEPHandler) Lookup(c *gin.Context) {
	addr, err := h.CEP.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("cep", c.Param("cep")).Debug("cep lookup failed")
		}
		response.Error[any](c, http.StatusBadRequest, "invalid or unknown cep", nil)
		return
	}
	response.Success(c, http.StatusOK, addr, "cep", nil)
}
