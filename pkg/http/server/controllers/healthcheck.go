package controllers

import (
	"execdash/pkg/service/session"
	"execdash/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"net/http"
)

type HealthCheckController interface {
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

type healthCheckController struct {
	sessionStore session.Store
	logger       hclog.Logger
}

type healthCheckRes struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func NewHealthCheckController(logger hclog.Logger, sessionStore session.Store) HealthCheckController {
	return &healthCheckController{
		sessionStore: sessionStore,
		logger:       logger.Named("healthcheck-controller"),
	}
}

func (controller *healthCheckController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	res := healthCheckRes{
		Status:   "ok",
		Sessions: controller.sessionStore.Count(),
	}
	utils.SendJSON(w, res, true, http.StatusOK, nil)
}
