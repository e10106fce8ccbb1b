package controllers

import (
	"bytes"
	"execdash/pkg/constants/headers"
	"execdash/pkg/http/server/middlewares"
	"execdash/pkg/utils"
	"github.com/hashicorp/go-hclog"
	"html/template"
	"net/http"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(tmplDashboard))

type DashboardHTTPController interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	View(w http.ResponseWriter, r *http.Request)
}

type dashboardController struct {
	logger hclog.Logger
}

func NewDashboardController(logger hclog.Logger) DashboardHTTPController {
	return &dashboardController{
		logger: logger.Named("dashboard-controller"),
	}
}

// Dashboard renders the page of the session, the loader refreshes itself until the fetch settles
func (controller *dashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	var body bytes.Buffer
	if err := dashboardTemplate.Execute(&body, dashboardSession.View.Render()); err != nil {
		controller.logger.Error("failed to render dashboard", "session", dashboardSession.ID, "error", err.Error())
		utils.SendHTTPError(w, utils.NewHTTPError(http.StatusInternalServerError, err))
		return
	}

	w.Header().Set(headers.ContentTypeHeader, headers.HTMLContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
}

// View returns the view model of the session as JSON
func (controller *dashboardController) View(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	utils.SendJSON(w, dashboardSession.View.Render(), true, http.StatusOK, nil)
}
