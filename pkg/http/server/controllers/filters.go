package controllers

import (
	"execdash/pkg/constants/headers"
	"execdash/pkg/http/server/middlewares"
	"execdash/pkg/models"
	"execdash/pkg/service/session"
	"execdash/pkg/service/table"
	"execdash/pkg/utils"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"net/http"
)

type FiltersHTTPController interface {
	SelectOutcome(w http.ResponseWriter, r *http.Request)
	ClearOutcome(w http.ResponseWriter, r *http.Request)
	SelectRelationship(w http.ResponseWriter, r *http.Request)
	SetFilterInput(w http.ResponseWriter, r *http.Request)
	ToggleSort(w http.ResponseWriter, r *http.Request)
	Retry(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
}

type filtersController struct {
	logger       hclog.Logger
	sessionStore session.Store
}

func NewFiltersController(logger hclog.Logger, sessionStore session.Store) FiltersHTTPController {
	return &filtersController{
		logger:       logger.Named("filters-controller"),
		sessionStore: sessionStore,
	}
}

// redirectToDashboard answers a form post, the browser follows with a GET of the dashboard
func redirectToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (controller *filtersController) SelectOutcome(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	value, err := utils.ValidateFormValue("outcome", r)
	if err != nil {
		utils.SendHTTPError(w, utils.BadRequest(err))
		return
	}

	outcome, err := models.ParseOutcomeFilter(value)
	if err != nil {
		utils.SendHTTPError(w, utils.BadRequest(err))
		return
	}

	request := dashboardSession.View.SelectOutcome(dashboardSession.Context(), outcome)
	controller.sessionStore.Dispatch(dashboardSession, "select-outcome", request)

	redirectToDashboard(w, r)
}

func (controller *filtersController) ClearOutcome(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	request := dashboardSession.View.ClearOutcome(dashboardSession.Context())
	controller.sessionStore.Dispatch(dashboardSession, "clear-outcome", request)

	redirectToDashboard(w, r)
}

// SelectRelationship an empty field clears the relationship filter
func (controller *filtersController) SelectRelationship(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	value, err := utils.ValidateFormValue("field", r)
	if err != nil {
		utils.SendHTTPError(w, utils.BadRequest(err))
		return
	}

	field, err := models.ParseRelationshipField(value)
	if err != nil {
		utils.SendHTTPError(w, utils.BadRequest(err))
		return
	}

	request := dashboardSession.View.SelectRelationship(dashboardSession.Context(), field)
	controller.sessionStore.Dispatch(dashboardSession, "select-relationship", request)

	redirectToDashboard(w, r)
}

func (controller *filtersController) SetFilterInput(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	value, err := utils.ValidateFormValue("value", r)
	if err != nil {
		utils.SendHTTPError(w, utils.BadRequest(err))
		return
	}

	dashboardSession.View.SetFilterInput(value)

	redirectToDashboard(w, r)
}

func (controller *filtersController) ToggleSort(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	params := mux.Vars(r)
	if err := dashboardSession.View.ToggleSort(params["column"]); err != nil {
		utils.SendHTTPError(w, utils.BadRequest(err, table.ErrUnknownColumn))
		return
	}

	redirectToDashboard(w, r)
}

func (controller *filtersController) Retry(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	request := dashboardSession.View.Retry(dashboardSession.Context())
	controller.sessionStore.Dispatch(dashboardSession, "retry", request)

	redirectToDashboard(w, r)
}

// DeleteSession unmounts the dashboard and forgets the cookie, the next visit mounts a fresh one
func (controller *filtersController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	dashboardSession, sessionErr := middlewares.SessionFromRequest(r)
	if sessionErr != nil {
		utils.SendHTTPError(w, sessionErr)
		return
	}

	controller.sessionStore.Delete(dashboardSession.ID)
	http.SetCookie(w, &http.Cookie{
		Name:   headers.SessionCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	redirectToDashboard(w, r)
}
