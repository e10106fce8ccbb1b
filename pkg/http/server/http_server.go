package server

import (
	"context"
	"errors"
	"execdash/pkg/client"
	"execdash/pkg/config"
	"execdash/pkg/constants"
	"execdash/pkg/http/server/controllers"
	"execdash/pkg/http/server/middlewares"
	"execdash/pkg/service/provider"
	"execdash/pkg/service/session"
	"execdash/pkg/service/table"
	"execdash/pkg/utils"
	"fmt"
	httpLogger "github.com/go-http-utils/logger"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/unrolled/secure"
	"net/http"
	"os"
	"time"
)

// NewRouter wires the dashboard routes. Every route except the healthcheck runs inside a session.
func NewRouter(logger hclog.Logger, sessionStore session.Store) *mux.Router {
	router := mux.NewRouter()

	// Security middleware
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
	})

	// Initialize controllers
	dashboardController := controllers.NewDashboardController(logger)
	filtersController := controllers.NewFiltersController(logger, sessionStore)
	healthCheckController := controllers.NewHealthCheckController(logger, sessionStore)

	middleware := middlewares.NewMiddlewareHandler(logger, sessionStore)

	router.Use(secureMiddleware.Handler)
	router.Use(middleware.ContextMiddleware)

	// Healthcheck Endpoint
	router.HandleFunc("/healthcheck", healthCheckController.HealthCheck).Methods(http.MethodGet)

	dashboard := router.NewRoute().Subrouter()
	dashboard.Use(middleware.SessionMiddleware)

	// Dashboard
	dashboard.HandleFunc("/", dashboardController.Dashboard).Methods(http.MethodGet)
	dashboard.HandleFunc(fmt.Sprintf("%s/view", constants.APIV1Base), dashboardController.View).Methods(http.MethodGet)

	// Filters
	dashboard.HandleFunc("/filters/outcome", filtersController.SelectOutcome).Methods(http.MethodPost)
	dashboard.HandleFunc("/filters/outcome/clear", filtersController.ClearOutcome).Methods(http.MethodPost)
	dashboard.HandleFunc("/filters/relationship", filtersController.SelectRelationship).Methods(http.MethodPost)
	dashboard.HandleFunc("/filters/relationship/input", filtersController.SetFilterInput).Methods(http.MethodPost)

	// Sorting
	dashboard.HandleFunc("/sort/{column}", filtersController.ToggleSort).Methods(http.MethodPost)

	// Fetch lifecycle
	dashboard.HandleFunc("/executions/retry", filtersController.Retry).Methods(http.MethodPost)
	dashboard.HandleFunc("/session/delete", filtersController.DeleteSession).Methods(http.MethodPost)

	return router
}

// NewSessionStore builds the session store with one provider and table view per session
func NewSessionStore(ctx context.Context, logger hclog.Logger, configurations *config.DashboardConfigurations, dispatcher *utils.Dispatcher) (session.Store, error) {
	displayTime, err := utils.NewDisplayTime(configurations.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid display timezone %q: %w", configurations.DisplayTimezone, err)
	}

	executionsClient := client.NewExecutionsClient(logger, configurations)

	newView := func() table.TableView {
		return table.NewTableView(logger, provider.NewDataProvider(logger, executionsClient), displayTime)
	}

	idleTimeout := time.Duration(configurations.SessionIdleTimeoutSeconds) * time.Second
	return session.NewStore(ctx, logger, dispatcher, idleTimeout, int(configurations.MaxSessions), newView), nil
}

// Start this will start the http server and block until ctx is done or the listener fails
func Start(ctx context.Context, logger hclog.Logger, configurations *config.DashboardConfigurations) error {
	dispatcher := utils.NewDispatcher(ctx, logger, int64(configurations.MaxWorkers), int64(configurations.MaxQueue))
	dispatcher.Run()

	sessionStore, err := NewSessionStore(ctx, logger, configurations, dispatcher)
	if err != nil {
		return err
	}
	sessionStore.Start(ctx)

	router := NewRouter(logger, sessionStore)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%v", configurations.Port),
		Handler: httpLogger.Handler(router, os.Stderr, httpLogger.CombineLoggerType),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http-server", "error", err.Error())
		}
	}()

	logger.Info("server is running", "port", configurations.Port, "api", configurations.APIBaseURL)

	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start http-server: %w", err)
	}
	return nil
}
