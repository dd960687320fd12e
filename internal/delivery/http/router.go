package http

import (
	"net/http"

	"hospital-duty-scheduler/internal/delivery/http/handler"
	"hospital-duty-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	staffHandler         *handler.StaffHandler
	qualificationHandler *handler.QualificationHandler
	rosterHandler        *handler.RosterHandler
	matrixHandler        *handler.MatrixHandler
	schedulingHandler    *handler.SchedulingHandler
	analyticsHandler     *handler.AnalyticsHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
	cacheMiddleware      *middleware.CacheMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	staffHandler *handler.StaffHandler,
	qualificationHandler *handler.QualificationHandler,
	rosterHandler *handler.RosterHandler,
	matrixHandler *handler.MatrixHandler,
	schedulingHandler *handler.SchedulingHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		staffHandler:         staffHandler,
		qualificationHandler: qualificationHandler,
		rosterHandler:        rosterHandler,
		matrixHandler:        matrixHandler,
		schedulingHandler:    schedulingHandler,
		analyticsHandler:     analyticsHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		rateLimitMiddleware:  rateLimitMiddleware,
		cacheMiddleware:      cacheMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Published schedule, readable by both roles
	schedule := api.PathPrefix("/schedule").Subrouter()
	schedule.Use(r.authMiddleware.Authenticate)
	schedule.Use(middleware.RequireViewer)
	schedule.HandleFunc("/assignments", r.rosterHandler.GetAssignments).Methods(http.MethodGet)
	schedule.HandleFunc("/duty-slots", r.rosterHandler.GetDutySlots).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Staff management
	admin.HandleFunc("/staff", r.staffHandler.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/staff", r.staffHandler.GetAllStaff).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", r.staffHandler.GetStaff).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}/qualifications", r.staffHandler.AssignQualification).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{id}/qualifications", r.staffHandler.GetStaffQualifications).Methods(http.MethodGet)

	// Qualification catalog
	admin.HandleFunc("/qualifications", r.qualificationHandler.SaveQualification).Methods(http.MethodPost)
	admin.HandleFunc("/qualifications", r.qualificationHandler.GetAllQualifications).Methods(http.MethodGet)
	admin.HandleFunc("/qualifications/deactivate/{id}", r.qualificationHandler.DeactivateQualification).Methods(http.MethodPost)

	// Roster inputs
	admin.HandleFunc("/rooms", r.rosterHandler.CreateRoom).Methods(http.MethodPost)
	admin.HandleFunc("/rooms", r.rosterHandler.GetAllRooms).Methods(http.MethodGet)
	admin.HandleFunc("/duty-types", r.rosterHandler.GetAllDutyTypes).Methods(http.MethodGet)
	admin.HandleFunc("/duty-slots", r.rosterHandler.CreateDutySlot).Methods(http.MethodPost)
	admin.HandleFunc("/duty-slots", r.rosterHandler.GetDutySlots).Methods(http.MethodGet)
	admin.HandleFunc("/assignments", r.rosterHandler.GetAssignments).Methods(http.MethodGet)
	admin.HandleFunc("/assignments/pin", r.rosterHandler.PinAssignment).Methods(http.MethodPost)

	// Placement matrix, cached briefly
	admin.Handle("/placement-matrix",
		r.cacheMiddleware.Handle(http.HandlerFunc(r.matrixHandler.GetPlacementMatrix))).Methods(http.MethodGet)

	// Scheduling runs
	admin.HandleFunc("/scheduling/runs", r.schedulingHandler.RunScheduling).Methods(http.MethodPost)
	admin.HandleFunc("/scheduling/runs", r.schedulingHandler.GetAllRuns).Methods(http.MethodGet)
	admin.HandleFunc("/scheduling/runs/{id}", r.schedulingHandler.GetRun).Methods(http.MethodGet)

	// Analytics
	admin.HandleFunc("/analytics/users/{id}", r.analyticsHandler.GetUserAnalytics).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.rateLimitMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
