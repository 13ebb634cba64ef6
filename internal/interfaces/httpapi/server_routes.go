package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

// registerSelfServiceActions exposes the writes a cook makes about themself.
func registerSelfServiceActions(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/actions/addAvailability", handler.AddAvailability)
	mux.HandleFunc("POST /v1/actions/removeAvailability", handler.RemoveAvailability)
	mux.HandleFunc("POST /v1/actions/uploadPreference", handler.UploadPreference)
}

func registerAdminActions(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAdminToken(adminToken, fn))
	}

	admin("POST /v1/actions/addPeriod", handler.AddPeriod)
	admin("POST /v1/actions/removePeriod", handler.RemovePeriod)
	admin("POST /v1/actions/setCurrentPeriod", handler.SetCurrentPeriod)
	admin("POST /v1/actions/togglePeriod", handler.TogglePeriod)
	admin("POST /v1/actions/openPeriod", handler.OpenPeriod)
	admin("POST /v1/actions/closePeriod", handler.ClosePeriod)
	admin("POST /v1/actions/addCookingDate", handler.AddCookingDate)
	admin("POST /v1/actions/removeCookingDate", handler.RemoveCookingDate)
	admin("POST /v1/actions/addCook", handler.AddCook)
	admin("POST /v1/actions/removeCook", handler.RemoveCook)
	admin("POST /v1/actions/reconcilePreference", handler.ReconcilePreference)
	admin("POST /v1/actions/assignLead", handler.AssignLead)
	admin("POST /v1/actions/assignAssistant", handler.AssignAssistant)
	admin("POST /v1/actions/removeAssignment", handler.RemoveAssignment)
	admin("POST /v1/actions/clearAssignments", handler.ClearAssignments)
	admin("POST /v1/actions/generateAssignments", handler.GenerateAssignments)
	admin("POST /v1/actions/generateAssignmentsWithLLM", handler.GenerateAssignmentsWithOracle)
	admin("POST /v1/actions/applySuggestion", handler.ApplySuggestion)
}

func registerQueries(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.HandleFunc("GET /v1/queries/_isRegistered", handler.IsRegistered)
	mux.HandleFunc("GET /v1/queries/_isOpen", handler.IsOpen)
	mux.HandleFunc("GET /v1/queries/_getCurrentPeriod", handler.GetCurrentPeriod)
	mux.HandleFunc("GET /v1/queries/_getPeriods", handler.GetPeriods)
	mux.HandleFunc("GET /v1/queries/_getCooks", handler.GetCooks)
	mux.HandleFunc("GET /v1/queries/_getCookingDates", handler.GetCookingDates)
	mux.HandleFunc("GET /v1/queries/_getAssignment", handler.GetAssignment)
	mux.HandleFunc("GET /v1/queries/_getAssignments", handler.GetAssignments)
	mux.HandleFunc("GET /v1/queries/_getAvailability", handler.GetAvailability)
	mux.HandleFunc("GET /v1/queries/_getPreference", handler.GetPreference)
	mux.HandleFunc("GET /v1/queries/_getWorkload", handler.GetWorkload)

	mux.Handle("GET /v1/queries/_audit", RequireAdminToken(adminToken, http.HandlerFunc(handler.Audit)))
	mux.Handle("GET /v1/queries/_renderPrompt", RequireAdminToken(adminToken, http.HandlerFunc(handler.RenderPrompt)))
}
