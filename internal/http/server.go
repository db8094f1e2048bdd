package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/silviacristinaa/tasks/internal/log"
	"github.com/silviacristinaa/tasks/pkg/models"
	"github.com/silviacristinaa/tasks/pkg/service"
	"github.com/silviacristinaa/tasks/pkg/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func StartServer(port string, svc *service.TaskService) error {
	log.GetLogger().Infof("Starting tasks server on :%s", port)
	return http.ListenAndServe(":"+port, NewHandler(svc))
}

// NewHandler registers the task routes on a fresh mux.
func NewHandler(svc *service.TaskService) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/tasks", TasksHandler(svc))
	mux.HandleFunc("/tasks/filters", TaskFiltersHandler(svc))
	mux.HandleFunc("/tasks/", TaskByIDHandler(svc))
	return withRequestID(mux)
}

// withRequestID tags every request with an id, echoed in the response header
// and in the request log line.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		log.GetLogger().Debugf("[%s] %s %s", requestID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Tasks server is running")
}

// TasksHandler serves GET /tasks (paginated list) and POST /tasks (create).
func TasksHandler(svc *service.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listTasksHTTP(w, r, svc)
		case http.MethodPost:
			createTaskHTTP(w, r, svc)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// TaskFiltersHandler serves GET /tasks/filters.
func TaskFiltersHandler(svc *service.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		searchTasksHTTP(w, r, svc)
	}
}

// TaskByIDHandler serves GET/PUT/PATCH/DELETE on /tasks/{id}.
func TaskByIDHandler(svc *service.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/tasks/"), 10, 64)
		if err != nil {
			writeError(w, &service.Error{Kind: service.KindInvalidInput, Message: "Invalid task id"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			getTaskHTTP(w, svc, id)
		case http.MethodPut:
			updateTaskHTTP(w, r, svc, id)
		case http.MethodPatch:
			updateTaskStatusHTTP(w, r, svc, id)
		case http.MethodDelete:
			deleteTaskHTTP(w, svc, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func listTasksHTTP(w http.ResponseWriter, r *http.Request, svc *service.TaskService) {
	page, ok := parsePageRequest(w, r)
	if !ok {
		return
	}
	result, err := svc.FindAll(page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(result))
}

func searchTasksHTTP(w http.ResponseWriter, r *http.Request, svc *service.TaskService) {
	page, ok := parsePageRequest(w, r)
	if !ok {
		return
	}
	filter, details := parseTaskFilter(r)
	if len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request", Errors: details})
		return
	}
	result, err := svc.FindByFilters(filter, page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(result))
}

func getTaskHTTP(w http.ResponseWriter, svc *service.TaskService, id int64) {
	task, err := svc.FindOneByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func createTaskHTTP(w http.ResponseWriter, r *http.Request, svc *service.TaskService) {
	task, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}
	created, err := svc.Create(r.Context(), task)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/tasks/%d", created.ID))
	w.WriteHeader(http.StatusCreated)
}

func updateTaskHTTP(w http.ResponseWriter, r *http.Request, svc *service.TaskService, id int64) {
	task, ok := decodeTaskRequest(w, r)
	if !ok {
		return
	}
	if err := svc.Update(r.Context(), id, task); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func updateTaskStatusHTTP(w http.ResponseWriter, r *http.Request, svc *service.TaskService, id int64) {
	var req taskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Malformed request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request", Errors: []string{"status must not be null"}})
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request", Errors: []string{"status: " + err.Error()}})
		return
	}
	if err := svc.UpdateStatus(id, status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func deleteTaskHTTP(w http.ResponseWriter, svc *service.TaskService, id int64) {
	if err := svc.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (models.Task, bool) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Malformed request body"})
		return models.Task{}, false
	}
	task, details := req.toTask()
	if len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request", Errors: details})
		return models.Task{}, false
	}
	return task, true
}

func parsePageRequest(w http.ResponseWriter, r *http.Request) (service.PageRequest, bool) {
	page := service.PageRequest{Page: 0, Size: defaultPageSize}
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request", Errors: []string{"page must be a non-negative integer"}})
			return service.PageRequest{}, false
		}
		page.Page = n
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request", Errors: []string{fmt.Sprintf("size must be between 1 and %d", maxPageSize)}})
			return service.PageRequest{}, false
		}
		page.Size = n
	}
	return page, true
}

// parseTaskFilter reads the optional filter query parameters, collecting one
// detail string per malformed value. The parameter names match the original
// API: initialDateStartDate/finalDateStartDate bound the task's start date,
// initialDateEndDate/finalDateEndDate bound its end date.
func parseTaskFilter(r *http.Request) (storage.TaskFilter, []string) {
	var filter storage.TaskFilter
	var details []string
	query := r.URL.Query()

	if raw := query.Get("keyword"); raw != "" {
		filter.Keyword = &raw
	}
	parseDateParam(query.Get("initialDateStartDate"), "initialDateStartDate", &filter.StartDateFrom, &details)
	parseDateParam(query.Get("finalDateStartDate"), "finalDateStartDate", &filter.StartDateTo, &details)
	parseDateParam(query.Get("initialDateEndDate"), "initialDateEndDate", &filter.EndDateFrom, &details)
	parseDateParam(query.Get("finalDateEndDate"), "finalDateEndDate", &filter.EndDateTo, &details)

	if raw := query.Get("priority"); raw != "" {
		priority, err := models.ParsePriority(raw)
		if err != nil {
			details = append(details, "priority: "+err.Error())
		} else {
			filter.Priority = &priority
		}
	}
	if raw := query.Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			details = append(details, "status: "+err.Error())
		} else {
			filter.Status = &status
		}
	}
	if raw := query.Get("employeeId"); raw != "" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			details = append(details, "employeeId must be an integer")
		} else {
			filter.EmployeeID = &employeeID
		}
	}
	return filter, details
}

func parseDateParam(raw, name string, dest **models.Date, details *[]string) {
	if raw == "" {
		return
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		*details = append(*details, name+": "+err.Error())
		return
	}
	*dest = &date
}

// writeError maps a domain failure onto a status code and the structured
// error body. Unknown errors become a sanitized 500.
func writeError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case service.KindInvalidInput:
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: svcErr.Message})
		case service.KindNotFound:
			writeJSON(w, http.StatusNotFound, errorResponse{Message: svcErr.Message})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: svcErr.Message})
		}
		return
	}
	log.GetLogger().Errorf("Unhandled error: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.GetLogger().Errorf("Failed to encode response: %v", err)
	}
}
