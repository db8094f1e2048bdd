package http

import (
	"github.com/silviacristinaa/tasks/pkg/models"
	"github.com/silviacristinaa/tasks/pkg/service"
)

// taskRequest is the create/update payload. Dates and enums arrive as
// strings and are validated before the workflow is invoked.
type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	EmployeeID  *int64 `json:"employeeId"`
}

// toTask checks the request shape and maps it onto a Task. It returns one
// detail string per violated field constraint.
func (r taskRequest) toTask() (models.Task, []string) {
	var details []string
	var task models.Task

	if r.Title == "" {
		details = append(details, "title must not be blank")
	} else if len(r.Title) > 100 {
		details = append(details, "title must not exceed 100 characters")
	}
	task.Title = r.Title
	task.Description = r.Description

	if r.StartDate == "" {
		details = append(details, "startDate must not be null")
	} else if startDate, err := models.ParseDate(r.StartDate); err != nil {
		details = append(details, "startDate: "+err.Error())
	} else {
		task.StartDate = startDate
	}

	if r.EndDate == "" {
		details = append(details, "endDate must not be null")
	} else if endDate, err := models.ParseDate(r.EndDate); err != nil {
		details = append(details, "endDate: "+err.Error())
	} else {
		task.EndDate = endDate
	}

	if r.Priority == "" {
		details = append(details, "priority must not be null")
	} else if priority, err := models.ParsePriority(r.Priority); err != nil {
		details = append(details, "priority: "+err.Error())
	} else {
		task.Priority = priority
	}

	if r.Status != "" {
		if status, err := models.ParseStatus(r.Status); err != nil {
			details = append(details, "status: "+err.Error())
		} else {
			task.Status = status
		}
	}

	if r.EmployeeID == nil {
		details = append(details, "employeeId must not be null")
	} else {
		task.EmployeeID = *r.EmployeeID
	}

	return task, details
}

// taskStatusRequest is the PATCH payload, mutating only the status.
type taskStatusRequest struct {
	Status string `json:"status"`
}

type pageResponse struct {
	Content       []models.Task `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int           `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
}

func newPageResponse(page service.TaskPage) pageResponse {
	content := page.Content
	if content == nil {
		content = []models.Task{}
	}
	return pageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
