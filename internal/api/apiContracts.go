package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

// JobStatusResponse is the polling projection of a job. Internal fields like
// the storage key never leave the service.
type JobStatusResponse struct {
	Id              string            `json:"id" example:"job_cz109"`
	Status          string            `json:"status" example:"processing"`
	ProgressMessage string            `json:"progress_message,omitempty" example:"Summarizing sections..."`
	ResultLocator   string            `json:"result_locator,omitempty"`
	Error           *JobOutgoingError `json:"error,omitempty"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         *time.Time        `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
