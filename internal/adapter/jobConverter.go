package adapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/DoodleAPI/internal/api"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("jobs/%s", id), //pass "jobs/job.Id"
	}
}

func ToStatusResponse(job jobModel.Job) api.JobStatusResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error != "" {
		errorPtr = &api.JobOutgoingError{
			Code:    http.StatusUnprocessableEntity,
			Message: job.Error,
			Retry:   true,
		}
	}

	return api.JobStatusResponse{
		Id:              job.Id,
		Status:          string(job.Status),
		ProgressMessage: job.ProgressMessage,
		ResultLocator:   job.ResultLocator,
		Error:           errorPtr,
		StartTime:       job.CreatedTime,
		EndTime:         job.FinishedAt,
	}
}

func BadRequest(id string, error string, code int) api.JobStatusResponse {
	return api.JobStatusResponse{
		Id:        id,
		Status:    string(api.JobStatusError),
		StartTime: time.Time{},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
