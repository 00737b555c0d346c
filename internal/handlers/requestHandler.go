package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/DoodleAPI/internal/adapter"
	"github.com/akolanti/DoodleAPI/internal/adapter/utils"
	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

// carries the parsed upload between the request handler and the job handler
type newJobData struct {
	id       string
	ownerId  string
	traceId  string
	fileName string
	fileType string
	fileKey  string
	fileURL  string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostJobHandler handles the uploading of a PDF or image to digest.
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data, stores it, and queues a digest job.
// @Tags         Jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF or image file to upload"
// @Success      202  {object}  api.InitJobResponse   "Accepted - poll the status URL"
// @Failure      400  {object}  api.JobStatusResponse "Bad Request - missing file or unsupported type"
// @Failure      503  {object}  api.JobStatusResponse "Service Unavailable - storage or queue error"
// @Router       /jobs [post]
func PostJobHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		err := r.ParseMultipartForm(config.MaxUploadBytes)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("file")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		fileType := fileMetadata.Header.Get("Content-Type")
		if !isSupportedFileType(fileType) {
			logRH.Warn("Unsupported upload type", "type", fileType, "file", fileMetadata.Filename)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Unsupported file type - upload a PDF or image")
			return
		}

		data, err := io.ReadAll(fileReader)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not read file")
			return
		}

		ownerId := ownerFromContext(r)
		newJob := newJobData{
			id:       utils.GetNewUUID(),
			ownerId:  ownerId,
			traceId:  r.Context().Value(config.TRACE_ID_KEY).(string),
			fileName: fileMetadata.Filename,
			fileType: fileType,
		}
		newJob.fileKey = fmt.Sprintf("uploads/%s/%d-%s-%s", ownerId, time.Now().UnixNano(), newJob.id, sanitizeFileName(fileMetadata.Filename))

		url, err := storeUpload(r.Context(), newJob.fileKey, data, fileType)
		if err != nil {
			logRH.Error("Upload storage failed", "error", err)
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Storage error")
			return
		}
		newJob.fileURL = url

		if err := CreateQueuedJob(newJob); err != nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Could not queue job")
			return
		}

		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobStatusResponse "The current status of the job"
// @Failure      404  {object}  api.JobStatusResponse "Job not found"
// @Router       /jobs/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		//an unknown id and someone else's id look identical from outside
		if !isFound || result.OwnerId != ownerFromContext(r) {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(result))
	}
}

func isSupportedFileType(fileType string) bool {
	return fileType == "application/pdf" || strings.HasPrefix(fileType, "image/")
}

func ownerFromContext(r *http.Request) string {
	if owner, ok := r.Context().Value(config.OWNER_ID_KEY).(string); ok && owner != "" {
		return owner
	}
	return config.DefaultOwnerId
}
