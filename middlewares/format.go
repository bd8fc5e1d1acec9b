package middlewares

import (
	"GestionClinique/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// RespondError maps a business error to its HTTP status and writes the
// structured error body. Unclassified errors become 500 with a generic
// message so internals never leak.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	label := "Internal Server Error"
	message := "an unexpected error occurred"

	switch utils.KindOf(err) {
	case utils.KindNotFound:
		status, label, message = http.StatusNotFound, "Not Found", err.Error()
	case utils.KindConflict:
		status, label, message = http.StatusConflict, "Conflict", err.Error()
	case utils.KindInvalidState:
		status, label, message = http.StatusBadRequest, "Bad Request", err.Error()
	case utils.KindValidation:
		status, label, message = http.StatusBadRequest, "Bad Request", err.Error()
	default:
		log.Printf("HTTP %d - %s %s: %v", status, c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, ErrorBody{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// HttpError logs an error and writes the structured error body with an
// explicit status, for failures outside the business error taxonomy.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, ErrorBody{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}
