package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackzampolin/distanbol/internal/enhance"
	"github.com/jackzampolin/distanbol/internal/source"
	"github.com/jackzampolin/distanbol/internal/stanbol"
)

// Messages shown to users. They are part of the public contract of the
// convert endpoints.
const (
	msgThresholdOutOfRange = "Confidence(double) must be between 0 and 1"
	msgMalformedJSON       = "Given json file is not valid."
	msgInvalidOutput       = "The given Stanbol output is not valid."
	msgNoEntities          = "There are no entities above the given threshold: %s"
	msgTimeout             = "The request to the URL provided exceeded the timeout: %s"
	msgMissingInput        = "No input was given. Provide text, Stanbol JSON or a URL."
	msgInvalidURL          = "The given URL: '%s' is not valid."
	msgMissingContentType  = "The given URL: '%s' doesn't have a content-type field in its response headers. Distanbol expects either an text/plain for fulltext or an application/json for stanbol output as the Content-Type."
	msgUnsupportedType     = "The given URL: '%s' doesn't point to a text, json or jsonld file. Distanbol expects either an text/plain for fulltext or an application/json for stanbol output as the Content-Type."
	msgUpstreamStatus      = "The given URL: '%s' could not be retrieved: %v"
	msgTooLarge            = "The given URL: '%s' returned a document that is too large."
	msgEnhancerTooLarge    = "The Stanbol enhancer returned a response that is too large."
	msgInternal            = "Something went wrong."
)

// errMissingInput is returned when a request names nothing to convert.
var errMissingInput = errors.New("no input given")

// failure describes the request an error came from, for messages that echo it.
type failure struct {
	Threshold      float64
	URL            string
	FetchTimeout   time.Duration
	EnhanceTimeout time.Duration
}

// convertStatus maps a conversion error to an HTTP status and user message.
// The boolean is false for errors that should be logged as server faults.
func convertStatus(err error, f failure) (int, string, bool) {
	var noEntities *enhance.NoEntitiesAboveThresholdError
	switch {
	case errors.Is(err, errMissingInput):
		return http.StatusBadRequest, msgMissingInput, true
	case errors.Is(err, enhance.ErrThresholdOutOfRange):
		return http.StatusBadRequest, msgThresholdOutOfRange, true
	case errors.As(err, &noEntities):
		return http.StatusBadRequest, fmt.Sprintf(msgNoEntities, formatThreshold(noEntities.Threshold)), true
	case errors.Is(err, enhance.ErrMalformedJSON):
		return http.StatusBadRequest, msgMalformedJSON, true
	case errors.Is(err, enhance.ErrInvalidPayload), errors.Is(err, enhance.ErrUnrecognizedEnhancementType):
		return http.StatusBadRequest, msgInvalidOutput, true
	case errors.Is(err, source.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, fmt.Sprintf(msgTimeout, f.FetchTimeout), true
	case errors.Is(err, stanbol.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, fmt.Sprintf(msgTimeout, f.EnhanceTimeout), true
	case errors.Is(err, source.ErrInvalidURL):
		return http.StatusBadRequest, fmt.Sprintf(msgInvalidURL, f.URL), true
	case errors.Is(err, source.ErrMissingContentType):
		return http.StatusBadRequest, fmt.Sprintf(msgMissingContentType, f.URL), true
	case errors.Is(err, source.ErrUnsupportedContentType):
		return http.StatusBadRequest, fmt.Sprintf(msgUnsupportedType, f.URL), true
	case errors.Is(err, source.ErrUpstreamStatus):
		return http.StatusBadRequest, fmt.Sprintf(msgUpstreamStatus, f.URL, err), true
	case errors.Is(err, source.ErrTooLarge):
		return http.StatusBadRequest, fmt.Sprintf(msgTooLarge, f.URL), true
	case errors.Is(err, stanbol.ErrTooLarge):
		return http.StatusBadGateway, msgEnhancerTooLarge, false
	default:
		return http.StatusInternalServerError, msgInternal, false
	}
}

// formatThreshold prints a threshold with a decimal point, so 1 reads "1.0".
func formatThreshold(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
