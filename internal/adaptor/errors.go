package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeError is the single place where service errors become HTTP statuses.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal("Internal server error", err)
	}

	fields := []zap.Field{zap.String("operation", operation), zap.Error(err)}
	if appErr.Kind == apperror.KindInternal {
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	log.Warn(operation+" rejected", append(fields, zap.String("kind", string(appErr.Kind)))...)

	kindData := map[string]string{"error": string(appErr.Kind)}
	switch appErr.Kind {
	case apperror.KindValidation:
		var data any = kindData
		if len(appErr.Fields) > 0 {
			data = appErr.Fields
		}
		utils.ResponseBadRequest(w, appErr.Message, data)
	case apperror.KindInsufficientStock, apperror.KindConflict:
		utils.ResponseBadRequest(w, appErr.Message, kindData)
	case apperror.KindUnauthorized, apperror.KindForbidden:
		utils.ResponseJSON(w, http.StatusForbidden, appErr.Message, kindData, nil)
	case apperror.KindNotFound:
		utils.ResponseNotFound(w, appErr.Message)
	case apperror.KindGatewayUnavailable:
		utils.ResponseJSON(w, http.StatusInternalServerError, appErr.Message, kindData, nil)
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"error": string(apperror.KindValidation)})
		return false
	}
	return true
}

// uuidParam reads a uuid path parameter; a malformed id cannot exist, so it is a 404.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseNotFound(w, "Resource not found")
		return uuid.Nil, false
	}
	return id, true
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:   utils.ParseInt(query.Get("page"), 1),
		Limit:  utils.ParseInt(query.Get("limit"), 10),
		Search: query.Get("search"),
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Authentication required")
	}
	return userID, ok
}
