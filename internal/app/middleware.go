package app

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klokku/finpulse/internal/rest"
	"github.com/klokku/finpulse/pkg/account"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router) {
	r.Use(requestLogging)
	r.Use(accountPropagation)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		log.WithFields(log.Fields{
			"requestId": requestId,
			"method":    req.Method,
			"path":      req.URL.Path,
			"status":    recorder.status,
			"duration":  time.Since(started).String(),
		}).Info("request handled")
	})
}

// accountPropagation puts the X-Account-Id header into the request context.
// Requests without the header pass through; services reject them.
func accountPropagation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		header := req.Header.Get(account.HeaderName)
		ctx := req.Context()
		if header != "" {
			accountId, err := strconv.Atoi(header)
			if err != nil || accountId <= 0 {
				log.Debugf("invalid account header: %q", header)
				rest.WriteError(w, http.StatusBadRequest, "Invalid account", "X-Account-Id must be a positive integer")
				return
			}
			ctx = account.WithId(ctx, accountId)
		}
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}
