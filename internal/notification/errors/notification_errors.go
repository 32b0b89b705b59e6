package notificationerrors

import (
	"net/http"

	"hris-dashboard/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrHubBusy = apperror.New(
		apperror.CodeServiceUnavailable,
		"notification hub is busy",
		http.StatusServiceUnavailable,
	)
)
