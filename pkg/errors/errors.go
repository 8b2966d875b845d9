package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeQueryInvalid   ErrCode = "QUERY_INVALID"
	ErrCodeModelUnknown   ErrCode = "MODEL_UNKNOWN"
	ErrCodeModelInvalid   ErrCode = "MODEL_INVALID"
	ErrCodeConfigInvalid  ErrCode = "CONFIG_INVALID"
	ErrCodeStorageFailure ErrCode = "STORAGE_FAILURE"
	ErrCodeUnsupported    ErrCode = "UNSUPPORTED"
	ErrCodeInternal       ErrCode = "INTERNAL"
)

type ErrCode string

type ErrorInfo struct {
	HttpStatus int     `json:"-"`
	Code       ErrCode `json:"code"`
	Message    string  `json:"message"`
	Detail     string  `json:"detail"`
}

func (e ErrorInfo) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func IsErrCode(err error, code ErrCode) bool {
	if err == nil {
		return false
	}
	info := ErrorInfo{}
	if errors.As(err, &info) {
		return info.Code == code
	}
	return false
}

func NewQueryInvalidError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: ErrCodeQueryInvalid, Message: msg}
}

func NewModelUnknownError(key string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusNotFound, Code: ErrCodeModelUnknown, Message: fmt.Sprintf("model: %s not found", key)}
}

func NewModelInvalidError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusInternalServerError, Code: ErrCodeModelInvalid, Message: err.Error()}
}

func NewConfigInvalidError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusBadRequest, Code: ErrCodeConfigInvalid, Message: msg}
}

func NewStorageFailureError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusInternalServerError, Code: ErrCodeStorageFailure, Message: err.Error()}
}

func NewUnsupportedError(msg string) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusNotImplemented, Code: ErrCodeUnsupported, Message: msg}
}

func NewInternalError(err error) ErrorInfo {
	return ErrorInfo{HttpStatus: http.StatusInternalServerError, Code: ErrCodeInternal, Message: err.Error()}
}
