package serializer

import (
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger wires the package logger so handler-boundary failures are recorded
// next to the response that reports them.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKCount wraps a collection in a successful envelope with its length.
func OKCount(count int, data interface{}) Response {
	return Response{Success: true, Count: &count, Data: data}
}

// Err builds a failure envelope and logs the underlying error.
func Err(msg string, err error) Response {
	if err != nil {
		log.Sugar().Errorw(msg, "err", err)
	}
	return Response{Success: false, Error: msg}
}

// ParamErr reports missing or malformed request input.
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "invalid request parameters"
	}
	return Err(msg, err)
}

// NotFoundErr reports an absent resource or one not owned by the caller.
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "resource not found"
	}
	return Response{Success: false, Error: msg}
}

// AuthErr reports a failed authentication.
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "unauthorized"
	}
	return Response{Success: false, Error: msg}
}

// DBErr reports a storage failure.
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(msg, err)
}
