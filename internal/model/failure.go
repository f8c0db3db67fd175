package model

import (
	"errors"
	"fmt"
)

// FailureKind классифицирует ошибку на границе клиента
type FailureKind string

const (
	ConfigError  FailureKind = "config_error"
	AuthError    FailureKind = "auth_error"
	NotFound     FailureKind = "not_found"
	NetworkError FailureKind = "network_error"
	DecodeError  FailureKind = "decode_error"
	Unknown      FailureKind = "unknown"
	InvalidInput FailureKind = "invalid_input"
)

// Failure - классифицированная ошибка обращения к внешнему API
type Failure struct {
	Kind      FailureKind `json:"kind"`
	Message   string      `json:"message"`
	RawStatus *int        `json:"raw_status,omitempty"`
	// DNS и Host имеют смысл только для NetworkError
	DNS  bool   `json:"dns,omitempty"`
	Host string `json:"host,omitempty"`
}

func (f *Failure) Error() string {
	if f.RawStatus != nil {
		return fmt.Sprintf("%s (%d): %s", f.Kind, *f.RawStatus, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure создает Failure без HTTP-статуса
func NewFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewStatusFailure создает Failure с HTTP-статусом
func NewStatusFailure(kind FailureKind, status int, message string) *Failure {
	return &Failure{Kind: kind, Message: message, RawStatus: &status}
}

// AsFailure приводит любую ошибку к Failure. Неклассифицированные ошибки становятся Unknown.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Kind: Unknown, Message: err.Error()}
}
