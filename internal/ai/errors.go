// README: Typed upstream failures for the language-model boundary.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrTimeout       = errors.New("upstream timeout")
	ErrQuotaExceeded = errors.New("upstream quota exceeded")
	ErrAuth          = errors.New("upstream authentication failed")
	ErrUnavailable   = errors.New("upstream unavailable")
)

// Kind classifies an upstream failure.
type Kind int

const (
	KindUnavailable Kind = iota
	KindTimeout
	KindQuotaExceeded
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindAuth:
		return "auth"
	default:
		return "unavailable"
	}
}

// UpstreamError is returned by every LLMProvider failure.
type UpstreamError struct {
	Kind     Kind
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrQuotaExceeded:
		return e.Kind == KindQuotaExceeded
	case ErrAuth:
		return e.Kind == KindAuth
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

// UserMessage is the text shown to the end user for this failure.
func (e *UpstreamError) UserMessage() string {
	switch e.Kind {
	case KindQuotaExceeded:
		return "API quota exceeded. Please try again later."
	case KindAuth:
		return "Invalid API key. Please check your configuration."
	case KindTimeout:
		return "Request timed out. For longer itineraries, try breaking your trip into smaller segments."
	default:
		return "Failed to generate itinerary. Please try again."
	}
}

// NewUpstreamError tags err with an explicit kind.
func NewUpstreamError(provider string, kind Kind, err error) *UpstreamError {
	return &UpstreamError{Kind: kind, Provider: provider, Err: err}
}

// Classify wraps a provider error into an UpstreamError using the typed errors
// of the SDKs (gRPC status, googleapi, go-openai) and context deadlines.
func Classify(provider string, err error) *UpstreamError {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue
	}
	return NewUpstreamError(provider, kindOf(err), err)
}

func kindOf(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Type == "insufficient_quota" {
			return KindQuotaExceeded
		}
		return kindOfHTTPStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindOfHTTPStatus(reqErr.HTTPStatusCode)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return kindOfHTTPStatus(gErr.Code)
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.DeadlineExceeded:
			return KindTimeout
		case codes.ResourceExhausted:
			return KindQuotaExceeded
		case codes.Unauthenticated, codes.PermissionDenied:
			return KindAuth
		}
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindUnavailable
}

func kindOfHTTPStatus(code int) Kind {
	switch code {
	case http.StatusTooManyRequests:
		return KindQuotaExceeded
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return KindTimeout
	default:
		return KindUnavailable
	}
}
