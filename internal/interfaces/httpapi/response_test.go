package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/rhalemsc/ncaam-summarizer/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", fmt.Errorf("%w: missing", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"unauthorized", fmt.Errorf("%w: nope", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"dependency unavailable", fmt.Errorf("%w: breaker open", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"generation failed", fmt.Errorf("%w: model overloaded", usecase.ErrGenerationFailed), http.StatusBadGateway, "generationFailed"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapError(ctx, tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("unexpected reason: got=%s want=%s", mapped.Reason, tc.wantReason)
			}
		})
	}
}
