package middleware

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
)

func TestResultCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: "ok"},
		{name: "connect error", err: connect.NewError(connect.CodeNotFound, errors.New("missing")), want: "not_found"},
		{name: "wrapped connect error", err: fmt.Errorf("handler: %w", connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))), want: "invalid_argument"},
		{name: "plain error", err: errors.New("boom"), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resultCode(tt.err); got != tt.want {
				t.Errorf("resultCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
