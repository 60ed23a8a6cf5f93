package backend

import (
	"errors"
	"testing"
)

func TestFormatErrorDetailShapes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain string detail",
			err:  &APIError{StatusCode: 401, Detail: "Invalid credentials"},
			want: "Invalid credentials",
		},
		{
			name: "validation entry list",
			err: &APIError{StatusCode: 422, Detail: []any{
				map[string]any{"loc": []any{"body", "email"}, "msg": "required"},
			}},
			want: "body.email: required",
		},
		{
			name: "multiple validation entries joined",
			err: &APIError{StatusCode: 422, Detail: []any{
				map[string]any{"loc": []any{"body", "email"}, "msg": "required"},
				map[string]any{"loc": []any{"body", "password"}, "msg": "too short"},
			}},
			want: "body.email: required, body.password: too short",
		},
		{
			name: "entry without loc keeps placeholder",
			err: &APIError{StatusCode: 422, Detail: []any{
				map[string]any{"msg": "required"},
			}},
			want: "field: required",
		},
		{
			name: "object detail with msg",
			err:  &APIError{StatusCode: 400, Detail: map[string]any{"msg": "x"}},
			want: "x",
		},
		{
			name: "connection failure",
			err:  &ConnectionError{Err: errors.New("dial tcp: connection refused")},
			want: ErrMsgConnection,
		},
		{
			name: "no usable detail",
			err:  &APIError{StatusCode: 500, Detail: nil},
			want: ErrMsgGeneric,
		},
		{
			name: "detail of unexpected type",
			err:  &APIError{StatusCode: 500, Detail: 42.0},
			want: ErrMsgGeneric,
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("refresh"), &ConnectionError{Err: errors.New("timeout")})
	if got := FormatError(wrapped); got != ErrMsgConnection {
		t.Errorf("FormatError(wrapped connection error) = %q, want %q", got, ErrMsgConnection)
	}
}

func TestNewAPIErrorNonJSONBody(t *testing.T) {
	err := newAPIError(502, []byte("Bad Gateway"))
	if got := FormatError(err); got != "Bad Gateway" {
		t.Errorf("FormatError() = %q, want raw body text", got)
	}
}
