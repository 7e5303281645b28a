package embed

import (
	"errors"
	"testing"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		scopes  []Scope
		want    string
		wantErr bool
	}{
		{
			name:   "simple substitution",
			input:  "prefix=@(prefix)",
			scopes: []Scope{{"prefix": "/usr/local"}},
			want:   "prefix=/usr/local",
		},
		{
			name:   "case insensitive lookup",
			input:  "@(Source_Dir)/build",
			scopes: []Scope{{"source_dir": "/chariot/source"}},
			want:   "/chariot/source/build",
		},
		{
			name:   "earlier scope wins",
			input:  "@(name)",
			scopes: []Scope{{"name": "stage"}, {"name": "recipe"}},
			want:   "stage",
		},
		{
			name:   "optional unknown splices empty",
			input:  "x@(missing?)y",
			scopes: []Scope{{}},
			want:   "xy",
		},
		{
			name:    "required unknown errors",
			input:   "@(missing)",
			scopes:  []Scope{{}},
			wantErr: true,
		},
		{
			name:   "empty reference left untouched",
			input:  "a@()b",
			scopes: []Scope{{}},
			want:   "a@()b",
		},
		{
			name:   "literal at not followed by paren",
			input:  "user@host",
			scopes: []Scope{{}},
			want:   "user@host",
		},
		{
			name:   "unterminated reference copied verbatim",
			input:  "broken @(oops",
			scopes: []Scope{{}},
			want:   "broken @(oops",
		},
		{
			name:   "multiple references",
			input:  "@(a)-@(b)",
			scopes: []Scope{{"a": "1", "b": "2"}},
			want:   "1-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input, tt.scopes...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrUnknownVariable) {
					t.Fatalf("expected ErrUnknownVariable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved("Source_Dir") {
		t.Fatal("expected source_dir to be reserved, case-insensitively")
	}
	if !IsReserved("prefix") {
		t.Fatal("expected prefix to be reserved")
	}
	if !IsReserved("thread_count") {
		t.Fatal("expected thread_count to be reserved")
	}
	if !IsReserved("sysroot_dir") {
		t.Fatal("expected sysroot_dir to be reserved")
	}
	if IsReserved("optimization_level") {
		t.Fatal("did not expect an arbitrary name to be reserved")
	}
}
