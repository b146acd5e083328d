package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectArticleLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"kiosk"},
			want: []string{"kiosk"},
		},
		{
			name: "direct article id first token",
			in:   []string{"kiosk", "art-abc123"},
			want: []string{"kiosk", "articles", "show", "art-abc123"},
		},
		{
			name: "direct article id after value flag",
			in:   []string{"kiosk", "--dir", "./tmp-test-lib", "art-abc123"},
			want: []string{"kiosk", "--dir", "./tmp-test-lib", "articles", "show", "art-abc123"},
		},
		{
			name: "direct article id after equals flag",
			in:   []string{"kiosk", "--dir=./tmp-test-lib", "art-abc123"},
			want: []string{"kiosk", "--dir=./tmp-test-lib", "articles", "show", "art-abc123"},
		},
		{
			name: "direct article id after bool flag",
			in:   []string{"kiosk", "--pretty", "art-abc123"},
			want: []string{"kiosk", "--pretty", "articles", "show", "art-abc123"},
		},
		{
			name: "direct article id after double dash",
			in:   []string{"kiosk", "--dir", "./tmp-test-lib", "--", "art-abc123"},
			want: []string{"kiosk", "--dir", "./tmp-test-lib", "--", "articles", "show", "art-abc123"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"kiosk", "articles", "show", "art-abc123"},
			want: []string{"kiosk", "articles", "show", "art-abc123"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"kiosk", "wat"},
			want: []string{"kiosk", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectArticleLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewrite(%v) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}
