package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStyle(t, dir, "default", "body { color: #00ff00 }")
	writeStyle(t, dir, "brand", "h1 { font-size: 40px }")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	embedded, err := NewEmbeddedLoader().LoadStyle("compact")
	if err != nil {
		t.Fatalf("embedded LoadStyle() error = %v", err)
	}

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "custom overrides embedded", style: "default", want: "body { color: #00ff00 }"},
		{name: "custom only", style: "brand", want: "h1 { font-size: 40px }"},
		{name: "falls back to embedded", style: "compact", want: embedded},
		{name: "missing everywhere", style: "ghost", wantErr: ErrStyleNotFound},
		{name: "invalid name not masked", style: "../x", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolver.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", tt.style, err)
			}
			if got != tt.want {
				t.Errorf("LoadStyle(%q) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}
