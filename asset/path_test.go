package asset

import (
	"testing"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "models/box.glb", want: "models/box.glb"},
		{in: "assets/models/box.glb", want: "models/box.glb"},
		{in: "/home/dev/game/assets/audio/hum.wav", want: "audio/hum.wav"},
		{in: "./models/../box.glb", want: "box.glb"},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "../box.glb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := cleanPath(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("cleanPath(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("cleanPath(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("cleanPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
