package auth

import (
	"testing"
)

// TestTokenIsValid tests the TokenIsValid function
func TestTokenIsValid(t *testing.T) {
	tests := []struct {
		name   string
		header string
		secret string
		want   bool
	}{
		{
			name:   "Valid token",
			header: "Bearer s3cret-token",
			secret: "s3cret-token",
			want:   true,
		},
		{
			name:   "Wrong token",
			header: "Bearer wrong-token",
			secret: "s3cret-token",
			want:   false,
		},
		{
			name:   "Missing scheme",
			header: "s3cret-token",
			secret: "s3cret-token",
			want:   false,
		},
		{
			name:   "Lower case scheme",
			header: "bearer s3cret-token",
			secret: "s3cret-token",
			want:   false,
		},
		{
			name:   "Trailing whitespace",
			header: "Bearer s3cret-token ",
			secret: "s3cret-token",
			want:   false,
		},
		{
			name:   "Empty header",
			header: "",
			secret: "s3cret-token",
			want:   false,
		},
		{
			name:   "Empty secret",
			header: "Bearer ",
			secret: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenIsValid(tt.header, tt.secret); got != tt.want {
				t.Errorf("TokenIsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Note: BearerTokenAuth is tested through the upload routes in the
// handlers package, which check that rejected requests never reach the
// generator.
