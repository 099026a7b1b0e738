package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageRef(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"", false},
		{"http", false},
		{"png", false},
		{".png", false},
		{"/png", false},
		{"test.png", false},
		{"/test.png", false},
		{"http://test.exe", false},
		{"https://test.exe", false},
		{"ftp://example.com/a.png", false},
		{"https://example.com/", false},
		{"https://example.com/image.webp", false},
		{"http://localhost/test.png", true},
		{"https://www.example.com/img/a.jpg", true},
		{"https://example.com/a.jpeg?w=200", true},
		{"https://example.com/a.GIF", true},
		{"https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := ValidateImageRef(tt.in)
			if tt.valid {
				assert.NoError(t, err)
				assert.NotNil(t, u)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidImageReference)
		})
	}
}
