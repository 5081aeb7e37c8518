package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-server/pkg/utils"
)

func TestIsUrl(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://lastfm.freetls.fastly.net/i/u/64s/abc.png", true},
		{"http://example.com", true},
		{"", false},
		{"javascript:alert(1)", false},
		{"ftp://example.com/file", false},
		{"https://", false},
		{"/relative/path.png", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, utils.IsUrl(tc.in))
		})
	}
}
