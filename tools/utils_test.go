package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGUID(t *testing.T) {
	raw := []byte{
		0x04, 0x03, 0x02, 0x01,
		0x06, 0x05,
		0x08, 0x07,
		0x09, 0x0a,
		0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	}
	assert.Equal(t, "01020304-0506-0708-090a-0b0c0d0e0f10", FormatGUID(raw))
}

func TestFormatGUID_WrongLength(t *testing.T) {
	assert.Equal(t, "", FormatGUID([]byte{0x01, 0x02}))
	assert.Equal(t, "", FormatGUID(nil))
}

func TestDecodeUserAccountControlFlags(t *testing.T) {
	tests := []struct {
		name string
		uac  string
		want []string
	}{
		{"enabled normal account", "512", []string{"NORMAL_ACCOUNT"}},
		{"disabled normal account", "514", []string{"ACCOUNTDISABLE", "NORMAL_ACCOUNT"}},
		{"garbage", "not-a-number", []string{"invalid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, DecodeUserAccountControlFlags(tt.uac))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Human Resources", "human-resources"},
		{"  IT_Ops  ", "it-ops"},
		{"R&D -- Platform", "rd-platform"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}
