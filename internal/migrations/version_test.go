package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{name: "plain version", input: "0.4", expected: 0.4},
		{name: "v prefix", input: "v0.4", expected: 0.4},
		{name: "major only", input: "1", expected: 1.0},
		{name: "patch segment ignored", input: "0.4.2", expected: 0.4},
		{name: "surrounding whitespace", input: " 0.3 ", expected: 0.3},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, err := ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, version)
		})
	}
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "0.4", FormatVersion(0.4))
	assert.Equal(t, "1", FormatVersion(1.0))
}

func TestGetCurrentCodeVersion(t *testing.T) {
	version, err := GetCurrentCodeVersion()
	assert.NoError(t, err)
	assert.Greater(t, version, 0.0)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1       string
		v2       string
		expected int
	}{
		{"0.3", "0.4", -1},
		{"0.4", "0.4", 0},
		{"0.4", "0.3", 1},
		{"v0.4", "0.4", 0},
	}

	for _, tt := range tests {
		result, err := CompareVersions(tt.v1, tt.v2)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, result, "%s vs %s", tt.v1, tt.v2)
	}

	_, err := CompareVersions("bad", "0.4")
	assert.Error(t, err)
}

func TestIsVersionSuperior(t *testing.T) {
	superior, err := IsVersionSuperior("0.3", "0.4")
	assert.NoError(t, err)
	assert.True(t, superior)

	superior, err = IsVersionSuperior("0.4", "0.4")
	assert.NoError(t, err)
	assert.False(t, superior)
}
