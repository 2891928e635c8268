package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDefault(t *testing.T) {
	t.Setenv("CFG_TEST_STR", "")
	assert.Equal(t, "def", EnvDefault("CFG_TEST_STR", "def"))

	t.Setenv("CFG_TEST_STR", "set")
	assert.Equal(t, "set", EnvDefault("CFG_TEST_STR", "def"))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "abc")
	assert.Equal(t, 8080, EnvIntDefault("CFG_TEST_INT", 8080))

	t.Setenv("CFG_TEST_INT", "9090")
	assert.Equal(t, 9090, EnvIntDefault("CFG_TEST_INT", 8080))
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "15m", want: 15 * time.Minute},
		{in: "1d", want: 24 * time.Hour},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvDurationDefault(t *testing.T) {
	t.Setenv("CFG_TEST_DUR", "")
	assert.Equal(t, time.Minute, EnvDurationDefault("CFG_TEST_DUR", time.Minute))

	t.Setenv("CFG_TEST_DUR", "-5m")
	assert.Equal(t, time.Minute, EnvDurationDefault("CFG_TEST_DUR", time.Minute))

	t.Setenv("CFG_TEST_DUR", "2d")
	assert.Equal(t, 48*time.Hour, EnvDurationDefault("CFG_TEST_DUR", time.Minute))
}
