package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("T_STR", " hello ")
	t.Setenv("T_INT", "42")
	t.Setenv("T_BAD_INT", "forty")
	t.Setenv("T_FLOAT", "2.5")
	t.Setenv("T_BOOL", "true")
	t.Setenv("T_DUR", "90s")
	t.Setenv("T_SECS", "15")
	t.Setenv("T_LIST", "a, b,,c ")

	assert.Equal(t, "hello", Get("T_STR", "x"))
	assert.Equal(t, "x", Get("T_UNSET", "x"))
	assert.Equal(t, 42, GetInt("T_INT", 1))
	assert.Equal(t, 1, GetInt("T_BAD_INT", 1))
	assert.Equal(t, 2.5, GetFloat("T_FLOAT", 0))
	assert.Equal(t, 7.0, GetFloat("T_UNSET", 7))
	assert.True(t, GetBool("T_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDuration("T_DUR", 0))
	assert.Equal(t, 15*time.Second, GetDuration("T_SECS", 0))
	assert.Equal(t, time.Minute, GetDuration("T_UNSET", time.Minute))
	assert.Equal(t, []string{"a", "b", "c"}, GetList("T_LIST", nil))
	assert.Equal(t, []string{"z"}, GetList("T_UNSET", []string{"z"}))
}
