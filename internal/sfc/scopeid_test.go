package sfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeID_Deterministic(t *testing.T) {
	for _, name := range []string{"App.vue", "components/Button.vue", "", "ünïcødé/😀.vue"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, ScopeID(name), ScopeID(name))
		})
	}
}

func TestScopeID_Format(t *testing.T) {
	id := ScopeID("components/Button.vue")
	assert.Regexp(t, `^data-v-[0-9a-f]{8,9}$`, id)
}

func TestScopeID_DependsOnFilenameOnly(t *testing.T) {
	assert.NotEqual(t, ScopeID("a/App.vue"), ScopeID("b/App.vue"))
	assert.NotEqual(t, ScopeID("App.vue"), ScopeID("app.vue"))
}

func TestHashSum_Padding(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "App.vue"} {
		assert.GreaterOrEqual(t, len(HashSum(s)), 8, s)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, int64(7), fold(7, ""), "empty text leaves the hash unchanged")
	assert.Equal(t, int64('a'), fold(0, "a"))
	// 31*97 + 98
	assert.Equal(t, int64(3105), fold(0, "ab"))
}
