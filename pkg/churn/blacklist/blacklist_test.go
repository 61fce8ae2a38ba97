package blacklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCaseInsensitiveSubstring(t *testing.T) {
	f := New([]string{"War", "dog"})

	v := f.Check("Software company hires DOGS")
	assert.True(t, v.Blocked)
	assert.Equal(t, []string{"war", "dog"}, v.Matched)

	v = f.Check("The cat chased the mouse.")
	assert.False(t, v.Blocked)
	assert.Empty(t, v.Matched)
}

func TestNewDropsBlankAndDuplicateTerms(t *testing.T) {
	f := New([]string{"", "  ", "Iran", "iran"})
	assert.Equal(t, []string{"iran"}, f.Terms())
	assert.False(t, f.IsBlocked("anything"))
	assert.True(t, f.IsBlocked("IRANIAN talks"))
}

func TestEmptyFilterBlocksNothing(t *testing.T) {
	assert.False(t, New(nil).IsBlocked("war"))
	var f *Filter
	assert.False(t, f.IsBlocked("war"))
	assert.Nil(t, f.Terms())
}

func TestDefaultTermsIsCopy(t *testing.T) {
	terms := DefaultTerms()
	assert.Len(t, terms, 10)
	terms[0] = "changed"
	assert.Equal(t, "rape", DefaultTerms()[0])
	assert.True(t, New(DefaultTerms()).IsBlocked("Troops withdraw"))
}
