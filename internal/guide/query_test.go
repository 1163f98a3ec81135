package guide

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/junitguide/internal/content"
)

func TestFromQuery(t *testing.T) {
	q, err := url.ParseQuery("v=junit5&v=JUnit 6&theme=dark&pin=1&fmt.junit6=gradle&fmt.junit9=gradle&fmt.junit5=ant")
	require.NoError(t, err)

	s := FromQuery(q, false)

	assert.Equal(t, []content.Version{content.JUnit5, content.JUnit6}, s.Selected)
	assert.True(t, s.Dark)
	assert.True(t, s.Pinned)
	assert.Equal(t, content.Gradle, s.Format(content.JUnit6))
	assert.Equal(t, content.Maven, s.Format(content.JUnit5))

	assert.Equal(t, New(true), FromQuery(url.Values{}, true))
}

func TestQueryRoundTrip(t *testing.T) {
	states := []State{
		New(false),
		New(true).ToggleVersion(content.JUnit4).SetSidebarPinned(true),
		New(false).ToggleVersion(content.JUnit6).SetDependencyFormat(content.JUnit6, content.Gradle),
	}

	for _, s := range states {
		// The reader's preference must not leak into a decoded link.
		assert.Equal(t, s, FromQuery(s.Query(), !s.Dark))
	}
}

func TestQueryOmitsHover(t *testing.T) {
	q := New(false).HoverSidebar().Query()

	assert.Equal(t, "theme=light&v=junit5", q.Encode())
	assert.False(t, FromQuery(q, false).Hovered)
}
