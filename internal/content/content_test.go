package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDecodesClinicAPIWireFormat(t *testing.T) {
	raw := `{"id":"c1","title":"Cataract care","content_type":"youtube","content_url":"https://youtu.be/dQw4w9WgXcQ","category":"general","tags":["eye","surgery"],"is_published":true}`

	var it Item
	require.NoError(t, json.Unmarshal([]byte(raw), &it))
	assert.Equal(t, PlatformYouTube, it.Platform)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", it.URL)
	assert.Equal(t, "general", it.Category)
	assert.Equal(t, []string{"eye", "surgery"}, it.Tags)
	assert.True(t, it.Published)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", it.EmbedURL())
}

func TestEmbedURLYouTube(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"share url", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"already embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"second v param", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"short id rejected", "https://www.youtube.com/watch?v=short", ""},
		{"not a video url", "https://www.youtube.com/", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := Item{Platform: PlatformYouTube, URL: tc.url}
			assert.Equal(t, tc.want, it.EmbedURL())
		})
	}
}

func TestEmbedURLFacebook(t *testing.T) {
	it := Item{Platform: PlatformFacebook, URL: "https://www.facebook.com/drganesh/videos/123456789/"}
	got := it.EmbedURL()
	assert.Equal(t,
		"https://www.facebook.com/plugins/video.php?href=https%3A%2F%2Fwww.facebook.com%2Fdrganesh%2Fvideos%2F123456789%2F&show_text=0&width=560",
		got)

	empty := Item{Platform: PlatformFacebook}
	assert.Empty(t, empty.EmbedURL())
}

func TestEmbedURLUnknownPlatform(t *testing.T) {
	it := Item{Platform: "vimeo", URL: "https://vimeo.com/12345"}
	assert.Empty(t, it.EmbedURL())
}

func TestCreateRequestValidate(t *testing.T) {
	ok := CreateRequest{Title: "Cataract care", Platform: PlatformYouTube, URL: "https://youtu.be/dQw4w9WgXcQ"}
	assert.NoError(t, ok.Validate())

	missingTitle := ok
	missingTitle.Title = ""
	assert.ErrorIs(t, missingTitle.Validate(), ErrInvalidItem)

	badPlatform := ok
	badPlatform.Platform = "tiktok"
	assert.ErrorIs(t, badPlatform.Validate(), ErrInvalidItem)
}
