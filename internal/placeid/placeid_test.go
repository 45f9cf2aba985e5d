package placeid

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "place_id query parameter",
			url:  "https://www.google.com/maps/search/?api=1&query=x&query_place_id=place_id:ChIJN1t_tDeuEmsRUsoyG83frY4",
			want: "ChIJN1t_tDeuEmsRUsoyG83frY4",
		},
		{
			name: "place_id truncated to 50 chars",
			url:  "https://maps.google.com/?q=place_id:" + strings.Repeat("A", 80),
			want: strings.Repeat("A", 50),
		},
		{
			name: "place name path segment",
			url:  "https://www.google.com/maps/place/Statue+of+Liberty/@40.689,-74.044,17z/",
			want: "Statue_of_Liberty",
		},
		{
			name: "place name sanitizes unicode and punctuation",
			url:  "https://www.google.com/maps/place/Caf%C3%A9+%26+Bar/@1.0,2.0,17z/",
			want: "Caf_C3_A9__26_Bar",
		},
		{
			name: "place name wins over coordinates",
			url:  "https://www.google.com/maps/place/Some+Cafe/@40.712,-74.006,17z/",
			want: "Some_Cafe",
		},
		{
			name: "coordinates only",
			url:  "https://www.google.com/maps/@40.712776,-74.005974,17z/",
			want: "place_40_712776_-74_005974",
		},
		{
			name: "long coordinates truncated to 10 chars each",
			url:  "https://www.google.com/maps/@40.7127761234,-74.0059741234,17z/",
			want: "place_40_7127761_-74_005974",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromURL(tt.url))
		})
	}
}

func TestFromURL_Deterministic(t *testing.T) {
	urls := []string{
		"https://maps.google.com/?q=place_id:ChIJabc123XYZ",
		"https://www.google.com/maps/place/Some+Cafe/@40.712,-74.006,17z/",
		"https://www.google.com/maps/@40.712776,-74.005974,17z/",
	}
	for _, u := range urls {
		assert.Equal(t, FromURL(u), FromURL(u), "identifier must be stable for %s", u)
	}
}

func TestFromURL_TimestampFallback(t *testing.T) {
	id := FromURL("https://example.com/nothing-to-see-here")
	assert.Regexp(t, regexp.MustCompile(`^place_\d+$`), id)
}

func TestFromURL_PlaceIDWinsOverName(t *testing.T) {
	url := "https://www.google.com/maps/place/Some+Cafe/?q=place_id:ChIJabc123XYZ"
	assert.Equal(t, "ChIJabc123XYZ", FromURL(url))
}
