package handler

import (
	"reflect"
	"testing"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "hashtags in caption text",
			input: "check out my #travel video from #summer2024!",
			want:  []string{"#travel", "#summer2024"},
		},
		{
			name:  "plain words get prefixed",
			input: "travel summer",
			want:  []string{"#travel", "#summer"},
		},
		{
			name:  "comma separated list",
			input: "travel, summer, beach",
			want:  []string{"#travel", "#summer", "#beach"},
		},
		{
			name:  "unicode hashtags",
			input: "#путешествие and #蛋糕",
			want:  []string{"#путешествие", "#蛋糕"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  []string{},
		},
		{
			name:  "punctuation ends a hashtag",
			input: "#fun. #games!",
			want:  []string{"#fun", "#games"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractTags(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractTags(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
