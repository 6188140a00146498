package service

import (
	"reflect"
	"testing"
)

func TestExtractThemes(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []string
	}{
		{
			name:  "single accuracy trigger",
			texts: []string{"This was so accurate!"},
			want:  []string{"accuracy"},
		},
		{
			name:  "multiple themes across texts",
			texts: []string{"Very insightful reading", "gave me real direction"},
			want:  []string{"insight", "guidance"},
		},
		{
			name:  "case insensitive",
			texts: []string{"SO HELPFUL AND PRACTICAL"},
			want:  []string{"guidance", "practical"},
		},
		{
			name:  "no triggers",
			texts: []string{"hmm ok"},
			want:  nil,
		},
		{
			name:  "empty input",
			texts: nil,
			want:  nil,
		},
		{
			name:  "timing trigger inside word",
			texts: []string{"I wonder when it happens"},
			want:  []string{"timing"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractThemes(tt.texts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractThemes(%v) = %v, want %v", tt.texts, got, tt.want)
			}
		})
	}
}
