package shared

import "testing"

func TestIsSupportedAudio(t *testing.T) {
	tc := []struct {
		name string
		file string
		want bool
	}{
		{name: "mp3", file: "song.mp3", want: true},
		{name: "upper case flac", file: "SONG.FLAC", want: true},
		{name: "mixed case m4a", file: "Song.M4a", want: true},
		{name: "ogg with dots in name", file: "a.b.c.ogg", want: true},
		{name: "text file", file: "notes.txt", want: false},
		{name: "no extension", file: "README", want: false},
		{name: "extension only in name", file: "mp3", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupportedAudio(tt.file); got != tt.want {
				t.Errorf("IsSupportedAudio(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tc := []struct {
		path string
		want string
	}{
		{path: "/music/Song - Artist.mp3", want: "Song - Artist"},
		{path: "Song.Remix.flac", want: "Song.Remix"},
		{path: "plain", want: "plain"},
	}

	for _, tt := range tc {
		if got := Stem(tt.path); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestFormatName(t *testing.T) {
	if got := FormatName("/a/b/track.flac"); got != "FLAC" {
		t.Errorf("FormatName() = %q, want FLAC", got)
	}
	if got := FormatName("track"); got != "" {
		t.Errorf("FormatName() = %q, want empty", got)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a, b)
	}
}
