package galleria

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Holiday Photo", "holiday-photo"},
		{"  Trim me  ", "trim-me"},
		{"a--b__c", "a-b-c"},
		{"!!!", ""},
		{"Ünïcode 2024", "n-code-2024"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", []string{"gallery", "abc"}, "https://example.com/gallery/abc/"},
		{"https://example.com/sub", []string{"gallery", "abc"}, "https://example.com/sub/gallery/abc/"},
		{"https://example.com", nil, "https://example.com"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}
