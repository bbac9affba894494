package util

import "testing"

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "short", input: "  python sql ", limit: 20, want: "python sql"},
		{name: "truncated", input: "data analyst", limit: 4, want: "data..."},
		{name: "zero limit", input: "anything", limit: 0, want: ""},
		{name: "runes", input: "дизайнер", limit: 3, want: "диз..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.input, tc.limit); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPreviewList(t *testing.T) {
	got := PreviewList([]string{"python developer", "figma", "sql"}, 2, 6)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0] != "python..." || got[1] != "figma" {
		t.Fatalf("unexpected preview: %v", got)
	}

	if got := PreviewList(nil, 3, 10); len(got) != 0 {
		t.Fatalf("expected empty preview, got %v", got)
	}
}
