package fuzzy

import "testing"

func TestRatioIdentity(t *testing.T) {
	for _, s := range []string{"a", "BLOOD", "Dhaka Medical College", "ডাক্তার"} {
		if got := Ratio(s, s); got != 100 {
			t.Errorf("Ratio(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestRatioSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"BLOOD", "BLOD"},
		{"HEART", "HART"},
		{"Dhaka", "Daka"},
		{"", "KIDNEY"},
	}
	for _, p := range pairs {
		ab := Ratio(p[0], p[1])
		ba := Ratio(p[1], p[0])
		if ab != ba {
			t.Errorf("Ratio(%q, %q) = %d but Ratio(%q, %q) = %d", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestRatioBounds(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"BLOOD", "BLOD", 80},
		{"HEART", "HART", 80},
		{"", "", 100},
		{"", "x", 0},
		{"abc", "xyz", 0},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchBest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []string
		threshold  int
		want       string
		wantOK     bool
	}{
		{
			name:       "misspelled_enum_normalizes",
			query:      "BLOD",
			candidates: []string{"BLOOD", "HEART", "BRAIN"},
			threshold:  80,
			want:       "BLOOD",
			wantOK:     true,
		},
		{
			name:       "case_insensitive",
			query:      "blood",
			candidates: []string{"BLOOD", "HEART"},
			threshold:  80,
			want:       "BLOOD",
			wantOK:     true,
		},
		{
			name:       "nothing_clears_threshold",
			query:      "xyzzy",
			candidates: []string{"BLOOD", "HEART", "BRAIN"},
			threshold:  80,
			wantOK:     false,
		},
		{
			name:       "tie_broken_by_earliest_position",
			query:      "cat",
			candidates: []string{"cart", "cast"},
			threshold:  70,
			want:       "cart",
			wantOK:     true,
		},
		{
			name:       "empty_candidates",
			query:      "BLOOD",
			candidates: nil,
			threshold:  80,
			wantOK:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchBest(tt.query, tt.candidates, tt.threshold)
			if ok != tt.wantOK {
				t.Fatalf("MatchBest(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("MatchBest(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	canonical := []string{"BLOOD", "HEART", "BRAIN", "LUNG"}

	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name:   "typos_normalize_and_misses_drop",
			tokens: []string{"BLOD", "xyzzy", "HART"},
			want:   []string{"BLOOD", "HEART"},
		},
		{
			name:   "exact_tokens_pass_through",
			tokens: []string{"LUNG", "BRAIN"},
			want:   []string{"LUNG", "BRAIN"},
		},
		{
			name:   "all_dropped",
			tokens: []string{"nonsense", "garbage"},
			want:   []string{},
		},
		{
			name:   "empty_input",
			tokens: nil,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAll(tt.tokens, canonical, 80)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeAll(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizeAll(%v)[%d] = %q, want %q", tt.tokens, i, got[i], tt.want[i])
				}
			}
		})
	}
}
