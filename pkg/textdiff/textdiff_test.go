package textdiff

import "testing"

func TestFirstChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prev     string
		curr     string
		offset   int
		modified bool
	}{
		{"identical", "# Hi\n", "# Hi\n", 0, false},
		{"both empty", "", "", 0, false},
		{"insertion in middle", "hello world", "hello brave world", 6, true},
		{"append", "abc", "abcd", 3, true},
		{"prepend", "abc", "xabc", 0, true},
		{"deletion", "hello world", "hello", 5, true},
		{"replacement", "one two three", "one 2 three", 4, true},
		{"from empty", "", "new", 0, true},
		{"to empty", "old", "", 0, true},
		{"multibyte prefix", "日本語 text", "日本語 edit", 10, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			offset, modified := FirstChange(testCase.prev, testCase.curr)
			if modified != testCase.modified {
				t.Fatalf("expected modified=%v, got %v", testCase.modified, modified)
			}
			if modified && offset != testCase.offset {
				t.Errorf("expected offset %d, got %d", testCase.offset, offset)
			}
		})
	}
}
