package escape

import (
	"strings"
	"testing"
)

func TestCanBeBare(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"a", true},
		{"abc", true},
		{"_", true},
		{"あ", true},
		{"1", false},
		{"-5", false},
		{"a-b", true},
		{"a1", true},
		{"a b", false},
		{"a'b", false},
		{"a!b", false},
		{"a(b", false},
		{"a)b", false},
		{"a,b", false},
		{"a:b", false},
		{"a*b", false},
		{"a@b", false},
		{"a$b", false},
		{"\t", true},
		{" ", false},
	} {
		t.Run(test.input, func(t *testing.T) {
			if actual := CanBeBare(test.input); actual != test.expected {
				t.Errorf("CanBeBare(%q) = %v; want %v", test.input, actual, test.expected)
			}
		})
	}
}

func TestWriteString(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected string
	}{
		{"", "''"},
		{"a", "a"},
		{"abc", "abc"},
		{"1", "'1'"},
		{"あ", "あ"},
		{"I'm not a JSON!", "'I!'m not a JSON!!'"},
		{"I'm a key!", "'I!'m a key!!'"},
		{" ", "' '"},
		{"\t", "\t"},
	} {
		t.Run(test.input, func(t *testing.T) {
			var buf strings.Builder
			WriteString(&buf, test.input)
			if actual := buf.String(); actual != test.expected {
				t.Errorf("WriteString(%q) = %q; want %q", test.input, actual, test.expected)
			}
		})
	}
}
