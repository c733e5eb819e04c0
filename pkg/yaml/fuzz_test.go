package yaml

import (
	"testing"

	"github.com/shapestone/yamlstream/internal/tokenizer"
)

var fuzzSeeds = []string{
	"key: value",
	"name: test\nage: 30",
	"items:\n  - a\n  - b",
	"{key: value}",
	"[1, 2, 3]",
	"true",
	"\"string\\x41\\u00e9\"",
	"null",
	"? a\n: b\n",
	"a: &x 1\nb: *x\n",
	"%TAG !e! tag:e,2000:\n--- !e!t x\n...\n",
	"text: |+2\n   x\n\n",
	"f: >-\n  a\n\n  b\n",
	"- - a\n  - b\n-\n",
	"[a, {b: c}, d: e]",
	"﻿key: value",
	"\t- bad",
	"key: [unclosed",
}

// FuzzParse checks that Parse never panics.
func FuzzParse(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data string) {
		node, err := Parse(data)
		if err == nil {
			_ = NodeToInterface(node)
			ReleaseTree(node)
		}
	})
}

// FuzzParseMultiDoc checks that the stream parser never panics and that a
// stream Parse accepts also tokenizes cleanly.
func FuzzParseMultiDoc(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data string) {
		if _, err := ParseMultiDoc(data); err != nil {
			return
		}
		if !tokenizer.Validate([]byte(data)) {
			t.Errorf("ParseMultiDoc accepted %q but the tokenizer rejected it", data)
		}
	})
}

// FuzzValidate checks that Validate never panics and agrees with
// ParseMultiDoc on structurally valid input.
func FuzzValidate(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data string) {
		if Validate(data) != nil {
			if _, err := ParseMultiDoc(data); err == nil {
				t.Errorf("Validate rejected %q but ParseMultiDoc accepted it", data)
			}
		}
	})
}
