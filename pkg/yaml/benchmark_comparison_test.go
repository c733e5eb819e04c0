package yaml

import (
	"io"
	"strings"
	"testing"

	goccy "github.com/goccy/go-yaml"
	yamlv3 "gopkg.in/yaml.v3"
)

// Comparison benchmarks against gopkg.in/yaml.v3 and github.com/goccy/go-yaml.
// NOTE: both are test-only dependencies.

var testData = `name: BenchmarkTest
version: "1.0.0"
enabled: true
count: 42
tags: [a, b, c]
owner:
  name: ops
  email: ops@example.com`

// ============================================================================
// yamlstream (our implementation)
// ============================================================================

func BenchmarkYAMLStream_Decode(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		node, err := Parse(testData)
		if err != nil {
			b.Fatal(err)
		}
		_ = NodeToInterface(node)
	}
}

func BenchmarkYAMLStream_DecodeStream(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeYAML)))
	for i := 0; i < b.N; i++ {
		docs, err := ParseMultiDoc(largeYAML)
		if err != nil {
			b.Fatal(err)
		}
		for _, d := range docs {
			_ = NodeToInterface(d)
		}
	}
}

// ============================================================================
// gopkg.in/yaml.v3
// ============================================================================

func BenchmarkYAMLv3_Decode(b *testing.B) {
	data := []byte(testData)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v map[string]any
		if err := yamlv3.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkYAMLv3_DecodeStream(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeYAML)))
	for i := 0; i < b.N; i++ {
		dec := yamlv3.NewDecoder(strings.NewReader(largeYAML))
		for {
			var v any
			if err := dec.Decode(&v); err == io.EOF {
				break
			} else if err != nil {
				b.Fatal(err)
			}
		}
	}
}

// ============================================================================
// github.com/goccy/go-yaml
// ============================================================================

func BenchmarkGoccy_Decode(b *testing.B) {
	data := []byte(testData)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var v map[string]any
		if err := goccy.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGoccy_DecodeStream(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeYAML)))
	for i := 0; i < b.N; i++ {
		dec := goccy.NewDecoder(strings.NewReader(largeYAML))
		for {
			var v any
			if err := dec.Decode(&v); err == io.EOF {
				break
			} else if err != nil {
				b.Fatal(err)
			}
		}
	}
}
