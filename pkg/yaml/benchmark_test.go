package yaml

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shapestone/yamlstream/internal/parser"
)

var testYAML = "name: BenchmarkTest\nversion: \"1.0\"\nenabled: true\ncount: 42"

// largeYAML is a stream of many small service documents.
var largeYAML = func() string {
	var b strings.Builder
	for i := range 200 {
		b.WriteString("---\nname: svc-" + strconv.Itoa(i) + "\nports: [80, 443]\nenv:\n  - {name: MODE, value: prod}\n  - {name: LEVEL, value: \"" + strconv.Itoa(i%5) + "\"}\nnotes: |\n  line one\n  line two\n")
	}
	return b.String()
}()

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		node, err := Parse(testYAML)
		if err != nil {
			b.Fatal(err)
		}
		ReleaseTree(node)
	}
}

func BenchmarkParseReader(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		reader := strings.NewReader(testYAML)
		_, err := ParseReader(reader)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseMultiDoc(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeYAML)))
	for i := 0; i < b.N; i++ {
		if _, err := ParseMultiDoc(largeYAML); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(largeYAML)))
	for i := 0; i < b.N; i++ {
		if err := Validate(largeYAML); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLazyLookup reads one key per document and skips the rest.
func BenchmarkLazyLookup(b *testing.B) {
	src := []byte(largeYAML)
	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	for i := 0; i < b.N; i++ {
		s := parser.NewStream(src)
		n := 0
		for doc := range s.Documents() {
			m, ok := doc.Root().Mapping()
			if !ok {
				b.Fatal("root is not a mapping")
			}
			if kv, ok := m.Next(); ok {
				if sc, ok := kv.Value().Scalar(); ok && len(sc.Raw()) > 0 {
					n++
				}
			}
		}
		if s.Failed() || n != 200 {
			b.Fatalf("read %d documents: %v", n, s.Err())
		}
	}
}
