// Package tokenizer turns YAML source bytes into an ordered stream of tokens.
package tokenizer

import (
	"fmt"

	"github.com/shapestone/yamlstream/internal/diag"
)

// Kind identifies a token.
type Kind int

const (
	Error Kind = iota
	StreamStart
	StreamEnd
	VersionDirective   // %YAML 1.2
	TagDirective       // %TAG !e! tag:example.com,2000:
	DocumentStart      // ---
	DocumentEnd        // ...
	BlockEntry         // -
	BlockEnd           // synthesized on dedent
	BlockSequenceStart // synthesized on indent
	BlockMappingStart  // synthesized on indent
	FlowEntry          // ,
	FlowSequenceStart  // [
	FlowSequenceEnd    // ]
	FlowMappingStart   // {
	FlowMappingEnd     // }
	Key                // ? or inserted before a simple key
	Value              // :
	Scalar             // plain, 'single' or "double" quoted
	BlockScalar        // | or >
	Alias              // *name
	Anchor             // &name
	Tag                // !tag
)

var kindNames = [...]string{
	Error:              "Error",
	StreamStart:        "Stream-Start",
	StreamEnd:          "Stream-End",
	VersionDirective:   "Version-Directive",
	TagDirective:       "Tag-Directive",
	DocumentStart:      "Document-Start",
	DocumentEnd:        "Document-End",
	BlockEntry:         "Block-Entry",
	BlockEnd:           "Block-End",
	BlockSequenceStart: "Block-Sequence-Start",
	BlockMappingStart:  "Block-Mapping-Start",
	FlowEntry:          "Flow-Entry",
	FlowSequenceStart:  "Flow-Sequence-Start",
	FlowSequenceEnd:    "Flow-Sequence-End",
	FlowMappingStart:   "Flow-Mapping-Start",
	FlowMappingEnd:     "Flow-Mapping-End",
	Key:                "Key",
	Value:              "Value",
	Scalar:             "Scalar",
	BlockScalar:        "Block-Scalar",
	Alias:              "Alias",
	Anchor:             "Anchor",
	Tag:                "Tag",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one lexical unit. Range indexes the scanner's source.
// Value is only set for BlockScalar tokens, whose body has to be computed
// while scanning.
type Token struct {
	Kind  Kind
	Range diag.Range
	Value string
}

// Text returns the source text covered by t.
func (t Token) Text(src []byte) string {
	if t.Range.Start < 0 || t.Range.End > len(src) || t.Range.Start > t.Range.End {
		return ""
	}
	return string(src[t.Range.Start:t.Range.End])
}
