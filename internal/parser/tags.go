package parser

import (
	"net/url"
	"strings"
)

// Core schema tags.
const (
	TagNull  = "tag:yaml.org,2002:null"
	TagStr   = "tag:yaml.org,2002:str"
	TagInt   = "tag:yaml.org,2002:int"
	TagFloat = "tag:yaml.org,2002:float"
	TagBool  = "tag:yaml.org,2002:bool"
	TagMap   = "tag:yaml.org,2002:map"
	TagSeq   = "tag:yaml.org,2002:seq"
)

// VerbatimTag returns the fully expanded tag of n.
//
// Tags are resolved as follows:
//   - no tag, or the non-specific "!": the default tag of the node kind
//   - "!<uri>": uri, with %-escapes decoded
//   - "!!suffix": the "!!" prefix, tag:yaml.org,2002: unless overridden
//   - "!suffix": the "!" prefix followed by suffix
//   - "!handle!suffix": the prefix registered by a %TAG directive
//
// A named handle without a %TAG directive latches an error and yields "".
func (n Node) VerbatimTag() string {
	if n.n == nil {
		return ""
	}
	raw := n.n.tag
	if raw == "" || raw == "!" {
		return defaultTag(n.n.kind)
	}

	if strings.HasPrefix(raw, "!<") {
		uri := strings.TrimSuffix(raw[2:], ">")
		if dec, err := url.PathUnescape(uri); err == nil {
			return dec
		}
		return uri
	}

	tags := n.n.doc.tags
	if strings.HasPrefix(raw, "!!") {
		return tags["!!"] + raw[2:]
	}
	end := strings.IndexByte(raw[1:], '!')
	if end < 0 {
		return tags["!"] + raw[1:]
	}
	handle := raw[:end+2]
	prefix, ok := tags[handle]
	if !ok {
		d := n.n.doc
		d.stream.scanner.SetError("unknown tag handle "+handle, n.n.tagRng)
		return ""
	}
	return prefix + raw[end+2:]
}

func defaultTag(k Kind) string {
	switch k {
	case KindNull:
		return TagNull
	case KindScalar, KindBlockScalar:
		return TagStr
	case KindMapping:
		return TagMap
	case KindSequence:
		return TagSeq
	}
	return ""
}
