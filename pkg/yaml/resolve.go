package yaml

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/shapestone/yamlstream/internal/parser"
)

// YAML 1.2 core schema patterns.
var (
	intPattern   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	octPattern   = regexp.MustCompile(`^0o[0-7]+$`)
	hexPattern   = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	floatPattern = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)
)

// resolvePlain returns the value of an untagged plain scalar under the
// core schema: nil, bool, int64, float64 or string.
func resolvePlain(s string) any {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return nil
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1)
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1)
	case ".nan", ".NaN", ".NAN":
		return math.NaN()
	}

	if v, ok := parseInt(s); ok {
		return v
	}
	if floatPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// parseInt parses decimal, 0o octal and 0x hexadecimal integers. Values
// that do not fit in int64 are rejected.
func parseInt(s string) (int64, bool) {
	var v int64
	var err error
	switch {
	case intPattern.MatchString(s):
		v, err = strconv.ParseInt(s, 10, 64)
	case octPattern.MatchString(s):
		v, err = strconv.ParseInt(s[2:], 8, 64)
	case hexPattern.MatchString(s):
		v, err = strconv.ParseInt(s[2:], 16, 64)
	default:
		return 0, false
	}
	return v, err == nil
}

// scalarValue returns the value of a scalar. tag is the expanded tag, or
// "" when the scalar has none. Untagged plain scalars are resolved; other
// scalars are strings unless a core tag asks for a conversion.
func scalarValue(tag, text string, plain bool) (any, error) {
	switch tag {
	case "":
		if plain {
			return resolvePlain(text), nil
		}
		return text, nil
	case parser.TagStr:
		return text, nil
	case parser.TagNull:
		return nil, nil
	case parser.TagInt:
		return coerceToInt(text)
	case parser.TagFloat:
		return coerceToFloat(text)
	case parser.TagBool:
		return coerceToBool(text)
	case parser.TagMap, parser.TagSeq:
		return nil, errors.Errorf("%s tag applied to a scalar", shortTag(tag))
	}
	// Custom tags are left to the application.
	return text, nil
}

func coerceToInt(s string) (any, error) {
	t := strings.TrimSpace(s)
	if v, ok := parseInt(t); ok {
		return v, nil
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int64(f), nil
	}
	return nil, errors.Errorf("!!int tag: cannot convert %q to integer", s)
}

func coerceToFloat(s string) (any, error) {
	t := strings.TrimSpace(s)
	switch v := resolvePlain(t).(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	}
	return nil, errors.Errorf("!!float tag: cannot convert %q to float", s)
}

func coerceToBool(s string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return nil, errors.Errorf("!!bool tag: cannot convert %q to boolean", s)
}

// shortTag abbreviates a core schema tag as "!!suffix".
func shortTag(tag string) string {
	if rest, ok := strings.CutPrefix(tag, "tag:yaml.org,2002:"); ok {
		return "!!" + rest
	}
	return tag
}
