package tokenizer

import (
	"container/list"
	"sort"
	"unicode/utf8"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/shapestone/yamlstream/internal/diag"
	"github.com/shapestone/yamlstream/internal/encoding"
)

// Scanner produces tokens from YAML source on demand.
//
// Tokens are held in a queue until consumed with Next. The queue exists
// because a scalar only becomes a mapping key once a later ':' is seen, at
// which point Key (and possibly BlockMappingStart) tokens are inserted in
// front of it. Peek therefore never returns a token that may still gain a
// Key in front of it.
type Scanner struct {
	src  []byte
	form encoding.Form
	bom  int

	pos    int // cursor into src
	line   int
	column int

	// indent is the column of the innermost open block collection, -1 at
	// the top level. indents holds the enclosing ones.
	indent  int
	indents []int

	flowLevel int

	startOfStream    bool
	simpleKeyAllowed bool
	ended            bool

	queue      *list.List // of *Token
	simpleKeys []simpleKey

	failed bool
	err    diag.Diagnostic

	lineStarts []int // built on the first Position call

	sink   diag.Sink
	logger log.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSink sets the sink receiving the first diagnostic.
func WithSink(sink diag.Sink) Option {
	return func(s *Scanner) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets a logger for debug events.
func WithLogger(logger log.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner returns a Scanner over src. UTF-16 and UTF-32 input is
// transcoded to UTF-8 first; Source returns the bytes token ranges refer to.
func NewScanner(src []byte, opts ...Option) *Scanner {
	s := &Scanner{
		indent:           -1,
		startOfStream:    true,
		simpleKeyAllowed: true,
		queue:            list.New(),
		sink:             diag.Discard,
		logger:           log.NewNopLogger(),
	}
	for _, o := range opts {
		o(s)
	}

	s.form, s.bom = encoding.Sniff(src)
	s.src = src
	switch s.form {
	case encoding.UTF16LE, encoding.UTF16BE, encoding.UTF32LE, encoding.UTF32BE:
		out, _, err := encoding.ToUTF8(src)
		if err != nil {
			s.src = nil
			s.setError("cannot transcode "+s.form.String()+" input: "+err.Error(), 0)
			return s
		}
		s.src, s.bom = out, 0
		level.Debug(s.logger).Log("msg", "transcoded input", "form", s.form, "bytes", len(out))
	}
	return s
}

// Source returns the UTF-8 bytes token ranges index into.
func (s *Scanner) Source() []byte {
	return s.src
}

// Encoding returns the detected encoding form of the original input.
func (s *Scanner) Encoding() encoding.Form {
	return s.form
}

// Failed reports whether an error has been encountered.
func (s *Scanner) Failed() bool {
	return s.failed
}

// Err returns the first error encountered, or nil.
func (s *Scanner) Err() error {
	if !s.failed {
		return nil
	}
	return s.err.Err()
}

// Peek returns the next token without consuming it. After a failure every
// token is of kind Error.
func (s *Scanner) Peek() Token {
	if s.failed {
		return s.errorToken()
	}
	needMore := false
	for {
		if s.queue.Len() == 0 || needMore {
			if !s.fetchMoreTokens() {
				return s.errorToken()
			}
		}
		s.removeStaleSimpleKeyCandidates()
		if s.failed {
			return s.errorToken()
		}
		if !s.isSimpleKeyCandidate(s.queue.Front()) {
			break
		}
		needMore = true
	}
	return *s.queue.Front().Value.(*Token)
}

// Next consumes and returns the next token.
func (s *Scanner) Next() Token {
	t := s.Peek()
	if s.queue.Len() > 0 {
		s.queue.Remove(s.queue.Front())
	}
	return t
}

// SetError latches msg as the scanner's error unless one is already
// latched. Later tokens are all of kind Error.
func (s *Scanner) SetError(msg string, r diag.Range) {
	s.setErrorRange(msg, r)
}

func (s *Scanner) setError(msg string, at int) {
	s.setErrorRange(msg, diag.Range{Start: at, End: at})
}

func (s *Scanner) setErrorRange(msg string, r diag.Range) {
	if r.Start > len(s.src) {
		r.Start = len(s.src)
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	if !s.failed {
		s.err = diag.Diagnostic{
			Pos:      s.Position(r.Start),
			Severity: diag.SeverityError,
			Message:  msg,
			Range:    r,
		}
		s.sink.Report(s.err)
	}
	s.failed = true
}

// errorToken resets the queue to a single Error token at the cursor.
func (s *Scanner) errorToken() Token {
	s.queue.Init()
	s.simpleKeys = s.simpleKeys[:0]
	t := &Token{Kind: Error, Range: diag.Range{Start: s.pos, End: s.pos}}
	s.queue.PushBack(t)
	return *t
}

// Position converts a byte offset into a line and column.
func (s *Scanner) Position(off int) diag.Position {
	if off > len(s.src) {
		off = len(s.src)
	}
	if off < 0 {
		off = 0
	}
	if s.lineStarts == nil {
		s.lineStarts = []int{0}
		for i := 0; i < len(s.src); i++ {
			switch s.src[i] {
			case '\r':
				if i+1 < len(s.src) && s.src[i+1] == '\n' {
					i++
				}
				s.lineStarts = append(s.lineStarts, i+1)
			case '\n':
				s.lineStarts = append(s.lineStarts, i+1)
			}
		}
	}
	// The last line starting at or before off.
	line := sort.SearchInts(s.lineStarts, off+1) - 1
	start := s.lineStarts[line]
	return diag.Position{
		Offset: off,
		Line:   line,
		Column: utf8.RuneCount(s.src[start:off]),
	}
}

func (s *Scanner) push(t *Token) *list.Element {
	return s.queue.PushBack(t)
}

// fetchMoreTokens scans at least one more token into the queue. It returns
// false once the scanner has failed.
func (s *Scanner) fetchMoreTokens() bool {
	if s.failed {
		return false
	}
	if s.startOfStream {
		return s.scanStreamStart()
	}

	s.scanToNextToken()

	if s.pos >= len(s.src) {
		return s.scanStreamEnd()
	}

	s.removeStaleSimpleKeyCandidates()
	if s.failed {
		return false
	}

	s.unrollIndent(s.column)

	c := s.src[s.pos]
	if s.column == 0 {
		switch {
		case c == '%':
			return s.scanDirective()
		case s.isDocumentIndicator(s.pos, "---"):
			return s.scanDocumentIndicator(true)
		case s.isDocumentIndicator(s.pos, "..."):
			return s.scanDocumentIndicator(false)
		}
	}

	switch c {
	case '[':
		return s.scanFlowCollectionStart(true)
	case '{':
		return s.scanFlowCollectionStart(false)
	case ']':
		return s.scanFlowCollectionEnd(true)
	case '}':
		return s.scanFlowCollectionEnd(false)
	case ',':
		return s.scanFlowEntry()
	}

	next := s.pos + 1
	switch {
	case c == '-' && s.isBlankOrBreak(next):
		return s.scanBlockEntry()
	case c == '?' && (s.flowLevel > 0 || s.isBlankOrBreak(next)):
		return s.scanKey()
	case c == ':' && (s.flowLevel > 0 || s.isBlankOrBreak(next)):
		return s.scanValue()
	case c == '*':
		return s.scanAliasOrAnchor(true)
	case c == '&':
		return s.scanAliasOrAnchor(false)
	case c == '!':
		return s.scanTag()
	case c == '|' && s.flowLevel == 0:
		return s.scanBlockScalar(true)
	case c == '>' && s.flowLevel == 0:
		return s.scanBlockScalar(false)
	case c == '\'':
		return s.scanFlowScalar(false)
	case c == '"':
		return s.scanFlowScalar(true)
	case s.isPlainScalarStart(s.pos):
		return s.scanPlainScalar()
	}

	s.setError("unrecognized character while tokenizing", s.pos)
	return false
}

func (s *Scanner) scanStreamStart() bool {
	s.startOfStream = false
	s.push(&Token{Kind: StreamStart, Range: diag.Range{Start: 0, End: s.bom}})
	s.pos = s.bom
	return true
}

func (s *Scanner) scanStreamEnd() bool {
	// Force an ending line break.
	if s.column != 0 {
		s.column = 0
		s.line++
	}
	s.unrollIndent(-1)
	s.simpleKeys = s.simpleKeys[:0]
	s.simpleKeyAllowed = false

	s.push(&Token{Kind: StreamEnd, Range: diag.Range{Start: s.pos, End: s.pos}})
	if !s.ended {
		s.ended = true
		level.Debug(s.logger).Log("msg", "stream end", "lines", s.line, "bytes", len(s.src))
	}
	return true
}

// scanToNextToken skips blanks, comments and line breaks.
func (s *Scanner) scanToNextToken() {
	for {
		for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
			s.skip(1)
		}
		s.skipComment()

		i := s.skipBBreak(s.pos)
		if i == s.pos {
			break
		}
		s.pos = i
		s.line++
		s.column = 0
		// A new line may start a simple key.
		if s.flowLevel == 0 {
			s.simpleKeyAllowed = true
		}
	}
}

func (s *Scanner) skipComment() {
	if s.at(s.pos) != '#' {
		return
	}
	s.advanceWhile(s.skipNbChar)
}

func (s *Scanner) scanDocumentIndicator(isStart bool) bool {
	s.unrollIndent(-1)
	s.simpleKeys = s.simpleKeys[:0]
	s.simpleKeyAllowed = false

	kind := DocumentEnd
	if isStart {
		kind = DocumentStart
	}
	s.push(&Token{Kind: kind, Range: diag.Range{Start: s.pos, End: s.pos + 3}})
	s.skip(3)
	return true
}

func (s *Scanner) scanFlowCollectionStart(isSequence bool) bool {
	kind := FlowMappingStart
	if isSequence {
		kind = FlowSequenceStart
	}
	col := s.column
	e := s.push(&Token{Kind: kind, Range: diag.Range{Start: s.pos, End: s.pos + 1}})
	s.skip(1)

	// '[' and '{' may start a simple key, and may be followed by one.
	s.saveSimpleKeyCandidate(e, s.line, col, false)
	s.simpleKeyAllowed = true
	s.flowLevel++
	return true
}

func (s *Scanner) scanFlowCollectionEnd(isSequence bool) bool {
	s.removeSimpleKeyCandidatesOnFlowLevel(s.flowLevel)
	s.simpleKeyAllowed = false

	kind := FlowMappingEnd
	if isSequence {
		kind = FlowSequenceEnd
	}
	s.push(&Token{Kind: kind, Range: diag.Range{Start: s.pos, End: s.pos + 1}})
	s.skip(1)
	if s.flowLevel > 0 {
		s.flowLevel--
	}
	return true
}

func (s *Scanner) scanFlowEntry() bool {
	s.removeSimpleKeyCandidatesOnFlowLevel(s.flowLevel)
	s.simpleKeyAllowed = true

	s.push(&Token{Kind: FlowEntry, Range: diag.Range{Start: s.pos, End: s.pos + 1}})
	s.skip(1)
	return true
}

func (s *Scanner) scanBlockEntry() bool {
	s.rollIndent(s.column, BlockSequenceStart, nil)
	s.removeSimpleKeyCandidatesOnFlowLevel(s.flowLevel)
	s.simpleKeyAllowed = true

	s.push(&Token{Kind: BlockEntry, Range: diag.Range{Start: s.pos, End: s.pos + 1}})
	s.skip(1)
	return true
}

func (s *Scanner) scanKey() bool {
	if s.flowLevel == 0 {
		s.rollIndent(s.column, BlockMappingStart, nil)
	}
	s.removeSimpleKeyCandidatesOnFlowLevel(s.flowLevel)
	s.simpleKeyAllowed = s.flowLevel == 0

	s.push(&Token{Kind: Key, Range: diag.Range{Start: s.pos, End: s.pos + 1}})
	s.skip(1)
	return true
}

func (s *Scanner) scanValue() bool {
	if n := len(s.simpleKeys); n > 0 && s.simpleKeys[n-1].flowLevel == s.flowLevel {
		sk := s.simpleKeys[n-1]
		s.simpleKeys = s.simpleKeys[:n-1]

		cand := sk.tok.Value.(*Token)
		at := cand.Range.Start
		key := s.queue.InsertBefore(&Token{Kind: Key, Range: diag.Range{Start: at, End: at}}, sk.tok)
		if key == nil {
			// The candidate was already consumed.
			s.setError("simple key candidate is no longer in the token queue", cand.Range.Start)
			return false
		}
		// The key may also open a block mapping.
		s.rollIndent(sk.column, BlockMappingStart, key)
		s.simpleKeyAllowed = false
	} else {
		if s.flowLevel == 0 {
			s.rollIndent(s.column, BlockMappingStart, nil)
		}
		s.simpleKeyAllowed = s.flowLevel == 0
	}

	s.push(&Token{Kind: Value, Range: diag.Range{Start: s.pos, End: s.pos + 1}})
	s.skip(1)
	return true
}

func (s *Scanner) scanAliasOrAnchor(isAlias bool) bool {
	start, line, col := s.pos, s.line, s.column
	s.skip(1)
name:
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '[', ']', '{', '}', ',', ':':
			break name
		}
		i := s.skipNsChar(s.pos)
		if i == s.pos {
			break
		}
		s.pos = i
		s.column++
	}
	if s.pos == start+1 {
		s.setError("got empty alias or anchor", start)
		return false
	}

	kind := Anchor
	if isAlias {
		kind = Alias
	}
	e := s.push(&Token{Kind: kind, Range: diag.Range{Start: start, End: s.pos}})

	// Aliases and anchors can be simple keys.
	s.saveSimpleKeyCandidate(e, line, col, false)
	s.simpleKeyAllowed = false
	return true
}
