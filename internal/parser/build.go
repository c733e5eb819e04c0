package parser

import (
	"github.com/shapestone/yamlstream/internal/tokenizer"
)

// parseBlockNode builds the node starting at the next token. Collections
// are only opened; their entries are parsed by Next. It returns nil after
// an error.
//
// Grammar:
//
//	Node       = [ Properties ] Content ;
//	Properties = Anchor [ Tag ] | Tag [ Anchor ] ;
//	Content    = Alias | Scalar | BlockScalar | Collection | Key | empty ;
func (d *Document) parseBlockNode() *node {
	var anchor, tag tokenizer.Token
	haveAnchor, haveTag := false, false

	t := d.peek()
properties:
	for {
		switch t.Kind {
		case tokenizer.Anchor:
			if haveAnchor {
				d.setError("already encountered an anchor for this node", t)
				return nil
			}
			anchor, haveAnchor = d.next(), true
		case tokenizer.Tag:
			if haveTag {
				d.setError("already encountered a tag for this node", t)
				return nil
			}
			tag, haveTag = d.next(), true
		default:
			break properties
		}
		t = d.peek()
	}

	var n *node
	switch t.Kind {
	case tokenizer.Alias:
		d.next()
		n = d.newNode(KindAlias, t)
		n.value = d.text(t)[1:]
		// An alias has no properties of its own.
		if haveAnchor || haveTag {
			d.setError("an alias cannot have an anchor or a tag", t)
		}
		return n
	case tokenizer.BlockEntry:
		// A sequence entry without Block-Sequence-Start: the sequence is
		// not terminated by Block-End. The entry token is left for Next.
		n = d.newCollection(KindSequence, StyleIndentless, t)
	case tokenizer.BlockSequenceStart:
		d.next()
		n = d.newCollection(KindSequence, StyleBlock, t)
	case tokenizer.BlockMappingStart:
		d.next()
		n = d.newCollection(KindMapping, StyleBlock, t)
	case tokenizer.FlowSequenceStart:
		d.next()
		n = d.newCollection(KindSequence, StyleFlow, t)
	case tokenizer.FlowMappingStart:
		d.next()
		n = d.newCollection(KindMapping, StyleFlow, t)
	case tokenizer.Scalar:
		d.next()
		n = d.newNode(KindScalar, t)
	case tokenizer.BlockScalar:
		d.next()
		n = d.newNode(KindBlockScalar, t)
		n.value = t.Value
	case tokenizer.Key:
		if haveAnchor || haveTag {
			// Properties of an empty node, followed by the next key of
			// the enclosing mapping.
			n = d.newNode(KindNull, emptyAt(t))
			break
		}
		// A single "key: value" pair. The Key token is left for the
		// KeyValue.
		n = d.newCollection(KindMapping, StyleInline, t)
	case tokenizer.FlowEntry, tokenizer.FlowSequenceEnd, tokenizer.FlowMappingEnd:
		// An empty entry of a flow collection.
		if d.root == nil || (d.root.kind != KindMapping && d.root.kind != KindSequence) {
			d.setError("unexpected token", t)
			return nil
		}
		n = d.newNode(KindNull, emptyAt(t))
	case tokenizer.Error:
		return nil
	default:
		// Document boundaries, Block-End, Value: an empty node.
		n = d.newNode(KindNull, emptyAt(t))
	}

	if haveAnchor {
		n.anchor = d.text(anchor)[1:]
		n.rng.Start = min(n.rng.Start, anchor.Range.Start)
	}
	if haveTag {
		n.tag = d.text(tag)
		n.tagRng = tag.Range
		n.rng.Start = min(n.rng.Start, tag.Range.Start)
	}
	return n
}

func (d *Document) newCollection(kind Kind, style Style, t tokenizer.Token) *node {
	n := d.newNode(kind, t)
	n.style = style
	n.afterEntry = true
	return n
}

// emptyAt returns a token covering nothing at the start of t.
func emptyAt(t tokenizer.Token) tokenizer.Token {
	t.Range.End = t.Range.Start
	return t
}
