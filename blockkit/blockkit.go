// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package blockkit

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Block and text object types, as named by the Slack API.
const (
	TypeDivider = "divider"
	TypeSection = "section"
	TypeContext = "context"
	TypeMrkdwn  = "mrkdwn"
)

// ErrUnknownBlockType is returned when decoding a block of an unsupported type.
var ErrUnknownBlockType = errors.New("unknown block type")

// TextObject is a piece of Slack-formatted text.
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Mrkdwn returns a TextObject in Slack's markdown dialect.
func Mrkdwn(text string) TextObject {
	return TextObject{Type: TypeMrkdwn, Text: text}
}

// Block is one visual unit of a message.
type Block interface {
	// BlockType returns the Slack block type, e.g. "section".
	BlockType() string
	// IsEmpty reports whether the block has nothing to show.
	IsEmpty() bool
}

// Divider is a horizontal rule.
type Divider struct{}

// BlockType implements Block.
func (Divider) BlockType() string { return TypeDivider }

// IsEmpty implements Block. A divider is never empty.
func (Divider) IsEmpty() bool { return false }

// MarshalJSON implements json.Marshaler.
func (Divider) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{TypeDivider})
}

// Section is a block of text, a grid of fields, or both.
type Section struct {
	Text   *TextObject
	Fields []TextObject
}

// BlockType implements Block.
func (*Section) BlockType() string { return TypeSection }

// IsEmpty implements Block.
func (s *Section) IsEmpty() bool {
	return s == nil || (s.Text == nil && len(s.Fields) == 0)
}

// MarshalJSON implements json.Marshaler. Absent text and fields are omitted.
func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(sectionJSON{
		Type:   TypeSection,
		Text:   s.Text,
		Fields: s.Fields,
	})
}

type sectionJSON struct {
	Type   string       `json:"type"`
	Text   *TextObject  `json:"text,omitempty"`
	Fields []TextObject `json:"fields,omitempty"`
}

// Context is a row of small, muted text.
type Context struct {
	Elements []TextObject
}

// BlockType implements Block.
func (*Context) BlockType() string { return TypeContext }

// IsEmpty implements Block.
func (c *Context) IsEmpty() bool {
	return c == nil || len(c.Elements) == 0
}

// MarshalJSON implements json.Marshaler.
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(contextJSON{Type: TypeContext, Elements: c.Elements})
}

type contextJSON struct {
	Type     string       `json:"type"`
	Elements []TextObject `json:"elements"`
}

// Message is the payload posted to an incoming webhook.
type Message struct {
	Blocks []Block
}

// Append adds blocks to the message, skipping nil and empty ones.
func (m *Message) Append(blocks ...Block) *Message {
	for _, b := range blocks {
		if b == nil || b.IsEmpty() {
			continue
		}
		m.Blocks = append(m.Blocks, b)
	}
	return m
}

// MarshalJSON implements json.Marshaler. A message without blocks encodes
// as {"blocks":[]}.
func (m *Message) MarshalJSON() ([]byte, error) {
	blocks := m.Blocks
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(struct {
		Blocks []Block `json:"blocks"`
	}{blocks})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	blocks := make([]Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		b, err := decodeBlock(rb)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	m.Blocks = blocks
	return nil
}

func decodeBlock(data []byte) (Block, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case TypeDivider:
		return Divider{}, nil
	case TypeSection:
		var s sectionJSON
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return &Section{Text: s.Text, Fields: s.Fields}, nil
	case TypeContext:
		var c contextJSON
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &Context{Elements: c.Elements}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, head.Type)
	}
}
