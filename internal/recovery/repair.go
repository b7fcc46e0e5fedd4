package recovery

import (
	"errors"
	"strings"
)

// ErrUnrepairable means no fully-closed prefix of the input could be found
var ErrUnrepairable = errors.New("no repairable JSON prefix found")

type frame struct {
	delim      byte
	afterColon bool
}

// completion marks a position right after a fully-closed element, together
// with the containers still open at that point.
type completion struct {
	pos   int
	stack []frame
}

// RepairJSON recovers a parseable document from generator output that was
// cut off mid-stream. It scans the text once, remembers the position after
// the last fully-closed element, truncates everything past it, and closes
// the containers still open at that point.
//
// A closed string only counts as an element when it sits in value position:
// object keys are never a safe truncation point because an object holding a
// bare key is not valid JSON.
func RepairJSON(text string) (string, error) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", ErrUnrepairable
	}
	text = text[start:]

	var (
		stack    []frame
		inString bool
		escaped  bool
		last     completion
	)

	record := func(pos int) {
		snapshot := make([]frame, len(stack))
		copy(snapshot, stack)
		last = completion{pos: pos, stack: snapshot}
	}

	// clears the value-pending flag on the enclosing object once a value closes
	valueDone := func() {
		if len(stack) > 0 {
			stack[len(stack)-1].afterColon = false
		}
	}

scan:
	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
				if len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.delim == '[' || top.afterColon {
						valueDone()
						record(i + 1)
					}
				}
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, frame{delim: c})
		case '}', ']':
			if len(stack) == 0 {
				break scan
			}
			top := stack[len(stack)-1]
			if (c == '}' && top.delim != '{') || (c == ']' && top.delim != '[') {
				break scan
			}
			stack = stack[:len(stack)-1]
			valueDone()
			record(i + 1)
			if len(stack) == 0 {
				break scan
			}
		case ':':
			if len(stack) > 0 && stack[len(stack)-1].delim == '{' {
				stack[len(stack)-1].afterColon = true
			}
		case ',':
			// a separator confirms the preceding value, which covers
			// numbers and literals the other cases never see
			if len(stack) > 0 {
				record(i)
				valueDone()
			}
		}
	}

	if last.pos == 0 {
		return "", ErrUnrepairable
	}

	repaired := strings.TrimRight(text[:last.pos], " \t\r\n,")
	for i := len(last.stack) - 1; i >= 0; i-- {
		switch last.stack[i].delim {
		case '{':
			repaired += "}"
		case '[':
			repaired += "]"
		}
	}
	return repaired, nil
}
