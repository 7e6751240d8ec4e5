package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/textrope/internal/engine/rope"
	"github.com/dshills/textrope/internal/engine/tracking"
)

// Op names an edit step.
type Op string

// Supported operations.
const (
	OpInsert    Op = "insert"
	OpDelete    Op = "delete"
	OpReplace   Op = "replace"
	OpAppend    Op = "append"
	OpSubstr    Op = "substr"
	OpSnapshot  Op = "snapshot"
	OpRestore   Op = "restore"
	OpRebalance Op = "rebalance"
)

// Errors returned by script operations.
var (
	ErrUnknownOp    = errors.New("unknown op")
	ErrMissingField = errors.New("missing field")
	ErrNegative     = errors.New("negative position or count")
	ErrNoSnapshots  = errors.New("script needs a snapshot manager")
)

// Step is a single edit.
type Step struct {
	Op    Op     `yaml:"op"`
	At    int    `yaml:"at,omitempty"`
	Count int    `yaml:"count,omitempty"`
	Text  string `yaml:"text,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`

	// hasText records which steps set the text key, so an explicit empty
	// string is accepted.
	hasText []bool
}

// ParseError reports a script that could not be decoded.
type ParseError struct {
	Source  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Source, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// StepError reports a step that failed validation.
type StepError struct {
	Index int
	Op    Op
	Err   error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// rawStep tracks whether the text key was present.
type rawStep struct {
	Op    Op      `yaml:"op"`
	At    int     `yaml:"at"`
	Count int     `yaml:"count"`
	Text  *string `yaml:"text"`
	Name  string  `yaml:"name"`
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	return parse("<input>", data)
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(source string, data []byte) (*Script, error) {
	var doc struct {
		Steps []rawStep `yaml:"steps"`
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Source: source, Message: err.Error(), Err: err}
	}

	s := &Script{
		Steps:   make([]Step, 0, len(doc.Steps)),
		hasText: make([]bool, 0, len(doc.Steps)),
	}
	for _, raw := range doc.Steps {
		step := Step{Op: raw.Op, At: raw.At, Count: raw.Count, Name: raw.Name}
		if raw.Text != nil {
			step.Text = *raw.Text
		}
		s.Steps = append(s.Steps, step)
		s.hasText = append(s.hasText, raw.Text != nil)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every step. Steps built in code, rather than parsed,
// count an empty text as present.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		hasText := step.Text != ""
		if i < len(s.hasText) {
			hasText = hasText || s.hasText[i]
		} else {
			hasText = true
		}
		if err := step.validate(hasText); err != nil {
			return &StepError{Index: i, Op: step.Op, Err: err}
		}
	}
	return nil
}

func (st Step) validate(hasText bool) error {
	if st.At < 0 || st.Count < 0 {
		return ErrNegative
	}

	switch st.Op {
	case OpInsert, OpReplace, OpAppend:
		if !hasText {
			return fmt.Errorf("%w: text", ErrMissingField)
		}
	case OpSnapshot, OpRestore:
		if st.Name == "" {
			return fmt.Errorf("%w: name", ErrMissingField)
		}
	case OpDelete, OpSubstr, OpRebalance:
	case "":
		return fmt.Errorf("%w: op", ErrMissingField)
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
	return nil
}

// Apply runs the steps against text and returns the result. The input text
// is never modified. Snapshot and restore steps use snaps, which may be nil
// for scripts without them. The context is checked before each step.
func (s *Script) Apply(ctx context.Context, text rope.Text, snaps *tracking.SnapshotManager) (rope.Text, error) {
	for i, step := range s.Steps {
		select {
		case <-ctx.Done():
			return text, ctx.Err()
		default:
		}

		next, err := step.apply(text, snaps)
		if err != nil {
			return text, &StepError{Index: i, Op: step.Op, Err: err}
		}
		text = next
	}
	return text, nil
}

func (st Step) apply(text rope.Text, snaps *tracking.SnapshotManager) (rope.Text, error) {
	switch st.Op {
	case OpInsert:
		return text.Insert(st.At, rope.FromString(st.Text)), nil
	case OpDelete:
		return text.Delete(st.At, st.Count), nil
	case OpReplace:
		return text.Replace(st.At, st.Count, rope.FromString(st.Text)), nil
	case OpAppend:
		return text.Concat(rope.FromString(st.Text)), nil
	case OpSubstr:
		return text.Substr(st.At, st.Count), nil
	case OpRebalance:
		return text.Rebalance(), nil
	case OpSnapshot:
		if snaps == nil {
			return text, ErrNoSnapshots
		}
		snaps.Create(st.Name, text)
		return text, nil
	case OpRestore:
		if snaps == nil {
			return text, ErrNoSnapshots
		}
		snap, err := snaps.Lookup(st.Name)
		if err != nil {
			return text, err
		}
		return snap.Text(), nil
	default:
		return text, fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
}
