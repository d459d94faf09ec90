package renderq

import (
	"errors"
	"fmt"

	"github.com/gogpu/renderq/command"
)

// Error classes. Every error returned by Process matches exactly one of
// ErrProtocolViolation and ErrConstruction with errors.Is, unless it is
// ErrReentrantProcess or ErrProcessorFailed.
var (
	// ErrProtocolViolation marks a malformed command stream: a caller bug.
	ErrProtocolViolation = errors.New("renderq: protocol violation")

	// ErrConstruction marks a native resource that could not be created.
	ErrConstruction = errors.New("renderq: resource construction failed")
)

// Protocol violations.
var (
	// ErrUnknownCommand is returned for a command type outside the closed set.
	ErrUnknownCommand = errors.New("renderq: unknown command type")

	// ErrCommandMismatch is returned when a command's type tag does not
	// match its concrete type.
	ErrCommandMismatch = errors.New("renderq: command type does not match payload")

	// ErrNilResource is returned when a command references no descriptor.
	ErrNilResource = errors.New("renderq: command has no resource")

	// ErrSlotEmpty is returned when an unload targets a descriptor that is
	// not loaded.
	ErrSlotEmpty = errors.New("renderq: unload of resource that is not loaded")
)

var (
	// ErrReentrantProcess is returned when Process is called while another
	// Process call on the same processor is running.
	ErrReentrantProcess = errors.New("renderq: Process is not reentrant")

	// ErrProcessorFailed is returned by every Process call after one has
	// failed. The processor state is undefined past a failure.
	ErrProcessorFailed = errors.New("renderq: processor stopped after an earlier failure")
)

// Position locates a command within a queue.
type Position struct {
	List    int
	Command int
	Type    command.Type
}

func (p Position) String() string {
	return fmt.Sprintf("list %d command %d (%s)", p.List, p.Command, p.Type)
}

// ProtocolError reports a malformed command stream.
type ProtocolError struct {
	Position
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("renderq: protocol violation at %s: %v", e.Position, e.Err)
}

// Unwrap returns ErrProtocolViolation and the underlying error.
func (e *ProtocolError) Unwrap() []error {
	return []error{ErrProtocolViolation, e.Err}
}

// ConstructionError reports a native resource that could not be created.
type ConstructionError struct {
	Position
	Label string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("renderq: construct %q at %s: %v", e.Label, e.Position, e.Err)
}

// Unwrap returns ErrConstruction and the underlying error.
func (e *ConstructionError) Unwrap() []error {
	return []error{ErrConstruction, e.Err}
}

func protocolError(err error) error {
	return &ProtocolError{Err: err}
}

func constructionError(label string, err error) error {
	return &ConstructionError{Label: label, Err: err}
}

// locate records the queue position of a command in err.
func locate(err error, pos Position) error {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		pe.Position = pos
		return err
	}
	var ce *ConstructionError
	if errors.As(err, &ce) {
		ce.Position = pos
		return err
	}
	return &ProtocolError{Position: pos, Err: err}
}
