package game

import "fmt"

// Asset load operations reported by AssetLoadError.
const (
	OpFetch  = "fetch"
	OpDecode = "decode"
)

// AssetLoadError reports an animation document that could not be fetched or
// decoded.
type AssetLoadError struct {
	Path string
	Op   string // OpFetch or OpDecode
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("failed to %s animation document %s: %v", e.Op, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// AssetContractError reports a loaded document that lacks a named artboard,
// state machine or input the scene depends on, or has one of the wrong type.
type AssetContractError struct {
	Document string
	Kind     string // "artboard", "state machine" or "input"
	Name     string
	Err      error
}

func (e *AssetContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("animation document %s: %s %q: %v", e.Document, e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("animation document %s: missing %s %q", e.Document, e.Kind, e.Name)
}

func (e *AssetContractError) Unwrap() error { return e.Err }
