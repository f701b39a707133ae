// Package anim provides the vector animation runtime used by the loading scene.
//
// An animation document (.anim) is an XML file describing one or more artboards.
// Each artboard owns a list of vector shapes, a set of keyframed animations that
// move those shapes, and state machines that pick which animation plays based on
// named inputs. Documents are decoded once and then instantiated into Artboard and
// StateMachineInstance handles which must be released explicitly by their owner.
package anim

import "encoding/xml"

// DocumentXML is the root element of an animation document.
type DocumentXML struct {
	XMLName xml.Name `xml:"document"`

	// Version is the document format version. Only version 1 is understood.
	Version int `xml:"version,attr"`

	// Artboards is the list of drawable scenes in this document
	Artboards []ArtboardXML `xml:"artboard"`
}

// ArtboardXML describes a single drawable scene.
type ArtboardXML struct {
	// Name is used for lookups, e.g. "Different Walks Main"
	Name string `xml:"name,attr"`

	// Width and Height define the artboard bounds in artwork units.
	// The bounds always start at (0, 0).
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`

	// Shapes are drawn in document order (first shape is at the back)
	Shapes []ShapeXML `xml:"shape"`

	Animations    []AnimationXML    `xml:"animation"`
	StateMachines []StateMachineXML `xml:"statemachine"`
}

// ShapeXML is a filled vector primitive.
type ShapeXML struct {
	Name string `xml:"name,attr"`

	// Kind is one of "rect", "ellipse" or "triangle"
	Kind string `xml:"kind,attr"`

	// X and Y are the rest position of the shape pivot in artboard space
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`

	// W and H are the size of the shape's bounding box
	W float64 `xml:"w,attr"`
	H float64 `xml:"h,attr"`

	// PX and PY locate the pivot inside the bounding box
	PX float64 `xml:"px,attr"`
	PY float64 `xml:"py,attr"`

	// Color is a hex color, "#rrggbb" or "#rrggbbaa"
	Color string `xml:"color,attr"`
}

// AnimationXML is a keyframed timeline.
type AnimationXML struct {
	Name string `xml:"name,attr"`

	// FPS is the keyframe rate. Defaults to 24 when omitted.
	FPS int `xml:"fps,attr"`

	// Loop makes the timeline wrap around instead of holding the last frame
	Loop bool `xml:"loop,attr"`

	Tracks []TrackXML `xml:"track"`
}

// TrackXML animates a single shape.
type TrackXML struct {
	// Shape is the name of the animated shape
	Shape string `xml:"shape,attr"`

	// Frames is the keyframe sequence, one entry per animation frame
	Frames []Frame `xml:"t"`
}

// Frame is a single keyframe. All fields are optional and use pointer types to
// support null values. When a field is null its value is inherited from the
// previous frame (cumulative inheritance), or from the shape's rest pose for the
// first frame.
type Frame struct {
	// FrameNum controls visibility:
	// - nil: inherit from previous frame
	// - -1: hide the shape in this frame
	// - 0 or positive: show the shape
	FrameNum *int `xml:"f,omitempty"`

	// X and Y are the pivot position in artboard space
	X *float64 `xml:"x,omitempty"`
	Y *float64 `xml:"y,omitempty"`

	// ScaleX and ScaleY are scale factors (1.0 = rest size)
	ScaleX *float64 `xml:"sx,omitempty"`
	ScaleY *float64 `xml:"sy,omitempty"`

	// SkewX and SkewY are skew angles in degrees. Equal values rotate the shape.
	SkewX *float64 `xml:"kx,omitempty"`
	SkewY *float64 `xml:"ky,omitempty"`

	// Alpha is the opacity in [0, 1]
	Alpha *float64 `xml:"a,omitempty"`
}

// StateMachineXML selects an animation based on input values.
type StateMachineXML struct {
	Name   string     `xml:"name,attr"`
	Inputs []InputXML `xml:"input"`
	States []StateXML `xml:"state"`
}

// InputXML declares a named, typed input with its initial value.
type InputXML struct {
	Name string `xml:"name,attr"`

	// Type is "number" or "boolean"
	Type string `xml:"type,attr"`

	// Value is the initial value. Booleans use 0 and 1.
	Value float64 `xml:"value,attr"`
}

// StateXML plays Animation while the condition holds.
// A state without an input condition is the fallback state.
type StateXML struct {
	Name      string  `xml:"name,attr"`
	Animation string  `xml:"animation,attr"`
	Input     string  `xml:"input,attr,omitempty"`
	Equals    float64 `xml:"equals,attr,omitempty"`
}
