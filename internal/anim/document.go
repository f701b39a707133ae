package anim

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrNotFound is returned by name lookups that have no match.
var ErrNotFound = errors.New("not found")

// ErrReleased is returned when a released handle is used.
var ErrReleased = errors.New("handle already released")

// ShapeKind selects the primitive drawn for a shape.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
	ShapeTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeEllipse:
		return "ellipse"
	case ShapeTriangle:
		return "triangle"
	}
	return "unknown"
}

// Shape is a decoded vector primitive. Its geometry spans the box
// (-PivotX, -PivotY) .. (Width-PivotX, Height-PivotY) in shape-local space.
type Shape struct {
	Name   string
	Kind   ShapeKind
	X, Y   float64
	Width  float64
	Height float64
	PivotX float64
	PivotY float64
	Color  color.RGBA
}

// Animation is a decoded timeline. Tracks are resolved to poses at load time.
type Animation struct {
	Name       string
	FPS        float64
	Loop       bool
	frameCount int
	tracks     map[int][]Pose // shape index -> merged poses
}

// FrameCount returns the length of the longest track.
func (a *Animation) FrameCount() int { return a.frameCount }

// Duration returns the timeline length in seconds.
func (a *Animation) Duration() float64 {
	if a.FPS <= 0 {
		return 0
	}
	return float64(a.frameCount) / a.FPS
}

// sample returns the interpolated pose of a shape at time t (seconds).
// The second return value is false when the animation has no track for the shape.
func (a *Animation) sample(shape int, t float64) (Pose, bool) {
	poses, ok := a.tracks[shape]
	if !ok || len(poses) == 0 || a.frameCount == 0 {
		return Pose{}, false
	}

	at := func(i int) Pose {
		if i >= len(poses) {
			// shorter tracks hold their last keyframe
			return poses[len(poses)-1]
		}
		return poses[i]
	}

	logical := t * a.FPS
	if a.Loop {
		logical = math.Mod(logical, float64(a.frameCount))
		if logical < 0 {
			logical += float64(a.frameCount)
		}
		i := int(logical)
		return lerpPose(at(i), at((i+1)%a.frameCount), logical-float64(i)), true
	}

	last := a.frameCount - 1
	if logical >= float64(last) {
		return at(last), true
	}
	if logical < 0 {
		logical = 0
	}
	i := int(logical)
	return lerpPose(at(i), at(i+1), logical-float64(i)), true
}

// InputKind is the value type of a state machine input.
type InputKind int

const (
	InputNumber InputKind = iota
	InputBoolean
)

func (k InputKind) String() string {
	if k == InputBoolean {
		return "boolean"
	}
	return "number"
}

// InputDef declares a state machine input.
type InputDef struct {
	Name  string
	Kind  InputKind
	Value float64
}

// StateDef plays an animation while its condition holds.
// Input is -1 for the unconditioned fallback state.
type StateDef struct {
	Name      string
	Animation *Animation
	Input     int
	Equals    float64
}

// StateMachineDef is a decoded state machine. Instances are created with
// Runtime.NewStateMachineInstance.
type StateMachineDef struct {
	Name   string
	Inputs []InputDef
	States []StateDef
}

// ArtboardDef is the immutable definition shared by all instances of an artboard.
type ArtboardDef struct {
	Name          string
	Bounds        Rect
	Shapes        []Shape
	Animations    []*Animation
	StateMachines []*StateMachineDef
}

// AnimationByName returns the named animation.
func (d *ArtboardDef) AnimationByName(name string) (*Animation, bool) {
	for _, a := range d.Animations {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Document is a loaded animation document. It is immutable once loaded and
// owned by whoever called Runtime.Load; Release must be called on teardown.
type Document struct {
	runtime   *Runtime
	handle    Handle
	artboards []*ArtboardDef
	released  bool
}

// ArtboardNames lists the artboards in document order.
func (d *Document) ArtboardNames() []string {
	names := make([]string, len(d.artboards))
	for i, a := range d.artboards {
		names[i] = a.Name
	}
	return names
}

// Definition returns the definition of the named artboard without instantiating it.
func (d *Document) Definition(name string) (*ArtboardDef, bool) {
	for _, a := range d.artboards {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// ArtboardByName instantiates a fresh artboard. The caller owns the returned
// handle and must Release it.
func (d *Document) ArtboardByName(name string) (*Artboard, error) {
	if d.released {
		return nil, ErrReleased
	}
	def, ok := d.Definition(name)
	if !ok {
		return nil, fmt.Errorf("artboard %q: %w", name, ErrNotFound)
	}
	return newArtboard(d.runtime, def), nil
}

// Release frees the document. Artboards created from it stay valid until they
// are released themselves.
func (d *Document) Release() {
	if d.released {
		return
	}
	d.released = true
	d.runtime.release(d.handle)
}

// Released reports whether Release has been called.
func (d *Document) Released() bool { return d.released }

// buildDocument validates a decoded XML tree and resolves it into definitions.
func buildDocument(x *DocumentXML) ([]*ArtboardDef, error) {
	if len(x.Artboards) == 0 {
		return nil, fmt.Errorf("document has no artboards")
	}

	seen := make(map[string]bool)
	defs := make([]*ArtboardDef, 0, len(x.Artboards))
	for i := range x.Artboards {
		ax := &x.Artboards[i]
		if seen[ax.Name] {
			return nil, fmt.Errorf("duplicate artboard %q", ax.Name)
		}
		seen[ax.Name] = true

		def, err := buildArtboard(ax)
		if err != nil {
			return nil, fmt.Errorf("artboard %q: %w", ax.Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func buildArtboard(ax *ArtboardXML) (*ArtboardDef, error) {
	if ax.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	if ax.Width <= 0 || ax.Height <= 0 {
		return nil, fmt.Errorf("invalid size %gx%g", ax.Width, ax.Height)
	}

	def := &ArtboardDef{
		Name:   ax.Name,
		Bounds: Rect{MaxX: ax.Width, MaxY: ax.Height},
	}

	shapeIndex := make(map[string]int, len(ax.Shapes))
	for _, sx := range ax.Shapes {
		if _, dup := shapeIndex[sx.Name]; dup {
			return nil, fmt.Errorf("duplicate shape %q", sx.Name)
		}
		shape, err := buildShape(sx)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sx.Name, err)
		}
		shapeIndex[sx.Name] = len(def.Shapes)
		def.Shapes = append(def.Shapes, shape)
	}

	for _, anx := range ax.Animations {
		if _, dup := def.AnimationByName(anx.Name); dup {
			return nil, fmt.Errorf("duplicate animation %q", anx.Name)
		}
		a, err := buildAnimation(anx, def.Shapes, shapeIndex)
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", anx.Name, err)
		}
		def.Animations = append(def.Animations, a)
	}

	for _, smx := range ax.StateMachines {
		sm, err := buildStateMachine(smx, def)
		if err != nil {
			return nil, fmt.Errorf("state machine %q: %w", smx.Name, err)
		}
		def.StateMachines = append(def.StateMachines, sm)
	}

	return def, nil
}

func buildShape(sx ShapeXML) (Shape, error) {
	var kind ShapeKind
	switch sx.Kind {
	case "rect", "":
		kind = ShapeRect
	case "ellipse":
		kind = ShapeEllipse
	case "triangle":
		kind = ShapeTriangle
	default:
		return Shape{}, fmt.Errorf("unknown kind %q", sx.Kind)
	}

	clr, err := parseColor(sx.Color)
	if err != nil {
		return Shape{}, err
	}

	return Shape{
		Name:   sx.Name,
		Kind:   kind,
		X:      sx.X,
		Y:      sx.Y,
		Width:  sx.W,
		Height: sx.H,
		PivotX: sx.PX,
		PivotY: sx.PY,
		Color:  clr,
	}, nil
}

func buildAnimation(anx AnimationXML, shapes []Shape, shapeIndex map[string]int) (*Animation, error) {
	fps := float64(anx.FPS)
	if fps == 0 {
		fps = 24
	}
	if fps < 0 {
		return nil, fmt.Errorf("invalid fps %d", anx.FPS)
	}

	a := &Animation{
		Name:   anx.Name,
		FPS:    fps,
		Loop:   anx.Loop,
		tracks: make(map[int][]Pose, len(anx.Tracks)),
	}
	for _, tx := range anx.Tracks {
		idx, ok := shapeIndex[tx.Shape]
		if !ok {
			return nil, fmt.Errorf("track targets unknown shape %q", tx.Shape)
		}
		if _, dup := a.tracks[idx]; dup {
			return nil, fmt.Errorf("duplicate track for shape %q", tx.Shape)
		}
		a.tracks[idx] = mergeFrames(restPose(&shapes[idx]), tx.Frames)
		a.frameCount = max(a.frameCount, len(tx.Frames))
	}
	return a, nil
}

func buildStateMachine(smx StateMachineXML, ab *ArtboardDef) (*StateMachineDef, error) {
	sm := &StateMachineDef{Name: smx.Name}

	inputIndex := make(map[string]int, len(smx.Inputs))
	for _, ix := range smx.Inputs {
		var kind InputKind
		switch ix.Type {
		case "number":
			kind = InputNumber
		case "boolean":
			kind = InputBoolean
		default:
			return nil, fmt.Errorf("input %q: unknown type %q", ix.Name, ix.Type)
		}
		// duplicates are kept; lookups take the first match
		if _, dup := inputIndex[ix.Name]; !dup {
			inputIndex[ix.Name] = len(sm.Inputs)
		}
		sm.Inputs = append(sm.Inputs, InputDef{Name: ix.Name, Kind: kind, Value: ix.Value})
	}

	for _, stx := range smx.States {
		a, ok := ab.AnimationByName(stx.Animation)
		if !ok {
			return nil, fmt.Errorf("state %q: unknown animation %q", stx.Name, stx.Animation)
		}
		st := StateDef{Name: stx.Name, Animation: a, Input: -1, Equals: stx.Equals}
		if stx.Input != "" {
			idx, ok := inputIndex[stx.Input]
			if !ok {
				return nil, fmt.Errorf("state %q: unknown input %q", stx.Name, stx.Input)
			}
			st.Input = idx
		}
		sm.States = append(sm.States, st)
	}
	return sm, nil
}

// parseColor decodes "#rrggbb" or "#rrggbbaa". An empty string is opaque black.
func parseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{A: 0xff}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
