package element

// Kind identifies a physical quantity dimension of a model element.
type Kind string

const (
	// KindArea is a surface area in square meters.
	KindArea Kind = "area"
	// KindLength is a length in meters.
	KindLength Kind = "length"
	// KindVolume is a volume in cubic meters.
	KindVolume Kind = "volume"
	// KindCount is a synthetic piece count, always available as a fallback.
	KindCount Kind = "count"
)

// Epsilon is the threshold below which a magnitude counts as missing.
// Model exports regularly contain near-zero artifacts from geometry
// processing, which must not be mistaken for real quantities.
const Epsilon = 1e-9

// priority is the fixed selection order when no kind is requested.
var priority = []Kind{KindArea, KindLength, KindVolume, KindCount}

// units and labels per kind, as displayed downstream.
var units = map[Kind]string{
	KindArea:   "m²",
	KindLength: "m",
	KindVolume: "m³",
	KindCount:  "pcs",
}

var labels = map[Kind]string{
	KindArea:   "Area",
	KindLength: "Length",
	KindVolume: "Volume",
	KindCount:  "Count",
}

// Element is a model-derived building element tagged with a classification
// code and its measured quantities. It is treated as immutable by the
// mapping core.
type Element struct {
	// ID is the stable identifier of the element (e.g. the IFC GUID).
	ID string `json:"id"`

	// Code is the raw classification code as tagged in the model.
	Code string `json:"code"`

	// Quantities maps a quantity kind to its model-derived magnitude.
	Quantities map[Kind]float64 `json:"quantities,omitempty"`

	// Overrides maps a quantity kind to a user-edited magnitude.
	// An override always wins over the model-derived magnitude.
	Overrides map[Kind]float64 `json:"overrides,omitempty"`
}

// Valid reports whether the element is identified. Unidentified elements
// cannot even supply the synthetic count quantity.
func (e Element) Valid() bool {
	return e.ID != ""
}

// Quantity is a selected magnitude together with its display metadata.
type Quantity struct {
	// Kind is the quantity dimension this magnitude belongs to.
	Kind Kind `json:"kind"`

	// Magnitude is the numeric value in the kind's unit.
	Magnitude float64 `json:"magnitude"`

	// Unit is the display unit (m², m, m³, pcs).
	Unit string `json:"unit"`

	// Label is the human-readable kind name.
	Label string `json:"label"`
}

// Magnitude returns the effective magnitude of the given kind for an
// element, honoring overrides, and whether that magnitude is usable.
// For count, a valid element always yields at least the synthetic 1.
func Magnitude(e Element, kind Kind) (float64, bool) {
	if v, ok := e.Overrides[kind]; ok {
		return v, v > Epsilon
	}
	if v, ok := e.Quantities[kind]; ok && v > Epsilon {
		return v, true
	}
	if kind == KindCount {
		if !e.Valid() {
			return 0, false
		}
		return 1, true
	}
	return 0, false
}

// Available returns the usable quantities of an element in priority order.
// Count is always present for a valid element.
func Available(e Element) []Quantity {
	out := make([]Quantity, 0, len(priority))
	for _, kind := range priority {
		if v, ok := Magnitude(e, kind); ok {
			out = append(out, Quantity{
				Kind:      kind,
				Magnitude: v,
				Unit:      units[kind],
				Label:     labels[kind],
			})
		}
	}
	return out
}

// Select picks a quantity for the element. If kind is non-empty and the
// element carries a usable magnitude for it (override first, then model
// value), that quantity is returned. Otherwise selection falls back to the
// first usable quantity in priority order. A zero Quantity is returned
// only for invalid elements.
func Select(e Element, kind Kind) Quantity {
	if kind != "" {
		if v, ok := Magnitude(e, kind); ok {
			return Quantity{Kind: kind, Magnitude: v, Unit: units[kind], Label: labels[kind]}
		}
	}
	for _, k := range priority {
		if v, ok := Magnitude(e, k); ok {
			return Quantity{Kind: k, Magnitude: v, Unit: units[k], Label: labels[k]}
		}
	}
	return Quantity{}
}

// HasMissingQuantity reports whether the element lacks a usable magnitude
// for the given kind. Count is missing only for invalid elements, since it
// is otherwise synthesized.
func HasMissingQuantity(e Element, kind Kind) bool {
	if kind == KindCount {
		return !e.Valid()
	}
	_, ok := Magnitude(e, kind)
	return !ok
}
