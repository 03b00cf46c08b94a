package plan

// Shape is the wire shape a compiled type commits to
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeLeaf
	ShapeBlob
	ShapePointer
	ShapeStruct
	ShapeTuple
	ShapeEmpty
	ShapeEnum
)

var shapeNames = [...]string{
	ShapeInvalid: "invalid",
	ShapeLeaf:    "leaf",
	ShapeBlob:    "blob",
	ShapePointer: "pointer",
	ShapeStruct:  "struct",
	ShapeTuple:   "tuple",
	ShapeEmpty:   "empty",
	ShapeEnum:    "enum",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Leaf discriminates scalar leaf conversions
type Leaf uint8

const (
	LeafNone Leaf = iota
	LeafBool
	LeafInt
	LeafUint
	LeafFloat
	LeafString
	LeafBytes
	LeafText
	LeafBinary
)

var leafNames = [...]string{
	LeafNone:   "none",
	LeafBool:   "bool",
	LeafInt:    "int",
	LeafUint:   "uint",
	LeafFloat:  "float",
	LeafString: "string",
	LeafBytes:  "bytes",
	LeafText:   "text",
	LeafBinary: "binary",
}

func (l Leaf) String() string {
	if int(l) < len(leafNames) {
		return leafNames[l]
	}
	return "unknown"
}

// SingleArg reports whether the shape encodes to exactly one wire
// argument, the requirement for positional record elements
func (s Shape) SingleArg() bool {
	switch s {
	case ShapeLeaf, ShapeBlob, ShapeEnum:
		return true
	default:
		return false
	}
}
