package transcoder

import (
	"github.com/wippyai/redis-codec/transcoder/internal/plan"
)

type Shape = plan.Shape

const (
	ShapeLeaf    = plan.ShapeLeaf
	ShapeBlob    = plan.ShapeBlob
	ShapePointer = plan.ShapePointer
	ShapeStruct  = plan.ShapeStruct
	ShapeTuple   = plan.ShapeTuple
	ShapeEmpty   = plan.ShapeEmpty
	ShapeEnum    = plan.ShapeEnum
)

type CompiledType = plan.CompiledType
type CompiledField = plan.Field
type CompiledVariant = plan.Variant
