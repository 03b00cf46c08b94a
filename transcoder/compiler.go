package transcoder

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/redis-codec/blob"
	"github.com/wippyai/redis-codec/casing"
	"github.com/wippyai/redis-codec/errors"
	"github.com/wippyai/redis-codec/transcoder/internal/plan"
)

type Compiler struct {
	mu      sync.RWMutex
	options map[reflect.Type]typeOptions
	cache   sync.Map // reflect.Type -> *plan.CompiledType
}

func NewCompiler() *Compiler {
	return &Compiler{
		options: make(map[reflect.Type]typeOptions),
	}
}

var defaultCompiler = NewCompiler()

// Default returns the package-level compiler used by Register, Encode,
// Marshal and Decode.
func Default() *Compiler {
	return defaultCompiler
}

// Register records type-level directives for T on the default compiler
// and compiles its plan immediately, so configuration errors surface at
// registration time rather than on first use.
func Register[T any](opts ...Option) error {
	return defaultCompiler.RegisterType(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// MustRegister is like Register but panics on configuration errors
func MustRegister[T any](opts ...Option) {
	if err := Register[T](opts...); err != nil {
		panic(err)
	}
}

// RegisterEnum declares T as an enum with the given variant names in
// declaration order; a variant's ordinal is its index.
func RegisterEnum[T any](names ...string) error {
	return Register[T](Variants(names...))
}

// MustRegisterEnum is like RegisterEnum but panics on configuration errors
func MustRegisterEnum[T any](names ...string) {
	if err := RegisterEnum[T](names...); err != nil {
		panic(err)
	}
}

// RegisterType records type-level directives for t and compiles its
// plan. Registration is rejected once a plan for t exists: directives
// are resolved exactly once, and plans never change after first use.
func (c *Compiler) RegisterType(t reflect.Type, opts ...Option) error {
	if t == nil {
		return errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("type cannot be nil").
			Build()
	}

	var o typeOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.positional && o.variants != nil {
		return errors.Registration(t.String(), "positional and variant directives are mutually exclusive")
	}
	if o.positional && t.Kind() != reflect.Struct {
		return errors.Registration(t.String(), "positional records must be struct types")
	}
	if o.variants == nil && o.variantTokens != nil {
		return errors.Registration(t.String(), "variant token overrides require variant names")
	}
	if o.variants == nil && t.Kind() != reflect.Struct {
		return errors.Registration(t.String(), "only struct and enum types take directives")
	}

	if _, compiled := c.cache.Load(t); compiled {
		return errors.Registration(t.String(), "type already compiled; register before first use")
	}

	c.mu.Lock()
	if _, dup := c.options[t]; dup {
		c.mu.Unlock()
		return errors.Registration(t.String(), "already registered")
	}
	c.options[t] = o
	c.mu.Unlock()

	if _, err := c.Compile(t); err != nil {
		c.mu.Lock()
		delete(c.options, t)
		c.mu.Unlock()
		return err
	}

	Logger().Debug("registered type",
		zap.String("type", t.String()),
		zap.Stringer("rule", o.rule),
		zap.Bool("positional", o.positional),
		zap.Int("variants", len(o.variants)))
	return nil
}

func (c *Compiler) lookupOptions(t reflect.Type) (typeOptions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.options[t]
	return o, ok
}

// Compile returns the plan for t, building and caching it on first use.
// Unregistered struct types compile with identity naming.
func (c *Compiler) Compile(t reflect.Type) (*plan.CompiledType, error) {
	if t == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("type cannot be nil").
			Build()
	}
	if cached, ok := c.cache.Load(t); ok {
		return cached.(*plan.CompiledType), nil
	}

	b := &builder{
		compiler: c,
		building: make(map[reflect.Type]*plan.CompiledType),
	}
	ct, err := b.compile(t, nil)
	if err != nil {
		return nil, err
	}

	// Publish every plan built in this pass. Concurrent builders may
	// race; the first store wins and results are equivalent.
	for typ, built := range b.building {
		c.cache.LoadOrStore(typ, built)
	}
	if cached, ok := c.cache.Load(t); ok {
		ct = cached.(*plan.CompiledType)
	}

	Logger().Debug("compiled plan",
		zap.String("type", t.String()),
		zap.Stringer("shape", ct.Shape))
	return ct, nil
}

// builder tracks in-progress plans within one Compile pass so recursive
// types resolve to their own partially built plan instead of looping.
type builder struct {
	compiler *Compiler
	building map[reflect.Type]*plan.CompiledType
}

func (b *builder) compile(t reflect.Type, path []string) (*plan.CompiledType, error) {
	if cached, ok := b.compiler.cache.Load(t); ok {
		return cached.(*plan.CompiledType), nil
	}
	if building, ok := b.building[t]; ok {
		return building, nil
	}

	ct := &plan.CompiledType{GoType: t}
	b.building[t] = ct
	if err := b.fill(ct, t, path); err != nil {
		return nil, err
	}
	return ct, nil
}

// fill dispatches on registration directives first, then marshaler
// interfaces, then the reflect kind. Each branch sets ct.Shape before
// recursing so in-progress plans carry a usable shape.
func (b *builder) fill(ct *plan.CompiledType, t reflect.Type, path []string) error {
	if o, ok := b.compiler.lookupOptions(t); ok && o.variants != nil {
		return b.fillEnum(ct, t, o, path)
	}

	if t.Kind() == reflect.Ptr {
		ct.Shape = plan.ShapePointer
		elem, err := b.compile(t.Elem(), path)
		if err != nil {
			return err
		}
		ct.Elem = elem
		return nil
	}

	// Marshaler interfaces win over kind dispatch so types like
	// time.Time and uuid.UUID pass through their text forms.
	if ok, ptrRecv := implementsText(t); ok {
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafText
		ct.TextPtr = ptrRecv
		return nil
	}
	if ok, ptrRecv := implementsBinary(t); ok {
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafBinary
		ct.BinaryPtr = ptrRecv
		return nil
	}

	switch t.Kind() {
	case reflect.Bool:
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafUint
	case reflect.Float32, reflect.Float64:
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafFloat
	case reflect.String:
		ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			ct.Shape, ct.Leaf = plan.ShapeLeaf, plan.LeafBytes
			return nil
		}
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("slice fields require a blob codec directive, e.g. `redis:\",json\"`").
			Build()
	case reflect.Map:
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("map fields require a blob codec directive, e.g. `redis:\",json\"`").
			Build()
	case reflect.Array:
		return b.fillArray(ct, t, path)
	case reflect.Struct:
		o, _ := b.compiler.lookupOptions(t)
		if o.positional {
			return b.fillPositional(ct, t, path)
		}
		if t.NumField() == 0 {
			ct.Shape = plan.ShapeEmpty
			return nil
		}
		return b.fillStruct(ct, t, o.rule, path)
	case reflect.Interface:
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("interface fields are not supported; use a concrete struct or enum type").
			Build()
	default:
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("%s types are not supported", t.Kind()).
			Build()
	}
	return nil
}

func (b *builder) fillArray(ct *plan.CompiledType, t reflect.Type, path []string) error {
	ct.Shape = plan.ShapeTuple
	elem, err := b.compile(t.Elem(), path)
	if err != nil {
		return err
	}
	if !elem.Shape.SingleArg() {
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("positional elements must encode to exactly one argument, %s has shape %s",
				t.Elem().String(), elem.Shape).
			Build()
	}
	fields := make([]plan.Field, t.Len())
	for i := range fields {
		fields[i] = plan.Field{Type: elem}
	}
	ct.Fields = fields
	return nil
}

func (b *builder) fillPositional(ct *plan.CompiledType, t reflect.Type, path []string) error {
	ct.Shape = plan.ShapeTuple
	fields := make([]plan.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fpath := childPath(path, sf.Name)

		var tag fieldTag
		if raw, ok := sf.Tag.Lookup(tagKey); ok {
			var err error
			tag, err = parseTag(raw, fpath)
			if err != nil {
				return err
			}
		}
		if tag.skip {
			return errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(fpath...).
				Detail("positional records cannot skip fields").
				Build()
		}
		if tag.name != "" {
			return errors.InvalidMapping(fpath, tag.name, "is not allowed on positional fields")
		}

		ftype, err := b.fieldPlan(sf.Type, tag.codec, fpath)
		if err != nil {
			return err
		}
		if !ftype.Shape.SingleArg() {
			return errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(fpath...).
				GoType(sf.Type.String()).
				Detail("positional elements must encode to exactly one argument, shape is %s", ftype.Shape).
				Build()
		}
		fields = append(fields, plan.Field{Type: ftype, Name: sf.Name, Index: sf.Index})
	}
	ct.Fields = fields
	return nil
}

func (b *builder) fillStruct(ct *plan.CompiledType, t reflect.Type, rule casing.Rule, path []string) error {
	ct.Shape = plan.ShapeStruct
	fields, err := b.structFields(t, rule, path)
	if err != nil {
		return err
	}

	// A record whose every field is skipped or unexported has no wire
	// representation of its own and behaves like a zero-field record.
	if len(fields) == 0 {
		ct.Shape = plan.ShapeEmpty
		return nil
	}

	// Wire names must be unique at each nesting level and must not
	// collide with the dotted nesting separator.
	seen := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.WireName == "" {
			return errors.InvalidMapping(childPath(path, f.Name), f.WireName, "must not be empty")
		}
		if strings.Contains(f.WireName, ".") {
			return errors.InvalidMapping(childPath(path, f.Name), f.WireName, "must not contain '.'")
		}
		if first, dup := seen[f.WireName]; dup {
			return errors.DuplicateMapping(path, f.WireName, first, f.Name)
		}
		seen[f.WireName] = f.Name

		if eff := f.Type.Unwrap(); eff.Shape == plan.ShapeTuple {
			return errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(childPath(path, f.Name)...).
				GoType(eff.GoType.String()).
				Detail("positional records cannot nest inside named records; use a blob codec").
				Build()
		}
	}

	ct.Fields = fields
	return nil
}

func (b *builder) structFields(t reflect.Type, rule casing.Rule, path []string) ([]plan.Field, error) {
	fields := make([]plan.Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fpath := childPath(path, sf.Name)

		var tag fieldTag
		if raw, ok := sf.Tag.Lookup(tagKey); ok {
			var err error
			tag, err = parseTag(raw, fpath)
			if err != nil {
				return nil, err
			}
		}
		if tag.skip {
			continue
		}

		if sf.Anonymous && tag.name == "" && tag.codec == "" {
			promoted, err := b.promote(sf, fpath)
			if err != nil {
				return nil, err
			}
			if promoted != nil {
				fields = append(fields, promoted...)
				continue
			}
		}

		ftype, err := b.fieldPlan(sf.Type, tag.codec, fpath)
		if err != nil {
			return nil, err
		}

		fields = append(fields, plan.Field{
			Type:     ftype,
			Name:     sf.Name,
			WireName: casing.Resolve(sf.Name, rule, tag.name),
			Index:    sf.Index,
		})
	}
	return fields, nil
}

// promote inlines the fields of an untagged anonymous struct field into
// the parent level. Embedded types that compile to a non-struct shape
// return (nil, nil) and are handled as regular named fields.
func (b *builder) promote(sf reflect.StructField, fpath []string) ([]plan.Field, error) {
	t := sf.Type
	if t.Kind() == reflect.Ptr {
		if t.Elem().Kind() == reflect.Struct {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(fpath...).
				GoType(t.String()).
				Detail("embedded pointer fields are not supported").
				Build()
		}
		return nil, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	sub, err := b.compile(t, fpath)
	if err != nil {
		return nil, err
	}
	switch sub.Shape {
	case plan.ShapeStruct:
		promoted := make([]plan.Field, len(sub.Fields))
		for j, f := range sub.Fields {
			idx := make([]int, 0, len(sf.Index)+len(f.Index))
			idx = append(idx, sf.Index...)
			idx = append(idx, f.Index...)
			promoted[j] = plan.Field{Type: f.Type, Name: f.Name, WireName: f.WireName, Index: idx}
		}
		return promoted, nil
	case plan.ShapeEmpty:
		return []plan.Field{}, nil
	case plan.ShapeTuple:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(fpath...).
			GoType(t.String()).
			Detail("positional records cannot be embedded").
			Build()
	default:
		return nil, nil
	}
}

// fieldPlan compiles one field type, honoring a blob codec directive.
// A pointer field with a codec keeps optional semantics: the pointer
// wraps the blob plan.
func (b *builder) fieldPlan(t reflect.Type, codecName string, path []string) (*plan.CompiledType, error) {
	if codecName == "" {
		return b.compile(t, path)
	}
	if t.Kind() == reflect.Ptr {
		elem, err := b.fieldPlan(t.Elem(), codecName, path)
		if err != nil {
			return nil, err
		}
		return &plan.CompiledType{GoType: t, Shape: plan.ShapePointer, Elem: elem}, nil
	}
	c, ok := blob.Lookup(codecName)
	if !ok {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidMapping).
			Path(path...).
			Detail("unknown blob codec %q (registered: %s)", codecName, strings.Join(blob.Names(), ", ")).
			Build()
	}
	return &plan.CompiledType{GoType: t, Shape: plan.ShapeBlob, Codec: c}, nil
}

func (b *builder) fillEnum(ct *plan.CompiledType, t reflect.Type, o typeOptions, path []string) error {
	ct.Shape = plan.ShapeEnum

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("enum types must have an integer kind, got %s", t.Kind()).
			Build()
	}
	if len(o.variants) == 0 {
		return errors.Registration(t.String(), "enum registration requires at least one variant")
	}

	declared := make(map[string]bool, len(o.variants))
	for _, name := range o.variants {
		declared[name] = true
	}
	for name := range o.variantTokens {
		if !declared[name] {
			return errors.Registration(t.String(), fmt.Sprintf("token override for unknown variant %q", name))
		}
	}

	variants := make([]plan.Variant, len(o.variants))
	index := make(map[string]int, len(o.variants))
	for i, name := range o.variants {
		if name == "" {
			return errors.Registration(t.String(), "variant names must not be empty")
		}
		token := casing.Resolve(name, o.rule, o.variantTokens[name])
		if prev, dup := index[token]; dup {
			return errors.DuplicateMapping(path, token, o.variants[prev], name)
		}
		variants[i] = plan.Variant{Name: name, Token: token}
		index[token] = i
	}

	maxOrdinal := int64(len(variants) - 1)
	probe := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if probe.OverflowInt(maxOrdinal) {
			return errors.Registration(t.String(), fmt.Sprintf("%d variants exceed the range of %s", len(variants), t.Kind()))
		}
	default:
		if probe.OverflowUint(uint64(maxOrdinal)) {
			return errors.Registration(t.String(), fmt.Sprintf("%d variants exceed the range of %s", len(variants), t.Kind()))
		}
	}

	ct.Variants = variants
	ct.TokenIndex = index
	return nil
}

var (
	textMarshalerType     = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType   = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	binaryMarshalerType   = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()
	binaryUnmarshalerType = reflect.TypeOf((*encoding.BinaryUnmarshaler)(nil)).Elem()
)

// implementsText reports whether t round-trips through
// encoding.TextMarshaler/TextUnmarshaler and whether marshaling needs a
// pointer receiver.
func implementsText(t reflect.Type) (ok, ptrRecv bool) {
	pt := reflect.PointerTo(t)
	if !pt.Implements(textUnmarshalerType) {
		return false, false
	}
	if t.Implements(textMarshalerType) {
		return true, false
	}
	if pt.Implements(textMarshalerType) {
		return true, true
	}
	return false, false
}

func implementsBinary(t reflect.Type) (ok, ptrRecv bool) {
	pt := reflect.PointerTo(t)
	if !pt.Implements(binaryUnmarshalerType) {
		return false, false
	}
	if t.Implements(binaryMarshalerType) {
		return true, false
	}
	if pt.Implements(binaryMarshalerType) {
		return true, true
	}
	return false, false
}

// childPath copies path with name appended so sibling fields never
// share a backing array
func childPath(path []string, name string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), name)
}
