package rediscodec

// ArgWriter is the write sink for encoded wire arguments. Encoders
// append one binary argument at a time; the writer takes ownership of
// arg and callers must not modify it afterwards.
type ArgWriter interface {
	WriteArg(arg []byte)
}

// ArgSlice collects encoded arguments in order. The zero value is
// ready to use.
type ArgSlice [][]byte

// WriteArg appends one argument
func (a *ArgSlice) WriteArg(arg []byte) {
	*a = append(*a, arg)
}

// Strings renders the collected arguments, mainly for tests and
// diagnostics. Binary payloads are converted as-is.
func (a ArgSlice) Strings() []string {
	out := make([]string, len(a))
	for i, arg := range a {
		out[i] = string(arg)
	}
	return out
}
