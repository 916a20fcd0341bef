package jxsmoln

// DecodeOpt bundles decoding options. Functions taking ...DecodeOpt use the
// last one supplied.
type DecodeOpt struct {
	// MaxDepth limits list/ob nesting; 0 means unlimited.
	MaxDepth int
	// Trace, when set, observes every cursor movement.
	Trace TraceFunc
}

// Severity expresses how a detected condition is treated.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarn
	SeverityIgnore
)

// EncodeOpt bundles encoding options.
type EncodeOpt struct {
	// Prefix used for the jxsmoln namespace; nil means "j". An empty string
	// makes it the default namespace.
	Prefix *string
	// OnDuplicateKey controls repeated keys in the JSON input. The default
	// rejects them, since the decoder would reject the resulting XML.
	OnDuplicateKey Severity
	// OnWarning receives non-fatal findings (duplicate keys under Warn).
	OnWarning func(*Error)
	// MaxDepth limits array/object nesting; 0 means unlimited.
	MaxDepth int
	// Trace, when set, observes every token step.
	Trace TraceFunc
}

func lastDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return DecodeOpt{}
}

func lastEncodeOpt(opts []EncodeOpt) EncodeOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return EncodeOpt{}
}

func (o EncodeOpt) prefix() string {
	if o.Prefix == nil {
		return "j"
	}
	return *o.Prefix
}
