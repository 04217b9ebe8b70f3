package descent

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// TraceFunc observes a grammar rule as it returns. start and end are cursor
// positions in runes, and ok is whether the rule matched. A rule that did not
// match always has start == end.
type TraceFunc func(rule string, start, end int, ok bool)

type (
	endopt   struct{}
	traceopt struct {
		fn TraceFunc
	}
)

// parsectx holds settings for one parse. It is also a ParseOption.
type parsectx struct {
	// end requires the expression to consume all non-whitespace input.
	end bool
	// trace is installed on the cursor for the parse.
	trace TraceFunc
}

// RequireEnd tells Parse to reject input which has anything but whitespace
// after a complete expression. By default, Parse returns the expression and
// ignores what follows it.
func RequireEnd() ParseOption {
	return endopt{}
}

func (endopt) parseOption(p parsectx) parsectx {
	p.end = true
	return p
}

// Trace sets a function to observe each grammar rule as it returns. A later
// Trace replaces an earlier one. Passing nil disables tracing.
func Trace(fn TraceFunc) ParseOption {
	return &traceopt{fn}
}

func (o *traceopt) parseOption(p parsectx) parsectx {
	p.trace = o.fn
	return p
}

// ParsingPreset combines several options into one. Options applied after a
// preset override it.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	p.end = p.end || o.end
	if o.trace != nil {
		p.trace = o.trace
	}
	return p
}
