package zinc

import (
	"errors"

	"go.uber.org/zap"
)

// FallbackParser is the complete grammar-driven Zinc parser. It must accept
// any input the fast path accepts and produce an Equal grid for it.
type FallbackParser interface {
	ParseGrid(text string, requireFullConsumption bool) (*Grid, error)
}

// FallbackFunc adapts a function to FallbackParser.
type FallbackFunc func(text string, requireFullConsumption bool) (*Grid, error)

// ParseGrid calls f.
func (f FallbackFunc) ParseGrid(text string, requireFullConsumption bool) (*Grid, error) {
	return f(text, requireFullConsumption)
}

// ScalarFallback is implemented by fallback parsers that can also decode a
// lone token. Parser.ParseScalar uses it when present.
type ScalarFallback interface {
	ParseScalar(token string) (Scalar, error)
}

// NoFallback fails every grid the fast path cannot handle with an error
// matching ErrNoFallback.
var NoFallback FallbackParser = noFallback{}

type noFallback struct{}

func (noFallback) ParseGrid(string, bool) (*Grid, error) {
	return nil, &Error{Kind: KindFallback, Err: ErrNoFallback}
}

// Path says which strategy produced a grid.
type Path uint8

const (
	PathFast Path = iota
	PathFallback
)

// String returns the path name.
func (p Path) String() string {
	if p == PathFast {
		return "fast"
	}
	return "fallback"
}

// ============================================================
// Parser
// ============================================================

// Option configures a Parser.
type Option func(*Parser)

// WithZones sets the time zone resolver used for date-time zone names.
func WithZones(z ZoneResolver) Option {
	return func(p *Parser) {
		if z != nil {
			p.zones = z
		}
	}
}

// WithLogger sets the parser's logger. Defaults to the package Logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// WithRequireFullConsumption is passed through to the fallback. Default true.
func WithRequireFullConsumption(v bool) Option {
	return func(p *Parser) {
		p.requireFull = v
	}
}

// WithFastPath turns the fast path on or off. Off sends every input to the
// fallback, which is useful for comparisons.
func WithFastPath(enabled bool) Option {
	return func(p *Parser) {
		p.fastPath = enabled
	}
}

// Parser dispatches between the fast path and a FallbackParser. It holds
// no mutable state and is safe for concurrent use.
type Parser struct {
	fallback    FallbackParser
	zones       ZoneResolver
	logger      *zap.Logger
	requireFull bool
	fastPath    bool
}

// NewParser creates a Parser. A nil fallback means NoFallback.
func NewParser(fallback FallbackParser, opts ...Option) *Parser {
	if fallback == nil {
		fallback = NoFallback
	}
	p := &Parser{
		fallback:    fallback,
		zones:       DefaultZones(),
		requireFull: true,
		fastPath:    true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseGrid is NewParser(fallback).ParseGrid(text).
func ParseGrid(text string, fallback FallbackParser) (*Grid, error) {
	return NewParser(fallback).ParseGrid(text)
}

// ParseGrid decodes text. Fast-path failures are never returned: the whole
// text is re-parsed by the fallback and its result, or its error, is
// returned unchanged.
func (p *Parser) ParseGrid(text string) (*Grid, error) {
	g, _, err := p.ParseGridPath(text)
	return g, err
}

// ParseGridPath is ParseGrid that also reports which strategy answered.
func (p *Parser) ParseGridPath(text string) (*Grid, Path, error) {
	if p.fastPath {
		g, err := parseFast(text, p.zones)
		if err == nil {
			return g, PathFast, nil
		}
		p.logFallback(err)
	}

	g, err := p.fallback.ParseGrid(text, p.requireFull)
	return g, PathFallback, err
}

// ParseFast runs only the fast path with this parser's zone resolver.
func (p *Parser) ParseFast(text string) (*Grid, error) {
	return parseFast(text, p.zones)
}

// ParseScalar decodes one token. When the fast decoder errors or can only
// pass the token through as a string, a fallback implementing
// ScalarFallback gets the token instead. A nil value from the fallback is
// returned as Null.
func (p *Parser) ParseScalar(token string) (Scalar, error) {
	v, opaque, err := decodeScalar(token, p.zones)
	if err == nil && !opaque {
		return v, nil
	}
	if sf, ok := p.fallback.(ScalarFallback); ok {
		v, err := sf.ParseScalar(token)
		if err == nil && v == nil {
			v = Null{}
		}
		return v, err
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Parser) logFallback(err error) {
	l := p.logger
	if l == nil {
		l = Logger()
	}
	if ce := l.Check(zap.DebugLevel, "zinc: fast path declined"); ce != nil {
		fields := []zap.Field{zap.Error(err)}
		var ze *Error
		if errors.As(err, &ze) {
			fields = append(fields,
				zap.Stringer("kind", ze.Kind),
				zap.Int("line", ze.Line),
				zap.String("token", ze.Token))
		}
		ce.Write(fields...)
	}
}
