package testutil

// Op is a single operation to apply to both the real Map and the oracle
// model in lockstep.
type Op struct {
	Kind  OpKind
	Value uint32
	Other uint32 // not set by OpGenerator; no OpKind reads it
}

// OpKind identifies which Map/oracle method an Op drives.
type OpKind int

const (
	OpInsert OpKind = iota
	OpRemove
	OpContains
	OpOptimize
)

// OpGenConfig configures the operation generator's weighted rates (each a
// percentage of generated ops). NextOp rolls 0..99 against the cumulative
// Insert, Remove and Contains rates and returns Optimize for any roll at or
// above their sum, so OptimizeRate itself is not read by NextOp.
type OpGenConfig struct {
	// InsertRate is the percentage of ops that insert a value.
	InsertRate int

	// RemoveRate is the percentage of ops that remove a value.
	RemoveRate int

	// ContainsRate is the percentage of ops that probe membership.
	ContainsRate int

	// OptimizeRate documents the percentage of ops that call Optimize;
	// NextOp gives Optimize whatever share of 100 the other three rates
	// leave.
	OptimizeRate int

	// KeySpace bounds the high-key range exercised (as a multiple of
	// blockCapacity), concentrating generated values into a handful of
	// blocks so inserts/removes collide and exercise representation
	// transitions instead of spreading across the full uint32 range.
	KeySpace uint32
}

// DefaultOpGenConfig returns a balanced configuration that favors inserts,
// mixes in removes/contains, and occasionally optimizes.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		InsertRate:   55,
		RemoveRate:   25,
		ContainsRate: 15,
		OptimizeRate: 5,
		KeySpace:     4, // four blocks' worth of low-keys: 0 .. 4*65536
	}
}

// OpGenerator turns raw fuzz bytes into a deterministic, weighted stream
// of Ops, so a single fuzz seed reproduces the exact same operation
// sequence every time.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
}

// NewOpGenerator creates a generator over fuzzBytes using cfg.
func NewOpGenerator(fuzzBytes []byte, cfg OpGenConfig) *OpGenerator {
	return &OpGenerator{stream: NewByteStream(fuzzBytes), config: cfg}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation.
func (g *OpGenerator) NextOp() Op {
	choice := int(g.stream.NextByte()) % 100

	cumulative := g.config.InsertRate
	if choice < cumulative {
		return Op{Kind: OpInsert, Value: g.genValue()}
	}

	cumulative += g.config.RemoveRate
	if choice < cumulative {
		return Op{Kind: OpRemove, Value: g.genValue()}
	}

	cumulative += g.config.ContainsRate
	if choice < cumulative {
		return Op{Kind: OpContains, Value: g.genValue()}
	}

	return Op{Kind: OpOptimize}
}

func (g *OpGenerator) genValue() uint32 {
	bound := g.config.KeySpace << 16
	return g.stream.NextUint32In(bound)
}
