package ephem

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-kit/kit/log"
)

// maxChainHops bounds a chain walk. The standard planetary tree closes in
// at most 5 hops; anything longer means the segment graph has a cycle.
const maxChainHops = 8

// Engine answers ephemeris queries from a set of loaded kernels. It is
// immutable after construction and safe for concurrent readers; every
// query allocates its own scratchpad, so there is no cross-request locking.
type Engine struct {
	cfg     Config
	kernels []*SPKKernel
	lsk     *LeapSeconds
	eop     *EOPTable
}

// New constructs an engine from a validated configuration, loading every
// kernel it names. A failed load discards the partially constructed engine.
func New(cfg Config) (*Engine, error) {
	return NewWithLogger(cfg, log.NewNopLogger())
}

// NewWithLogger is New with a construction-time logger. The logger is only
// used while loading; query and search paths never log.
func NewWithLogger(cfg Config, logger log.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, path := range cfg.SPKPaths {
		k, err := LoadSPK(path)
		if err != nil {
			return nil, err
		}
		logger.Log("msg", "SPK kernel loaded", "path", path, "segments", len(k.Segments()))
		e.kernels = append(e.kernels, k)
	}
	lsk, err := LoadLeapSeconds(cfg.LSKPath)
	if err != nil {
		return nil, err
	}
	logger.Log("msg", "leap-second kernel loaded", "path", cfg.LSKPath, "entries", len(lsk.table))
	e.lsk = lsk
	if cfg.EOPPath != "" {
		eop, err := LoadEOP(cfg.EOPPath)
		if err != nil {
			return nil, err
		}
		first, last := eop.Range()
		logger.Log("msg", "EOP table loaded", "path", cfg.EOPPath, "mjd_first", first, "mjd_last", last)
		e.eop = eop
	}
	return e, nil
}

// newEngineFromParts wires pre-parsed kernels, for tests and embedders that
// hold kernel bytes in memory.
func newEngineFromParts(kernels []*SPKKernel, lsk *LeapSeconds, eop *EOPTable) *Engine {
	return &Engine{kernels: kernels, lsk: lsk, eop: eop}
}

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// LeapSeconds returns the loaded leap-second kernel.
func (e *Engine) LeapSeconds() *LeapSeconds { return e.lsk }

// EOP returns the loaded EOP table, or nil when none was configured.
func (e *Engine) EOP() *EOPTable { return e.eop }

// Kernels returns the loaded SPK kernels in configuration order.
func (e *Engine) Kernels() []*SPKKernel { return e.kernels }

// chainKey identifies one memoized chain link within a single request.
type chainKey struct {
	target, center int32
	epochBits      uint64
}

// computationContext is the per-request scratchpad: it memoizes segment
// evaluations keyed by (target, center, epoch bits) so shared chain
// prefixes (Earth under both target and observer, a batch at one epoch)
// evaluate once. Epoch keys are bit-exact, so a hit returns bit-identical
// bytes to a cold resolution. The context never outlives its request.
type computationContext struct {
	cache map[chainKey]StateVector
	stats Stats
}

func newComputationContext() *computationContext {
	return &computationContext{cache: make(map[chainKey]StateVector, 8)}
}

// evaluateAcross finds (target, center) at the epoch in the first kernel
// holding a covering segment, consulting the scratchpad first.
func (e *Engine) evaluateAcross(target, center int32, tdbS float64, ctx *computationContext) (StateVector, error) {
	key := chainKey{target, center, math.Float64bits(tdbS)}
	if sv, ok := ctx.cache[key]; ok {
		ctx.stats.CacheHits++
		return sv, nil
	}
	sawPair := false
	for _, k := range e.kernels {
		sv, err := k.Evaluate(target, center, tdbS)
		switch {
		case err == nil:
			ctx.stats.Evaluations++
			ctx.cache[key] = sv
			return sv, nil
		case errors.Is(err, ErrEpochOutOfRange):
			sawPair = true
		case errors.Is(err, ErrNoSegment):
		default:
			return StateVector{}, err
		}
	}
	if sawPair {
		return StateVector{}, fmt.Errorf("%w: pair %d/%d at t=%g s", ErrEpochOutOfRange, target, center, tdbS)
	}
	return StateVector{}, fmt.Errorf("%w: no segment for pair %d/%d", ErrNoSegment, target, center)
}

func (e *Engine) centerFor(target int32) (int32, bool) {
	for _, k := range e.kernels {
		if c, ok := k.CenterFor(target); ok {
			return c, true
		}
	}
	return 0, false
}

// resolveToSSB accumulates the chain from a body code down to the SSB:
// each link evaluates the body relative to its center and descends. A leaf
// body whose own segment is absent falls back to its enclosing barycenter.
func (e *Engine) resolveToSSB(code int32, tdbS float64, ctx *computationContext) (pos, vel [3]float64, err error) {
	hops := 0
	for code != 0 {
		if hops++; hops > maxChainHops {
			return pos, vel, fmt.Errorf("%w: chain from body %d exceeds %d hops", ErrNoSegment, code, maxChainHops)
		}
		center, ok := e.centerFor(code)
		if !ok {
			if bary := BarycenterFor(code); bary != code {
				code = bary
				continue
			}
			return pos, vel, fmt.Errorf("%w: body %d has no segment in any kernel", ErrNoSegment, code)
		}
		sv, evalErr := e.evaluateAcross(code, center, tdbS, ctx)
		if evalErr != nil {
			return pos, vel, evalErr
		}
		for i := 0; i < 3; i++ {
			pos[i] += sv.R[i]
			vel[i] += sv.V[i]
		}
		code = center
	}
	return pos, vel, nil
}

// Query evaluates a single ephemeris request.
func (e *Engine) Query(q Query) (StateVector, error) {
	sv, _, err := e.QueryWithStats(q)
	return sv, err
}

// QueryWithStats evaluates a request and reports the work done.
func (e *Engine) QueryWithStats(q Query) (StateVector, Stats, error) {
	ctx := newComputationContext()
	sv, err := e.queryCtx(q, ctx)
	return sv, ctx.stats, err
}

func (e *Engine) queryCtx(q Query, ctx *computationContext) (StateVector, error) {
	var sv StateVector
	if math.IsNaN(q.EpochJD) || math.IsInf(q.EpochJD, 0) {
		return sv, fmt.Errorf("%w: epoch must be finite", ErrUnsupportedQuery)
	}
	if q.Frame != ICRF && q.Frame != EclipticJ2000 {
		return sv, fmt.Errorf("%w: frame %d", ErrUnsupportedQuery, q.Frame)
	}
	if !q.Observer.IsSSB() && q.Target.Code == q.Observer.Code {
		return sv, fmt.Errorf("%w: target and observer are both %s", ErrUnsupportedQuery, q.Target)
	}
	tdbS := JDToTDBSeconds(q.EpochJD)
	tPos, tVel, err := e.resolveToSSB(q.Target.Code, tdbS, ctx)
	if err != nil {
		return sv, err
	}
	var oPos, oVel [3]float64
	if !q.Observer.IsSSB() {
		oPos, oVel, err = e.resolveToSSB(q.Observer.Code, tdbS, ctx)
		if err != nil {
			return sv, err
		}
	}
	for i := 0; i < 3; i++ {
		sv.R[i] = tPos[i] - oPos[i]
		sv.V[i] = tVel[i] - oVel[i]
	}
	if q.Frame == EclipticJ2000 {
		r := ICRF2Ecliptic(sv.R[:])
		v := ICRF2Ecliptic(sv.V[:])
		copy(sv.R[:], r)
		copy(sv.V[:], v)
	}
	return sv, nil
}

// BatchResult pairs one batch entry's state with its error, if any.
type BatchResult struct {
	State StateVector
	Err   error
}

// QueryBatch evaluates several requests with a shared scratchpad, so chain
// links repeated across the batch (same body, same epoch) resolve once.
// Results come back in input order; one failed entry does not abort the rest.
func (e *Engine) QueryBatch(qs []Query) []BatchResult {
	out, _ := e.QueryBatchWithStats(qs)
	return out
}

// QueryBatchWithStats is QueryBatch plus aggregate hit/miss telemetry.
func (e *Engine) QueryBatchWithStats(qs []Query) ([]BatchResult, Stats) {
	ctx := newComputationContext()
	out := make([]BatchResult, len(qs))
	for i, q := range qs {
		out[i].State, out[i].Err = e.queryCtx(q, ctx)
	}
	return out, ctx.stats
}
