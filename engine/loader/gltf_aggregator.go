package loader

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/model"
)

// BindingPolicy decides how bindings that share a semantic name across primitives are combined.
type BindingPolicy int

const (
	// BindingLastWins keeps one binding per name for the whole document; later primitives overwrite earlier ones.
	BindingLastWins BindingPolicy = iota
	// BindingConcatenate decodes every primitive's bindings and appends them in primitive order.
	// Indices are rebased by the number of vertices emitted before their primitive;
	// a rebased index that does not fit an integer index type is an ErrIndexOverflow.
	BindingConcatenate
)

func (p BindingPolicy) String() string {
	if p == BindingConcatenate {
		return "concat"
	}
	return "last"
}

// ComponentTypePolicy decides what an accessor with an unrecognized component type does to a decode.
type ComponentTypePolicy int

const (
	// ComponentTypeSkip drops the binding's contribution and records it in Geometry.Skipped.
	ComponentTypeSkip ComponentTypePolicy = iota
	// ComponentTypeStrict aborts the decode with KindUnsupportedComponentType.
	ComponentTypeStrict
)

// DecodeOptions configures Aggregate. The zero value is serial, LayoutSpec, last-wins, skip.
type DecodeOptions struct {
	Layout         Layout
	Bindings       BindingPolicy
	ComponentTypes ComponentTypePolicy

	// Workers above 1 fans per-binding decode out to a shared worker pool of at least that size.
	// Output is identical to the serial path.
	Workers int
}

// Decode pool sizing. SubmitTask blocks while the queue is full.
const (
	aggregatorQueueSize = 256
	aggregatorQueueIdle = time.Second
)

// PrimitiveBindings are the bindings of one primitive, sorted by name.
type PrimitiveBindings struct {
	Mesh      int
	Primitive int
	Bindings  []model.Binding
}

// CollectBindings walks meshes[*].primitives[*] and gathers attribute, indices, material and mode bindings.
// Within a primitive an "indices" property overrides an attribute of the same name.
//
// Parameters:
//   - doc: the parsed document
//
// Returns:
//   - []PrimitiveBindings: one entry per primitive in document order
//   - error: a KindInvalidDocument error if a binding value is not an integer
func CollectBindings(doc *Document) ([]PrimitiveBindings, error) {
	var result []PrimitiveBindings

	meshes := doc.Get("meshes")
	if !meshes.IsArray() {
		return nil, nil
	}
	for meshIdx := 0; meshIdx < meshes.Len(); meshIdx++ {
		primitives := meshes.Index(meshIdx).Get("primitives")
		if !primitives.IsArray() {
			continue
		}
		for primIdx := 0; primIdx < primitives.Len(); primIdx++ {
			prim := primitives.Index(primIdx)
			byName := make(map[string]model.Binding)

			add := func(name string, node Node, kind model.BindingKind) error {
				v, ok := node.Int()
				if !ok {
					return newError(KindInvalidDocument).withDetail("meshes[%d].primitives[%d] %s is not an integer", meshIdx, primIdx, name)
				}
				byName[name] = model.Binding{Name: name, Value: v, Kind: kind, Mesh: meshIdx, Primitive: primIdx}
				return nil
			}

			attributes := prim.Get("attributes")
			for _, name := range attributes.Keys() {
				if err := add(name, attributes.Get(name), model.BindingAttribute); err != nil {
					return nil, err
				}
			}
			if prim.Has(SemanticIndices) {
				if err := add(SemanticIndices, prim.Get(SemanticIndices), model.BindingIndices); err != nil {
					return nil, err
				}
			}
			for _, name := range []string{SemanticMaterial, SemanticMode} {
				if prim.Has(name) {
					if err := add(name, prim.Get(name), model.BindingPassThrough); err != nil {
						return nil, err
					}
				}
			}

			result = append(result, PrimitiveBindings{
				Mesh:      meshIdx,
				Primitive: primIdx,
				Bindings:  sortedBindings(byName),
			})
		}
	}

	return result, nil
}

func sortedBindings(byName map[string]model.Binding) []model.Binding {
	out := make([]model.Binding, 0, len(byName))
	for _, b := range byName {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// decodeJob is one binding to resolve and decode. group is the output slot for vertex rebasing.
type decodeJob struct {
	binding model.Binding
	group   int
}

type decodeResult struct {
	values []TypedValue
	acc    Accessor
	err    error
}

// Aggregate decodes the index and position arrays of every mesh primitive in doc.
// "indices" values are cast to I, "POSITION" values to P; other attributes are decoded and discarded.
// Pass-through bindings (material, mode) are recorded but never decoded.
//
// Parameters:
//   - doc: the parsed document
//   - segment: the binary payload accessors address
//   - opts: layout, binding, component-type and concurrency settings
//
// Returns:
//   - *model.Geometry[I, P]: the extracted arrays
//   - error: the first fatal error in binding order
func Aggregate[I, P common.Number](doc *Document, segment []byte, opts DecodeOptions) (*model.Geometry[I, P], error) {
	prims, err := CollectBindings(doc)
	if err != nil {
		return nil, err
	}

	geom := &model.Geometry[I, P]{}
	for _, p := range prims {
		geom.Bindings = append(geom.Bindings, p.Bindings...)
	}

	jobs := planJobs(prims, opts.Bindings)
	results := runJobs(doc, segment, jobs, opts)

	group, vertexBase := -1, 0
	for i, job := range jobs {
		if job.group != group {
			group = job.group
			vertexBase = geom.VertexCount()
		}

		res := results[i]
		if res.err != nil {
			var le *Error
			if errors.As(res.err, &le) && !le.Fatal() && opts.ComponentTypes == ComponentTypeSkip {
				geom.Skipped = append(geom.Skipped, model.SkippedBinding{
					Binding:       job.binding,
					ComponentType: int(res.acc.ComponentType),
				})
				continue
			}
			return nil, res.err
		}

		switch job.binding.Name {
		case SemanticIndices:
			geom.Indices, err = appendIndices(geom.Indices, res, vertexBase)
			if err != nil {
				return nil, err
			}
		case SemanticPosition:
			for _, v := range res.values {
				geom.Positions = append(geom.Positions, Cast[P](v))
			}
		}
	}

	return geom, nil
}

// appendIndices casts values to I, adds vertexBase and appends them to dst.
// For integer I a rebased index that does not fit I is a KindIndexOverflow error.
func appendIndices[I common.Number](dst []I, res decodeResult, vertexBase int) ([]I, error) {
	if vertexBase == 0 || common.KindOf[I]() == common.KindFloat {
		base := common.FromInt[I](int64(vertexBase))
		for _, v := range res.values {
			dst = append(dst, Cast[I](v)+base)
		}
		return dst, nil
	}

	for _, v := range res.values {
		rebased := Cast[int64](v) + int64(vertexBase)
		idx := common.FromInt[I](rebased)
		if int64(idx) != rebased {
			return nil, accessorError(KindIndexOverflow, res.acc.Index, SemanticIndices).
				withDetail("rebased index %d does not fit the index type", rebased)
		}
		dst = append(dst, idx)
	}
	return dst, nil
}

// planJobs orders the decodable bindings per the binding policy.
func planJobs(prims []PrimitiveBindings, policy BindingPolicy) []decodeJob {
	var jobs []decodeJob

	if policy == BindingConcatenate {
		for g, p := range prims {
			for _, b := range p.Bindings {
				if b.Kind != model.BindingPassThrough {
					jobs = append(jobs, decodeJob{binding: b, group: g})
				}
			}
		}
		return jobs
	}

	merged := make(map[string]model.Binding)
	for _, p := range prims {
		for _, b := range p.Bindings {
			if b.Kind != model.BindingPassThrough {
				merged[b.Name] = b
			}
		}
	}
	for _, b := range sortedBindings(merged) {
		jobs = append(jobs, decodeJob{binding: b})
	}
	return jobs
}

// runJobs decodes every job, serially or on a worker pool. results[i] always belongs to jobs[i].
func runJobs(doc *Document, segment []byte, jobs []decodeJob, opts DecodeOptions) []decodeResult {
	results := make([]decodeResult, len(jobs))

	if opts.Workers <= 1 || len(jobs) < 2 {
		for i, job := range jobs {
			results[i] = decodeBinding(doc, segment, job.binding, opts.Layout)
		}
		return results
	}

	// doc and segment are only read; each task writes its own result slot.
	var wg sync.WaitGroup
	sharedPoolMu.Lock()
	pool := decodePool(opts.Workers)
	for i, job := range jobs {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				results[i] = decodeBinding(doc, segment, job.binding, opts.Layout)
				return nil, nil
			},
		})
	}
	sharedPoolMu.Unlock()
	wg.Wait()

	return results
}

// sharedPoolMu guards sharedPool creation, growth and submission; the pool does not lock those itself.
var (
	sharedPoolMu sync.Mutex
	sharedPool   worker.DynamicWorkerPool
)

// decodePool returns the process-wide decode pool, grown to at least n workers.
// The pool lives for the life of the process, so repeated decodes reuse its goroutines.
// The caller holds sharedPoolMu.
func decodePool(n int) worker.DynamicWorkerPool {
	if sharedPool == nil {
		sharedPool = worker.NewDynamicWorkerPool(n, aggregatorQueueSize, aggregatorQueueIdle)
		return sharedPool
	}
	if grow := n - sharedPool.GetMaxWorkers(); grow > 0 {
		sharedPool.IncreaseMaxWorkers(grow)
	}
	return sharedPool
}

func decodeBinding(doc *Document, segment []byte, b model.Binding, layout Layout) decodeResult {
	acc, err := ResolveAccessor(doc, b.Value)
	if err != nil {
		return decodeResult{err: err}
	}
	acc.Name = b.Name

	values, err := DecodeAccessor(acc, segment, layout)
	return decodeResult{values: values, acc: acc, err: err}
}
