package plan

import (
	"errors"
	"fmt"

	"dashboard-converter/internal/analyze"
	"dashboard-converter/internal/diagnostic"
	"dashboard-converter/internal/identifier"
)

// Request lists the UIDs to plan for.
type Request struct {
	// Existing UIDs are never issued, whether or not they are converted.
	Existing []string
	// Merged UIDs get one global UID each.
	Merged []string
	// Separate UIDs get one UID per collector.
	Separate []string
	// GlobalKey suffixes merged UIDs.
	GlobalKey string
	// Collectors suffix separate UIDs, in order.
	Collectors []string
}

// FromInventory builds a Request from a scanned batch.
func FromInventory(inv *analyze.Inventory, globalKey string, collectors []string) Request {
	req := Request{
		Merged:     inv.UIDs(analyze.ClassMerged),
		Separate:   inv.UIDs(analyze.ClassSeparate),
		GlobalKey:  globalKey,
		Collectors: collectors,
	}

	for _, d := range inv.Dashboards {
		if d.UID != "" {
			req.Existing = append(req.Existing, d.UID)
		}
	}

	return req
}

// Resolver allocates the identifier plan.
type Resolver struct {
	alloc *identifier.Allocator
}

// NewResolver creates a Resolver. A nil allocator uses identifier.New().
func NewResolver(alloc *identifier.Allocator) *Resolver {
	if alloc == nil {
		alloc = identifier.New()
	}

	return &Resolver{alloc: alloc}
}

// Resolve allocates every UID of req. An allocation failure is a ConfigError.
func (r *Resolver) Resolve(req Request) (*Identifiers, error) {
	issued := identifier.NewSet(req.Existing...)

	global := make(map[string]string, len(req.Merged))
	collectors := make(map[string]map[string]string, len(req.Collectors))

	for _, uid := range req.Merged {
		mapped, err := r.alloc.Allocate(uid, req.GlobalKey, issued)
		if err != nil {
			return nil, allocationError(uid, req.GlobalKey, err)
		}

		global[uid] = mapped
		issued.Add(mapped)
	}

	for _, uid := range req.Separate {
		for _, key := range req.Collectors {
			mapped, err := r.alloc.Allocate(uid, key, issued)
			if err != nil {
				return nil, allocationError(uid, key, err)
			}

			if collectors[key] == nil {
				collectors[key] = map[string]string{}
			}

			collectors[key][uid] = mapped
			issued.Add(mapped)
		}
	}

	return &Identifiers{global: global, collectors: collectors}, nil
}

func allocationError(uid, suffix string, err error) error {
	code := diagnostic.CodeConfigInvalid
	if errors.Is(err, identifier.ErrExhausted) {
		code = diagnostic.CodeUIDExhausted
	}

	return diagnostic.NewConfigError(code, fmt.Sprintf("cannot derive a UID for %q with suffix %q", uid, suffix), err)
}
