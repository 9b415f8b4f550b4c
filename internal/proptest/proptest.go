// Package proptest is a small randomized stress harness shared by every
// engine's test suite. It drives independent goroutines, each running a
// random sequence of inserts/deletes/selects against both the engine under
// test and a reference map, and reports any disagreement.
//
// Each goroutine owns its own, independent container instance — nothing is
// ever shared across goroutines, so this does not contradict the
// single-owner, no-internal-synchronization model the engines themselves
// implement.
package proptest

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Engine is the subset of engine behavior proptest exercises: insert,
// select, and delete of int keys and values. Any of this module's ordered or
// hash engines satisfies it trivially.
type Engine interface {
	Insert(key int, value int) (slot *int, inserted bool)
	Select(key int) (int, bool)
	Delete(key int) bool
	Len() int
}

// Op is one step of a randomized workload.
type Op struct {
	Kind  OpKind
	Key   int
	Value int
}

// OpKind distinguishes the three operations a workload step can perform.
type OpKind int

const (
	// OpInsert inserts Key/Value.
	OpInsert OpKind = iota
	// OpDelete deletes Key.
	OpDelete
	// OpSelect selects Key and checks it against the reference.
	OpSelect
)

// RandomWorkload generates n operations over keys drawn from [0, keySpace),
// seeded by rng so callers get reproducible sequences.
func RandomWorkload(rng *rand.Rand, n, keySpace int) []Op {
	ops := make([]Op, n)
	for i := range ops {
		key := rng.Intn(keySpace)
		switch rng.Intn(3) {
		case 0:
			ops[i] = Op{Kind: OpInsert, Key: key, Value: rng.Int()}
		case 1:
			ops[i] = Op{Kind: OpDelete, Key: key}
		default:
			ops[i] = Op{Kind: OpSelect, Key: key}
		}
	}

	return ops
}

// Mismatch describes one disagreement between an engine and the reference
// map it is being checked against.
type Mismatch struct {
	Goroutine int
	Step      int
	Op        Op
	Detail    string
}

// RunAgainstReference runs `goroutines` independent goroutines, each building
// a fresh engine via newEngine and a fresh reference map, replaying the same
// randomized workload against both, and collecting any disagreement.
//
// It returns the full list of mismatches found across all goroutines and the
// error from waiting on them, which is always nil: no goroutine reports an
// error.
func RunAgainstReference(goroutines, stepsPerGoroutine, keySpace int, seed int64, newEngine func() Engine) ([]Mismatch, error) {
	var (
		mismatches []Mismatch
		mu         chan struct{} = make(chan struct{}, 1)
	)
	mu <- struct{}{}

	g := new(errgroup.Group)

	for gi := range goroutines {
		gi := gi

		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(gi)))
			ops := RandomWorkload(rng, stepsPerGoroutine, keySpace)

			engine := newEngine()
			reference := make(map[int]int)

			for step, op := range ops {
				switch op.Kind {
				case OpInsert:
					slot, inserted := engine.Insert(op.Key, op.Value)
					if inserted {
						reference[op.Key] = op.Value
					} else if slot != nil {
						// Duplicate: the engine's slot must reflect the
						// previously stored value, not the rejected one.
						if want, ok := reference[op.Key]; ok && *slot != want {
							record(mu, &mismatches, Mismatch{gi, step, op, "duplicate slot mismatch"})
						}
					}
				case OpDelete:
					_, existed := reference[op.Key]
					removed := engine.Delete(op.Key)

					if removed != existed {
						record(mu, &mismatches, Mismatch{gi, step, op, "delete disagreement"})
					}

					delete(reference, op.Key)
				case OpSelect:
					want, wantOK := reference[op.Key]

					got, gotOK := engine.Select(op.Key)
					if gotOK != wantOK || (gotOK && got != want) {
						record(mu, &mismatches, Mismatch{gi, step, op, "select disagreement"})
					}
				}

				if engine.Len() != len(reference) {
					record(mu, &mismatches, Mismatch{gi, step, op, "length disagreement"})
				}
			}

			return nil
		})
	}

	err := g.Wait()

	return mismatches, err
}

func record(mu chan struct{}, mismatches *[]Mismatch, m Mismatch) {
	<-mu
	*mismatches = append(*mismatches, m)
	mu <- struct{}{}
}
