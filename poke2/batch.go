package poke2

import (
	"context"
	"runtime"

	"github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/accumulator/group"
)

// Statement is a claimed relation Result = Base^exp together with its proof of knowledge of exp.
type Statement[E any] struct {
	Base, Result E
	Proof        *Proof[E]
}

var errRejected = errors.New("proof rejected")

// VerifyBatch verifies all statements concurrently, using at most workers goroutines
// (runtime.GOMAXPROCS(0) if workers < 1). It returns false as soon as one of the proofs is
// rejected, and an error only if ctx is done before all proofs are verified.
// An empty batch verifies.
func VerifyBatch[E any](ctx context.Context, p Params, g group.Group[E], statements []Statement[E], workers int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	Logger.Debugf("poke2: verifying %d proofs using %d workers", len(statements), workers)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range statements {
		s := &statements[i]
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !VerifyParams(p, g, s.Base, s.Result, s.Proof) {
				return errRejected
			}
			return nil
		})
	}

	switch err := eg.Wait(); {
	case err == nil:
		return true, nil
	case errors.Is(err, errRejected):
		return false, nil
	default:
		return false, err
	}
}
