package script

import (
	"context"
	"errors"

	"github.com/mgomes/scriptfx/effect"
	"github.com/mgomes/scriptfx/either"
	"github.com/mgomes/scriptfx/logging"
)

// logEntry writes entry through logger and yields the logger's error. The
// write happens even when the run's context is already cancelled.
func logEntry(engine effect.Engine, logger logging.Logger, entry logging.Entry) effect.Effect[error] {
	return effect.Detach(engine, func(ctx context.Context) (error, error) {
		if logger == nil {
			return nil, nil
		}
		return logger.Log(ctx, entry), nil
	})
}

// LogFailure logs the entry built from a domain failure of s through the
// dependency's logger, then fails with the same failure. An error returned by
// the logger becomes an effect error.
func LogFailure[D logging.HasLogger, E, A any](s Script[D, E, A], toEntry func(E) logging.Entry) Script[D, E, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
		return effect.FlatMap(s.eval(engine, deps), func(r either.Either[E, A]) effect.Effect[either.Either[E, A]] {
			e, failed := r.GetLeft()
			if !failed {
				return effect.Pure(engine, r)
			}
			return effect.FlatMap(logEntry(engine, deps.Logger(), toEntry(e)), func(logErr error) effect.Effect[either.Either[E, A]] {
				if logErr != nil {
					return effect.Fail[either.Either[E, A]](engine, logErr)
				}
				return effect.Pure(engine, r)
			})
		})
	})
}

// LogError logs the entry built from an effect error of s, then raises the
// same error again. When the logger fails too, both errors are raised joined.
func LogError[D logging.HasLogger, E, A any](s Script[D, E, A], toEntry func(error) logging.Entry) Script[D, E, A] {
	return New(func(engine effect.Engine, deps D) effect.Effect[either.Either[E, A]] {
		return effect.HandleErrorWith(s.eval(engine, deps), func(err error) effect.Effect[either.Either[E, A]] {
			return effect.FlatMap(logEntry(engine, deps.Logger(), toEntry(err)), func(logErr error) effect.Effect[either.Either[E, A]] {
				if logErr != nil {
					return effect.Fail[either.Either[E, A]](engine, errors.Join(err, logErr))
				}
				return effect.Fail[either.Either[E, A]](engine, err)
			})
		})
	})
}
