package obs

import (
	"context"
	"log"
	"time"
)

// Time logs how long a named operation took, including its error when the
// caller's named error return is set. Usage:
//
//	defer obs.Time(ctx, "services.ResolveRoom")(&err)
func Time(_ context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("op=%s dur=%dms err=%v", name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("op=%s dur=%dms", name, dur.Milliseconds())
	}
}
