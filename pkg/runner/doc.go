/*
Package runner implements batch transposition of one analysis into many keys.

It acts as the bridge between the pure core (pkg/domain) and the outside world.
The runner builds the original scale and locates annotations once, then fans out
one transposition per destination key, bounded by a worker limit, and hands each
result to a ports.Sink.

# Usage

	r := runner.NewRunner(
		runner.WithSink(sink),
		runner.WithWorkers(4),
		runner.WithLogger(logger),
	)

	report, err := r.Run(ctx, analysis, destinations)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range report.Failures {
		log.Printf("%s: %v", f.Destination.Name, f.Err)
	}
*/
package runner
