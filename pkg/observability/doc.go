/*
Package observability exposes compiler and schema activity as Prometheus metrics.

Metrics plug into the engine through schema.Hooks, so validators stay free of
any metrics dependency:

	m, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	eng, err := fullytyped.New(fullytyped.WithMetrics(m))
*/
package observability
