package observability

// Config captures opt-in observability toggles. When EnablePprofTrace is
// set the HTTP handler mounts the pprof profile and trace endpoints under
// /debug/pprof; they stay unmounted otherwise so profiling is never exposed
// by accident.
type Config struct {
	EnablePprofTrace bool
}
