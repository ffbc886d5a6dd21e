package input

import (
	"os"
	"strings"
	"sync"
)

var (
	hostOnce sync.Once
	host     *Surface
)

// Default returns the process-wide surface. It is created the first time
// any caller asks for it, with one no-op move listener attached so the
// host keeps reporting motion between drags.
func Default() *Surface {
	hostOnce.Do(func() {
		host = NewSurface()
		host.On(Move, func(PointerSample) {})
	})
	return host
}

// Caps describes what the hosting terminal can report.
type Caps struct {
	// Hover is set when pointer motion is reported without a pressed button.
	Hover bool
}

// Capabilities probes the environment once and caches the answer.
var Capabilities = sync.OnceValue(func() Caps {
	return probe(os.Getenv("TERM"))
})

func probe(term string) Caps {
	switch {
	case term == "", term == "dumb":
		return Caps{}
	case term == "linux", strings.HasPrefix(term, "vt1"), strings.HasPrefix(term, "vt2"):
		return Caps{}
	}
	return Caps{Hover: true}
}
