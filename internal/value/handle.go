package value

import "fmt"

// Handle is an opaque, stable reference into a Store's arena. Handles
// never alias two logically distinct values and remain valid for the
// lifetime of the Store that minted them (spec.md §4.1).
type Handle uint32

// InvalidHandle is the zero value, never returned by a successful
// constructor.
const InvalidHandle Handle = 0

func (h Handle) String() string { return fmt.Sprintf("#%d", uint32(h)) }

// Valid reports whether h could have been minted by a Store (it does not
// verify h belongs to any particular Store instance).
func (h Handle) Valid() bool { return h != InvalidHandle }
