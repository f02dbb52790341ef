package resource

// View is the one presentation state derived from a list snapshot.
type View int

const (
	ViewLoading View = iota
	ViewError
	ViewEmpty
	ViewPopulated
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	case ViewPopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// ViewOf picks the view for s: loading wins, then error, then empty or populated.
func ViewOf[T any](s State[T]) View {
	switch {
	case s.Loading:
		return ViewLoading
	case s.Error != "":
		return ViewError
	case len(s.Items) == 0:
		return ViewEmpty
	default:
		return ViewPopulated
	}
}
