package bot

import "serialbox/internal/step"

type handlerFunc func() error

// stepRoutes maps step values to handlers. Resolution is two-pass: the raw
// step string first, then the bare step name so "get_title:movie" falls back
// to the "get_title" route.
type stepRoutes map[string]handlerFunc

func (r stepRoutes) resolve(st step.Step) handlerFunc {
	if fn, ok := r[st.String()]; ok {
		return fn
	}
	if fn, ok := r[st.Name]; ok {
		return fn
	}
	return nil
}
