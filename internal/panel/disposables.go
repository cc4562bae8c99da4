package panel

// disposables collects release functions for handles acquired by the
// controller. dispose runs them once, in acquisition order.
type disposables struct {
	fns []func()
}

type unsubscriber interface {
	Unsubscribe()
}

func (d *disposables) add(u unsubscriber) {
	if u == nil {
		return
	}
	d.fns = append(d.fns, u.Unsubscribe)
}

func (d *disposables) dispose() {
	fns := d.fns
	d.fns = nil
	for _, fn := range fns {
		fn()
	}
}

func (d *disposables) len() int {
	return len(d.fns)
}
