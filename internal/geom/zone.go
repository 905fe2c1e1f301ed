package geom

// Zone is a horizontal forbidden band in screen space: an inter-page
// gap, a page header, or a page footer. No indicator may render inside
// a zone and no drop may land in one.
type Zone struct {
	// Top is the Y coordinate where the zone begins.
	Top float64

	// Bottom is the Y coordinate where the zone ends.
	Bottom float64
}

// Contains returns true if the vertical coordinate lies inside the zone.
func (z Zone) Contains(y float64) bool {
	return y >= z.Top && y < z.Bottom
}

// InZone returns true if y falls inside any of the zones.
// A nil or empty slice means pagination is off; nothing is forbidden.
func InZone(zones []Zone, y float64) bool {
	for _, z := range zones {
		if z.Contains(y) {
			return true
		}
	}
	return false
}

// RectInZone returns true if the rect lies entirely inside a single zone.
func RectInZone(zones []Zone, r Rect) bool {
	for _, z := range zones {
		if r.Top >= z.Top && r.Bottom() <= z.Bottom {
			return true
		}
	}
	return false
}

// Crosses returns true if the rect overlaps any zone without being
// fully contained by it, i.e. the rect straddles a page boundary.
func Crosses(zones []Zone, r Rect) bool {
	for _, z := range zones {
		if r.Top < z.Bottom && r.Bottom() > z.Top {
			if !(r.Top >= z.Top && r.Bottom() <= z.Bottom) {
				return true
			}
		}
	}
	return false
}

// CrossesBetween returns true if any zone overlaps the open vertical
// interval (top, bottom). Used to detect a gap candidate that would
// fall across a page boundary.
func CrossesBetween(zones []Zone, top, bottom float64) bool {
	if bottom < top {
		top, bottom = bottom, top
	}
	for _, z := range zones {
		if z.Top < bottom && z.Bottom > top {
			return true
		}
	}
	return false
}

// PageOf returns the page number for a vertical coordinate, counting
// the zones that end at or above it. With no zones every coordinate is
// on page 0.
func PageOf(zones []Zone, y float64) int {
	page := 0
	for _, z := range zones {
		if z.Bottom <= y {
			page++
		}
	}
	return page
}

// ClipToSlice clips the rect to the content slice bounded by the
// nearest zone edges above and below refY. Returns false when refY
// itself lies inside a zone, in which case nothing should render.
// With no zones the rect is returned unchanged.
func ClipToSlice(r Rect, refY float64, zones []Zone) (Rect, bool) {
	if len(zones) == 0 {
		return r, true
	}
	if InZone(zones, refY) {
		return Rect{}, false
	}

	top := r.Top
	bottom := r.Bottom()
	for _, z := range zones {
		if z.Bottom <= refY && z.Bottom > top {
			top = z.Bottom
		}
		if z.Top > refY && z.Top < bottom {
			bottom = z.Top
		}
	}
	if bottom <= top {
		return Rect{}, false
	}
	return Rect{Left: r.Left, Top: top, Width: r.Width, Height: bottom - top}, true
}
