package sim

import "math"

type vec struct {
	x, y float64
}

func (v vec) norm() float64 {
	return math.Hypot(v.x, v.y)
}

func (v vec) scale(k float64) vec {
	return vec{v.x * k, v.y * k}
}

func (v vec) dot(o vec) float64 {
	return v.x*o.x + v.y*o.y
}

func hypot(x, y float64) float64 {
	return math.Hypot(x, y)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// normalizeAngle wraps a into (-pi, pi].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}

	return a - math.Pi
}
