package animation

import "time"

// DefaultRotationSpeed is the angular velocity of orientation transitions,
// in degrees per second.
const DefaultRotationSpeed = 270

// OrientationController animates an integer angle toward a target
// orientation along the shortest angular path at constant speed.
//
// Angles are degrees normalized to [0, 359]. The controller is a passive
// state machine driven by its owner's paint cycle: SetOrientation schedules
// a transition and Step advances it using the package clock, reporting
// whether more frames are needed. All methods must be called from the same
// goroutine, normally the host's UI thread.
type OrientationController struct {
	// Speed is the angular velocity in degrees per second. It is read when
	// a transition is scheduled; changing it does not affect a transition
	// already in flight.
	Speed int

	naturalPortrait bool

	current int
	start   int
	target  int

	enabled   bool
	clockwise bool
	startTime time.Time
	endTime   time.Time
}

// NewOrientationController returns a controller at angle zero with
// animation enabled. naturalPortrait reports whether the host device's
// default orientation is portrait; it selects the axis comparison used by
// IsPortrait.
func NewOrientationController(naturalPortrait bool) *OrientationController {
	return &OrientationController{
		Speed:           DefaultRotationSpeed,
		naturalPortrait: naturalPortrait,
		enabled:         true,
	}
}

// Normalize wraps an angle in degrees into [0, 359].
func Normalize(degree int) int {
	degree %= 360
	if degree < 0 {
		degree += 360
	}
	return degree
}

// Distance returns the shortest signed rotation from one angle to another,
// in [-179, 180]. Positive results rotate clockwise; an exact half turn
// stays clockwise.
func Distance(from, to int) int {
	diff := Normalize(to - from)
	if diff > 180 {
		diff -= 360
	}
	return diff
}

// SetOrientation sets the target angle. degree may be any integer and is
// normalized into [0, 359]. When animate is true the controller schedules
// a constant-speed rotation along the shortest path from the current
// angle; otherwise the angle snaps to the target immediately.
//
// Returns true when state changed and the owner should repaint. A degree
// matching the current target is a no-op and returns false.
func (c *OrientationController) SetOrientation(degree int, animate bool) bool {
	c.enabled = animate
	degree = Normalize(degree)
	if degree == c.target {
		return false
	}

	c.target = degree
	if animate {
		c.start = c.current
		c.startTime = Now()

		diff := Distance(c.current, c.target)
		c.clockwise = diff >= 0
		millis := abs(diff) * 1000 / c.speed()
		c.endTime = c.startTime.Add(time.Duration(millis) * time.Millisecond)
	} else {
		c.current = c.target
	}
	return true
}

// Step advances the angle one frame using the package clock. It returns
// true while the animation needs further frames; once the schedule has
// expired the angle snaps to the target and Step returns false.
//
// Step is idempotent for a fixed clock reading: calling it twice without
// advancing time yields the same angle.
func (c *OrientationController) Step() bool {
	if c.current == c.target {
		return false
	}
	now := Now()
	if now.Before(c.endTime) {
		elapsed := int(now.Sub(c.startTime) / time.Millisecond)
		if !c.clockwise {
			elapsed = -elapsed
		}
		c.current = Normalize(c.start + c.speed()*elapsed/1000)
		return true
	}
	c.current = c.target
	return false
}

// IsPortrait reports whether the content reads as portrait at the current
// angle. Angles whose remainder mod 180 falls in (45, 135) present as
// landscape; devices whose natural orientation is portrait invert the
// answer.
func (c *OrientationController) IsPortrait() bool {
	m := c.current % 180
	landscape := m > 45 && m < 135
	if c.naturalPortrait {
		return !landscape
	}
	return landscape
}

// Current returns the angle to paint this frame, in [0, 359].
func (c *OrientationController) Current() int { return c.current }

// Target returns the angle the controller is rotating toward, in [0, 359].
func (c *OrientationController) Target() int { return c.target }

// IsAnimating reports whether the angle has not yet reached the target.
func (c *OrientationController) IsAnimating() bool { return c.current != c.target }

// AnimationEnabled reports whether the most recent SetOrientation call
// allowed animation. Content transitions consult this before cross-fading.
func (c *OrientationController) AnimationEnabled() bool { return c.enabled }

func (c *OrientationController) speed() int {
	if c.Speed > 0 {
		return c.Speed
	}
	return DefaultRotationSpeed
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
