package collision

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// The resolvers below write through their pointer arguments: motion is the
// entity's persistent velocity, move the displacement still to apply this tick.
// They keep no state and allocate nothing. Calling one concurrently on the
// same vectors is a data race.

// Stick stops on contact: travel up to the contact point and lose all velocity.
func Stick(c Result, motion, move *mgl64.Vec3) {
	*move = move.Mul(c.Near)
	*motion = mgl64.Vec3{}
}

// Slide clamps only the axis of the struck face, so motion keeps going along
// the surface tangent.
func Slide(c Result, motion, move *mgl64.Vec3) {
	for i := range 3 {
		if c.Normal[i] != 0 {
			move[i] *= c.Near
			motion[i] = 0
		}
	}
}

// Bounce clamps the struck axis like Slide and reflects its motion, scaled by
// the per-axis restitution in bounce.
func Bounce(c Result, motion, move *mgl64.Vec3, bounce mgl64.Vec3) {
	for i := range 3 {
		if c.Normal[i] != 0 {
			move[i] *= c.Near
			motion[i] *= -bounce[i]
		}
	}
}

// Push hands the part of motion beyond the contact point to the other body, on
// the struck axis only. The caller's own vectors are not modified.
func Push(c Result, motion mgl64.Vec3, other *mgl64.Vec3) {
	for i := range 3 {
		if c.Normal[i] != 0 {
			other[i] = motion[i] - motion[i]*c.Near
		}
	}
}

// PushStick is Push applied on every axis.
func PushStick(c Result, motion mgl64.Vec3, other *mgl64.Vec3) {
	*other = motion.Sub(motion.Mul(c.Near))
}

// Response selects one of the resolvers
type Response uint8

const (
	// ResponseSlide is used for rigid obstacles
	ResponseSlide Response = iota
	ResponseStick
	// ResponseBounce reflects motion using a restitution vector
	ResponseBounce
	// ResponsePush and ResponsePushStick transfer motion to what was hit
	// (carried or ridden objects) instead of resolving the mover
	ResponsePush
	ResponsePushStick
)

var responseNames = [...]string{
	ResponseSlide:     "slide",
	ResponseStick:     "stick",
	ResponseBounce:    "bounce",
	ResponsePush:      "push",
	ResponsePushStick: "pushstick",
}

func (r Response) String() string {
	if int(r) < len(responseNames) {
		return responseNames[r]
	}
	return fmt.Sprintf("Response(%d)", r)
}

// Transfers reports whether the response writes the other body's motion
// rather than the mover's own vectors.
func (r Response) Transfers() bool {
	return r == ResponsePush || r == ResponsePushStick
}

// Apply dispatches to the resolver. The meaning of aux depends on the response:
// the restitution vector for ResponseBounce (read), the other body's motion for
// ResponsePush and ResponsePushStick (written), unused otherwise.
func (r Response) Apply(c Result, motion, move, aux *mgl64.Vec3) {
	switch r {
	case ResponseStick:
		Stick(c, motion, move)
	case ResponseBounce:
		Bounce(c, motion, move, *aux)
	case ResponsePush:
		Push(c, *motion, aux)
	case ResponsePushStick:
		PushStick(c, *motion, aux)
	default:
		Slide(c, motion, move)
	}
}

// ParseResponse reads a response name, case-insensitively ("push_stick" and
// "push-stick" are accepted for ResponsePushStick).
func ParseResponse(name string) (Response, error) {
	key := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	for i, n := range responseNames {
		if n == key {
			return Response(i), nil
		}
	}
	return ResponseSlide, fmt.Errorf("unknown collision response %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (r Response) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Response) UnmarshalText(text []byte) error {
	parsed, err := ParseResponse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
