package radar

import (
	"github.com/Garsondee/expedition/internal/game"
	"github.com/gdamore/tcell/v2"
)

// Speeds are the selectable sim speeds; index 0 pauses.
var Speeds = []float64{0, 0.5, 1, 2, 4}

// Controls is the keyboard state of the terminal client.
type Controls struct {
	Speed        float64
	Destinations []game.LocationRef
	next         int
}

// NewControls starts at normal speed.
func NewControls(dests []game.LocationRef) *Controls {
	return &Controls{Speed: 1, Destinations: dests}
}

// HandleKey applies one key press to the session. It returns quit=true for
// Esc, Ctrl-C and q, and a non-nil error only when a jump fails fatally.
func (c *Controls) HandleKey(s *game.Session, key tcell.Key, r rune) (quit bool, err error) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyRune:
	default:
		return false, nil
	}

	switch {
	case r == 'q':
		return true, nil
	case r >= '1' && r <= '9':
		s.ToggleSlot(int(r - '1'))
	case r == 'h':
		s.RecallAll()
	case r == 's':
		s.RequestSave()
	case r == 'a':
		// Select the whole fleet except the mothership.
		for _, u := range s.Players {
			u.Selected = u != s.Mothership()
		}
	case r == 'p':
		if c.Speed > 0 {
			c.Speed = 0
		} else {
			c.Speed = 1
		}
	case r == ',':
		for i := len(Speeds) - 1; i > 0; i-- {
			if Speeds[i] <= c.Speed {
				c.Speed = Speeds[i-1]
				break
			}
		}
	case r == '.':
		for _, sp := range Speeds {
			if sp > c.Speed {
				c.Speed = sp
				break
			}
		}
	case r == 'j':
		if len(c.Destinations) == 0 {
			return false, nil
		}
		d := c.Destinations[c.next%len(c.Destinations)]
		c.next++
		if _, err := s.Jump(d.System, d.Area); err != nil {
			return true, err
		}
	}
	return false, nil
}
