// Package gallery implements the rotating achievements carousel.
package gallery

import (
	"context"
	"errors"
	"sync"
	"time"
)

// AutoAdvanceInterval is how often the carousel moves on by itself.
const AutoAdvanceInterval = 5 * time.Second

// MaxVisibleDistance is the furthest circular distance from the focused
// item that is still drawn. Items further away stay in the sequence with
// zero opacity.
const MaxVisibleDistance = 2

// ErrEmpty is returned when a carousel is built without items.
var ErrEmpty = errors.New("gallery: carousel needs at least one item")

// Position is the layout of one item relative to the focused one.
type Position struct {
	Index      int     `json:"index"`
	Offset     int     `json:"offset"`
	TranslateX int     `json:"translateX"`
	RotateY    int     `json:"rotateY"`
	TranslateZ int     `json:"translateZ"`
	Scale      float64 `json:"scale"`
	Opacity    float64 `json:"opacity"`
	Hidden     bool    `json:"hidden"`
}

// Carousel tracks which of n items is focused. It is safe for concurrent use.
type Carousel struct {
	mu      sync.RWMutex
	n       int
	current int
}

// New returns a carousel of n items focused on the first one.
func New(n int) (*Carousel, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	return &Carousel{n: n}, nil
}

// Len returns the number of items.
func (c *Carousel) Len() int { return c.n }

// Current returns the focused index.
func (c *Carousel) Current() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Next focuses the following item, wrapping at the end.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = (c.current + 1) % c.n
	return c.current
}

// Prev focuses the previous item, wrapping at the start.
func (c *Carousel) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = (c.current - 1 + c.n) % c.n
	return c.current
}

// Focus jumps to index i, taken modulo the length.
func (c *Carousel) Focus(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = mod(i, c.n)
	return c.current
}

// Offset is the circular distance of item i from the focused item,
// normalized into [-n/2, n/2].
func (c *Carousel) Offset(i int) int {
	return Offset(i, c.Current(), c.n)
}

// Hidden reports whether item i is too far from the focus to be drawn.
func (c *Carousel) Hidden(i int) bool {
	return abs(c.Offset(i)) > MaxVisibleDistance
}

// Positions lays out every item around the focused one.
func (c *Carousel) Positions() []Position {
	return Layout(c.Current(), c.n)
}

// Run advances the carousel every interval until ctx is done, calling
// tick with the new index after each step.
func (c *Carousel) Run(ctx context.Context, interval time.Duration, tick func(int)) {
	if interval <= 0 {
		interval = AutoAdvanceInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idx := c.Next()
			if tick != nil {
				tick(idx)
			}
		}
	}
}

// Offset computes the normalized circular offset of index i from current
// in a ring of n items.
func Offset(i, current, n int) int {
	offset := i - current
	half := n / 2
	if offset < -half {
		offset += n
	}
	if offset > half {
		offset -= n
	}
	return offset
}

// Layout computes every item's position for the given focus.
func Layout(current, n int) []Position {
	out := make([]Position, n)
	for i := 0; i < n; i++ {
		off := Offset(i, current, n)
		p := Position{
			Index:      i,
			Offset:     off,
			TranslateX: off * 160,
			RotateY:    off * -30,
			TranslateZ: -abs(off) * 120,
			Scale:      0.8,
			Opacity:    1,
		}
		if off == 0 {
			p.Scale = 1
		}
		if abs(off) > MaxVisibleDistance {
			p.Opacity = 0
			p.Hidden = true
		}
		out[i] = p
	}
	return out
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
