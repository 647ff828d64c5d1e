// Package catalog holds the story content: an immutable set of scenes
// keyed by id, plus the alignment-keyed endings. Content is declared
// in YAML (embedded or external), validated once at construction, and
// never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ashfall-games/intothedark/internal/model"
)

// ErrNotFound is returned when a scene id has no catalog entry.
var ErrNotFound = errors.New("scene not found")

// Catalog is the fixed scene collection for one story.
type Catalog struct {
	scenes  map[int]*model.Scene
	order   []int // scene ids ascending
	endings map[model.Alignment]model.Ending
}

// New builds a catalog from scenes and endings, validating all content
// up front. Invalid content is a fatal construction error; nothing is
// re-checked at play time.
func New(scenes []model.Scene, endings []model.Ending) (*Catalog, error) {
	if err := validate(scenes, endings); err != nil {
		return nil, err
	}

	c := &Catalog{
		scenes:  make(map[int]*model.Scene, len(scenes)),
		order:   make([]int, 0, len(scenes)),
		endings: make(map[model.Alignment]model.Ending, len(endings)),
	}
	for i := range scenes {
		s := scenes[i]
		c.scenes[s.ID] = &s
		c.order = append(c.order, s.ID)
	}
	sort.Ints(c.order)
	for _, e := range endings {
		c.endings[e.Alignment] = e
	}
	return c, nil
}

// Get returns the scene with the given id.
func (c *Catalog) Get(id int) (*model.Scene, error) {
	s, ok := c.scenes[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s, nil
}

// FirstID returns the lowest scene id, where every new game starts.
func (c *Catalog) FirstID() int {
	return c.order[0]
}

// DefaultSuccessor returns the next scene id in ascending id order.
// ok is false when id is the last scene (or unknown): the story ends.
// A choice's explicit next_scene_id overrides this rule.
func (c *Catalog) DefaultSuccessor(id int) (next int, ok bool) {
	i := sort.SearchInts(c.order, id)
	if i >= len(c.order) || c.order[i] != id || i == len(c.order)-1 {
		return 0, false
	}
	return c.order[i+1], true
}

// Len returns the number of scenes.
func (c *Catalog) Len() int {
	return len(c.order)
}

// SceneIDs returns all scene ids in ascending order.
func (c *Catalog) SceneIDs() []int {
	ids := make([]int, len(c.order))
	copy(ids, c.order)
	return ids
}

// Ending returns the terminal scene for an alignment. Balanced shares
// the Neutral ending; the five authored endings are guaranteed present
// by validation.
func (c *Catalog) Ending(a model.Alignment) model.Ending {
	if e, ok := c.endings[a]; ok {
		return e
	}
	return c.endings[model.AlignmentNeutral]
}
