/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fake

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Story is a stored story.
type Story struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// store keeps stories in insertion order. Handlers run concurrently.
type store struct {
	lock    sync.Mutex
	stories map[string]*Story
	order   []string
}

func newStore() *store {
	return &store{
		stories: map[string]*Story{},
	}
}

func (s *store) create(title, description, url string) Story {
	s.lock.Lock()
	defer s.lock.Unlock()

	story := &Story{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		URL:         url,
	}

	s.stories[story.ID] = story
	s.order = append(s.order, story.ID)

	return *story
}

func (s *store) update(id, title, description, url string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	story, ok := s.stories[id]
	if !ok {
		return false
	}

	story.Title = title
	story.Description = description
	story.URL = url

	return true
}

func (s *store) delete(id string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.stories[id]; !ok {
		return false
	}

	delete(s.stories, id)

	s.order = slices.DeleteFunc(s.order, func(other string) bool {
		return other == id
	})

	return true
}

func (s *store) list() []Story {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]Story, 0, len(s.order))

	for _, id := range s.order {
		out = append(out, *s.stories[id])
	}

	return out
}
