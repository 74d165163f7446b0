package store

import (
	"sync"

	"internportal/internal/model"
)

// ViewStore держит последние полученные с внешнего API срезы ростера и
// задач — то, что у каждой вьюхи было бы в собственном локальном
// состоянии. Снимок заменяется целиком при ручном обновлении и никогда
// не меняется до подтверждения сервера.
type ViewStore struct {
	mu     sync.RWMutex
	people []model.Person
	tasks  []model.Task
}

func New() *ViewStore {
	return &ViewStore{}
}

// ReplacePeople заменяет снимок ростера.
func (s *ViewStore) ReplacePeople(people []model.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = append([]model.Person(nil), people...)
}

// People возвращает копию снимка ростера.
func (s *ViewStore) People() []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Person(nil), s.people...)
}

// UpsertPerson заменяет запись по id или добавляет её в конец.
func (s *ViewStore) UpsertPerson(person model.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.people {
		if p.ID == person.ID {
			s.people[i] = person
			return
		}
	}
	s.people = append(s.people, person)
}

// RemovePerson убирает человека из снимка вместе со всеми его задачами.
// Внешнему API каскад не делегируется — это только локальное состояние.
func (s *ViewStore) RemovePerson(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	people := s.people[:0]
	for _, p := range s.people {
		if p.ID != id {
			people = append(people, p)
		}
	}
	s.people = people

	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.AssigneeID != id {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks
}

// ReplaceTasks заменяет снимок задач.
func (s *ViewStore) ReplaceTasks(tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]model.Task(nil), tasks...)
}

// Tasks возвращает копию снимка задач.
func (s *ViewStore) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

// UpsertTask заменяет задачу по id или добавляет её в конец.
func (s *ViewStore) UpsertTask(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append(s.tasks, task)
}

// RemoveTask убирает задачу из снимка.
func (s *ViewStore) RemoveTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks
}
