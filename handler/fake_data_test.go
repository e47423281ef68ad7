package handler

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
)

// memStore is a single in-memory store backing all four repository
// interfaces for handler tests.
type memStore struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]*repository.User
	projects map[primitive.ObjectID]*repository.Project
	tasks    map[primitive.ObjectID]*repository.Task
	chats    []*repository.ChatMessage
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[primitive.ObjectID]*repository.User),
		projects: make(map[primitive.ObjectID]*repository.Project),
		tasks:    make(map[primitive.ObjectID]*repository.Task),
	}
}

func (s *memStore) asData() *data.Data {
	return &data.Data{
		UserRepo:    (*memUserRepo)(s),
		ProjectRepo: (*memProjectRepo)(s),
		TaskRepo:    (*memTaskRepo)(s),
		ChatRepo:    (*memChatRepo)(s),
	}
}

type memUserRepo memStore

func (s *memUserRepo) Create(_ context.Context, user *repository.User) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *memUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserRepo) FindByEmailAndName(_ context.Context, email, name string) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.Name == name {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, avatar *string) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name = name
	u.Avatar = avatar
	return u, nil
}

func (s *memUserRepo) SetResetToken(_ context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetPasswordToken = &tokenHash
	u.ResetPasswordExpires = &expires
	return nil
}

func (s *memUserRepo) ResetPassword(_ context.Context, id primitive.ObjectID, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return nil
}

func (s *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type memProjectRepo memStore

func (s *memProjectRepo) List(_ context.Context, owner primitive.ObjectID) ([]*repository.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*repository.Project, 0)
	for _, p := range s.projects {
		if p.UserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProjectRepo) Create(_ context.Context, project *repository.Project) (*repository.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = time.Now().UTC()
	s.projects[project.ID] = project
	return project, nil
}

func (s *memProjectRepo) Get(_ context.Context, owner, id primitive.ObjectID) (*repository.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok && p.UserID == owner {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (s *memProjectRepo) Update(_ context.Context, owner, id primitive.ObjectID, update *repository.ProjectUpdate) (*repository.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.UserID != owner {
		return nil, repository.ErrNotFound
	}
	p.Name = update.Name
	p.Description = update.Description
	p.Color = update.Color
	p.Icon = update.Icon
	return p, nil
}

func (s *memProjectRepo) Delete(_ context.Context, owner, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[id]; ok && p.UserID == owner {
		delete(s.projects, id)
		return nil
	}
	return repository.ErrNotFound
}

func (s *memProjectRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, p := range s.projects {
		if p.UserID == owner {
			delete(s.projects, id)
			n++
		}
	}
	return n, nil
}

type memTaskRepo memStore

func (s *memTaskRepo) List(_ context.Context, owner primitive.ObjectID) ([]*repository.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*repository.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == owner {
			out = append(out, task)
		}
	}
	return out, nil
}

func (s *memTaskRepo) Create(_ context.Context, task *repository.Task) (*repository.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now().UTC()
	s.tasks[task.ID] = task
	return task, nil
}

func (s *memTaskRepo) Get(_ context.Context, owner, id primitive.ObjectID) (*repository.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[id]; ok && task.UserID == owner {
		return task, nil
	}
	return nil, repository.ErrNotFound
}

func (s *memTaskRepo) Update(_ context.Context, owner, id primitive.ObjectID, update *repository.TaskUpdate) (*repository.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok || task.UserID != owner {
		return nil, repository.ErrNotFound
	}
	task.Title = update.Title
	task.Description = update.Description
	task.Status = update.Status
	task.Priority = update.Priority
	task.DueDate = update.DueDate
	task.ProjectID = update.ProjectID
	task.Tags = update.Tags
	task.Attachments = update.Attachments
	return task, nil
}

func (s *memTaskRepo) Delete(_ context.Context, owner, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task, ok := s.tasks[id]; ok && task.UserID == owner {
		delete(s.tasks, id)
		return nil
	}
	return repository.ErrNotFound
}

func (s *memTaskRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, task := range s.tasks {
		if task.UserID == owner {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

type memChatRepo memStore

func (s *memChatRepo) Append(_ context.Context, msg *repository.ChatMessage) (*repository.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	s.chats = append(s.chats, msg)
	return msg, nil
}

func (s *memChatRepo) ListByOwner(_ context.Context, owner primitive.ObjectID, limit, skip int64) ([]*repository.ChatMessage, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := make([]*repository.ChatMessage, 0)
	for _, m := range s.chats {
		if m.UserID == owner {
			owned = append(owned, m)
		}
	}
	total := int64(len(owned))
	if skip >= total {
		return nil, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return owned[skip:end], total, nil
}

func (s *memChatRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.chats[:0]
	var n int64
	for _, m := range s.chats {
		if m.UserID == owner {
			n++
			continue
		}
		kept = append(kept, m)
	}
	s.chats = kept
	return n, nil
}
