package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasksphere/server/data"
	"github.com/tasksphere/server/data/repository"
	"github.com/tasksphere/server/email"
	"github.com/tasksphere/server/logging/logger"
	"github.com/tasksphere/server/security/jwt"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*repository.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*repository.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *repository.User) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByEmailAndName(_ context.Context, email, name string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.Name == name {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name string, avatar *string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name = name
	u.Avatar = avatar
	return u, nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetPasswordToken = &tokenHash
	u.ResetPasswordExpires = &expires
	return nil
}

func (f *fakeUserRepo) ResetPassword(_ context.Context, id primitive.ObjectID, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]*repository.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]*repository.Project)}
}

func (f *fakeProjectRepo) List(_ context.Context, owner primitive.ObjectID) ([]*repository.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*repository.Project, 0)
	for _, p := range f.projects {
		if p.UserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) Create(_ context.Context, project *repository.Project) (*repository.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = time.Now().UTC()
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjectRepo) Get(_ context.Context, owner, id primitive.ObjectID) (*repository.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[id]; ok && p.UserID == owner {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProjectRepo) Update(_ context.Context, owner, id primitive.ObjectID, update *repository.ProjectUpdate) (*repository.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok || p.UserID != owner {
		return nil, repository.ErrNotFound
	}
	p.Name = update.Name
	p.Description = update.Description
	p.Color = update.Color
	p.Icon = update.Icon
	return p, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, owner, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[id]; ok && p.UserID == owner {
		delete(f.projects, id)
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeProjectRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, p := range f.projects {
		if p.UserID == owner {
			delete(f.projects, id)
			n++
		}
	}
	return n, nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]*repository.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]*repository.Task)}
}

func (f *fakeTaskRepo) List(_ context.Context, owner primitive.ObjectID) ([]*repository.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*repository.Task, 0)
	for _, task := range f.tasks {
		if task.UserID == owner {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *repository.Task) (*repository.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now().UTC()
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskRepo) Get(_ context.Context, owner, id primitive.ObjectID) (*repository.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task, ok := f.tasks[id]; ok && task.UserID == owner {
		return task, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTaskRepo) Update(_ context.Context, owner, id primitive.ObjectID, update *repository.TaskUpdate) (*repository.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
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

func (f *fakeTaskRepo) Delete(_ context.Context, owner, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task, ok := f.tasks[id]; ok && task.UserID == owner {
		delete(f.tasks, id)
		return nil
	}
	return repository.ErrNotFound
}

func (f *fakeTaskRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, task := range f.tasks {
		if task.UserID == owner {
			delete(f.tasks, id)
			n++
		}
	}
	return n, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []*repository.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{}
}

func (f *fakeChatRepo) Append(_ context.Context, msg *repository.ChatMessage) (*repository.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg.ID = primitive.NewObjectID()
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeChatRepo) ListByOwner(_ context.Context, owner primitive.ObjectID, limit, skip int64) ([]*repository.ChatMessage, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owned := make([]*repository.ChatMessage, 0)
	for _, m := range f.messages {
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

func (f *fakeChatRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.messages[:0]
	var n int64
	for _, m := range f.messages {
		if m.UserID == owner {
			n++
			continue
		}
		kept = append(kept, m)
	}
	f.messages = kept
	return n, nil
}

type fakeRepos struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	tasks    *fakeTaskRepo
	chats    *fakeChatRepo
}

// newTestService builds a Service over in-memory fakes.
func newTestService() (*Service, *fakeRepos) {
	fakes := &fakeRepos{
		users:    newFakeUserRepo(),
		projects: newFakeProjectRepo(),
		tasks:    newFakeTaskRepo(),
		chats:    newFakeChatRepo(),
	}
	d := &data.Data{
		UserRepo:    fakes.users,
		ProjectRepo: fakes.projects,
		TaskRepo:    fakes.tasks,
		ChatRepo:    fakes.chats,
	}
	log := logger.StdLogger()
	notifier := email.NewNotifier(nil, nil, log)
	tm := jwt.NewTokenManager("test-signing-key")
	return New(d, tm, notifier, "http://localhost:3000", log), fakes
}
