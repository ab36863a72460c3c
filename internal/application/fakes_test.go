package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	repo "github.com/oksasatya/tradedocs-portal/internal/domain/repository"
	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
)

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Outbound
	res  *mailer.Result
	err  error
}

func (f *fakeMailer) Send(_ context.Context, out mailer.Outbound) (*mailer.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, out)
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &mailer.Result{Accepted: []string{out.To}, Transport: "fake"}, nil
}

func (f *fakeMailer) calls() []mailer.Outbound {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Outbound(nil), f.sent...)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, body)
	return nil
}

type fakeArchive struct {
	mu    sync.Mutex
	saved map[string]string
	err   error
}

func (f *fakeArchive) Store(_ context.Context, userID, eventID, html string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[userID+"/"+eventID] = html
	return "gs://bucket/" + userID + "/" + eventID, nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	seq    int
	getErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if x.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	r.seq++
	u.ID = "user-" + string(rune('0'+r.seq))
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	rows []entity.DocumentSent
	err  error
}

func (r *fakeAuditRepo) Insert(_ context.Context, e *entity.DocumentSent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, *e)
	return nil
}

type fakeIndex struct {
	ids     []string
	err     error
	indexed []string
}

func (f *fakeIndex) Search(context.Context, string) ([]string, error) { return f.ids, f.err }

func (f *fakeIndex) Index(_ context.Context, t *entity.Template) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, t.ID)
	return nil
}

var errBoom = errors.New("boom")
