package services

import (
	"context"
	"sort"
	"sync"

	"github.com/yoockh/jobboard/internal/models"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/utils"
)

// memDB is an in-memory stand-in for postgres. It enforces the same unique
// keys the schema does and returns the repository sentinels.
type memDB struct {
	mu            sync.Mutex
	users         map[string]*models.User
	profiles      map[string]*models.Profile // by user id
	companies     map[string]*models.Company // by user id
	jobs          map[string]*models.Job
	apps          map[string]*models.Application
	saved         map[string]*models.SavedJob
	conversations map[string]*models.Conversation
	messages      []models.Message
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[string]*models.User{},
		profiles:      map[string]*models.Profile{},
		companies:     map[string]*models.Company{},
		jobs:          map[string]*models.Job{},
		apps:          map[string]*models.Application{},
		saved:         map[string]*models.SavedJob{},
		conversations: map[string]*models.Conversation{},
	}
}

type fakeUsers struct{ db *memDB }

func (f fakeUsers) Create(_ context.Context, u *models.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.users {
		if x.Email == u.Email {
			return utils.ErrDuplicate
		}
	}
	cp := *u
	f.db.users[u.ID] = &cp
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u, ok := f.db.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

type fakeProfiles struct{ db *memDB }

func (f fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.profiles[p.UserID]; ok {
		return utils.ErrDuplicate
	}
	cp := *p
	f.db.profiles[p.UserID] = &cp
	return nil
}

func (f fakeProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.profiles[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakeProfiles) Save(_ context.Context, p *models.Profile) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.profiles[p.UserID]; !ok {
		return utils.ErrNotFound
	}
	cp := *p
	f.db.profiles[p.UserID] = &cp
	return nil
}

func (f fakeProfiles) GetPublic(_ context.Context, userID string, withEmail bool) (*models.PublicProfile, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.profiles[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := &models.PublicProfile{
		ID:                   p.ID,
		UserID:               p.UserID,
		ProfessionalHeadline: p.ProfessionalHeadline,
		Bio:                  p.Bio,
		Skills:               p.Skills,
		Experience:           p.Experience,
		Education:            p.Education,
		Location:             p.Location,
	}
	if u, ok := f.db.users[userID]; ok {
		out.User.Name = u.Name
		if withEmail {
			out.User.Email = u.Email
		}
	}
	return out, nil
}

type fakeCompanies struct{ db *memDB }

func (f fakeCompanies) Create(_ context.Context, c *models.Company) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.companies[c.UserID]; ok {
		return utils.ErrDuplicate
	}
	cp := *c
	f.db.companies[c.UserID] = &cp
	return nil
}

func (f fakeCompanies) GetByUserID(_ context.Context, userID string) (*models.Company, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.companies[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCompanies) Save(_ context.Context, c *models.Company) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.companies[c.UserID]; !ok {
		return utils.ErrNotFound
	}
	cp := *c
	f.db.companies[c.UserID] = &cp
	return nil
}

// Delete mimics the ON DELETE CASCADE chain company -> jobs -> applications/saved jobs.
func (f fakeCompanies) Delete(_ context.Context, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	found := false
	for uid, c := range f.db.companies {
		if c.ID == id {
			delete(f.db.companies, uid)
			found = true
		}
	}
	if !found {
		return utils.ErrNotFound
	}
	for jid, j := range f.db.jobs {
		if j.CompanyID != id {
			continue
		}
		delete(f.db.jobs, jid)
		for aid, a := range f.db.apps {
			if a.JobID == jid {
				delete(f.db.apps, aid)
			}
		}
		for sid, s := range f.db.saved {
			if s.JobID == jid {
				delete(f.db.saved, sid)
			}
		}
	}
	return nil
}

type fakeJobs struct{ db *memDB }

func (f fakeJobs) Create(_ context.Context, j *models.Job) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	cp := *j
	f.db.jobs[j.ID] = &cp
	return nil
}

func (f fakeJobs) companyByID(id string) *models.Company {
	for _, c := range f.db.companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f fakeJobs) GetListing(_ context.Context, id string) (*models.JobListing, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	j, ok := f.db.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	out := &models.JobListing{Job: *j}
	if c := f.companyByID(j.CompanyID); c != nil {
		out.Company = models.JobCompany{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL, Location: c.Location}
	}
	return out, nil
}

func (f fakeJobs) GetByID(_ context.Context, id string) (*models.Job, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	j, ok := f.db.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (f fakeJobs) GetOwned(_ context.Context, id, companyID string) (*models.Job, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	j, ok := f.db.jobs[id]
	if !ok || j.CompanyID != companyID {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

// SearchActive only honors the status filter; predicate composition is covered in the postgres package.
func (f fakeJobs) SearchActive(_ context.Context, _ pgrepo.JobFilter) ([]models.JobListing, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.JobListing
	for _, j := range f.db.jobs {
		if j.Status == models.JobActive {
			out = append(out, models.JobListing{Job: *j})
		}
	}
	return out, nil
}

func (f fakeJobs) ListByCompany(_ context.Context, companyID string) ([]models.Job, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.Job
	for _, j := range f.db.jobs {
		if j.CompanyID == companyID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f fakeJobs) Save(_ context.Context, j *models.Job) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.jobs[j.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *j
	f.db.jobs[j.ID] = &cp
	return nil
}

func (f fakeJobs) Delete(_ context.Context, id, companyID string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	j, ok := f.db.jobs[id]
	if !ok || j.CompanyID != companyID {
		return utils.ErrNotFound
	}
	delete(f.db.jobs, id)
	return nil
}

type fakeApps struct{ db *memDB }

func (f fakeApps) Create(_ context.Context, a *models.Application) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.apps {
		if x.UserID == a.UserID && x.JobID == a.JobID {
			return utils.ErrDuplicate
		}
	}
	cp := *a
	f.db.apps[a.ID] = &cp
	return nil
}

func (f fakeApps) Exists(_ context.Context, userID, jobID string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.apps {
		if x.UserID == userID && x.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeApps) ListByUser(_ context.Context, userID string) ([]models.MyApplication, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.MyApplication
	for _, a := range f.db.apps {
		if a.UserID == userID {
			out = append(out, models.MyApplication{ID: a.ID, Status: a.Status, JobID: a.JobID, AppliedAt: a.AppliedAt})
		}
	}
	return out, nil
}

func (f fakeApps) ListByJob(_ context.Context, jobID string) ([]models.JobApplicant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.JobApplicant
	for _, a := range f.db.apps {
		if a.JobID == jobID {
			out = append(out, models.JobApplicant{ID: a.ID, Status: a.Status, CandidateID: a.UserID})
		}
	}
	return out, nil
}

func (f fakeApps) GetForCompany(_ context.Context, id, companyID string) (*models.Application, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	a, ok := f.db.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	j, ok := f.db.jobs[a.JobID]
	if !ok || j.CompanyID != companyID {
		return nil, utils.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f fakeApps) UpdateStatus(_ context.Context, a *models.Application) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	x, ok := f.db.apps[a.ID]
	if !ok {
		return utils.ErrNotFound
	}
	x.Status = a.Status
	x.UpdatedAt = a.UpdatedAt
	return nil
}

type fakeSaved struct{ db *memDB }

func (f fakeSaved) Create(_ context.Context, s *models.SavedJob) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.saved {
		if x.UserID == s.UserID && x.JobID == s.JobID {
			return utils.ErrDuplicate
		}
	}
	cp := *s
	f.db.saved[s.ID] = &cp
	return nil
}

func (f fakeSaved) Exists(_ context.Context, userID, jobID string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.saved {
		if x.UserID == userID && x.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeSaved) Delete(_ context.Context, userID, jobID string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for id, x := range f.db.saved {
		if x.UserID == userID && x.JobID == jobID {
			delete(f.db.saved, id)
		}
	}
	return nil
}

func (f fakeSaved) ListByUser(_ context.Context, userID string) ([]models.SavedJobView, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.SavedJobView
	for _, x := range f.db.saved {
		if x.UserID == userID {
			out = append(out, models.SavedJobView{ID: x.ID, JobID: x.JobID, SavedAt: x.SavedAt})
		}
	}
	return out, nil
}

type fakeConversations struct{ db *memDB }

func sameJob(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f fakeConversations) Create(_ context.Context, c *models.Conversation) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.conversations {
		if x.Participant1ID == c.Participant1ID && x.Participant2ID == c.Participant2ID && sameJob(x.JobID, c.JobID) {
			return utils.ErrDuplicate
		}
	}
	cp := *c
	f.db.conversations[c.ID] = &cp
	return nil
}

func (f fakeConversations) GetByID(_ context.Context, id string) (*models.Conversation, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.conversations[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeConversations) Find(_ context.Context, p1, p2 string, jobID *string) (*models.Conversation, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, x := range f.db.conversations {
		if x.Participant1ID == p1 && x.Participant2ID == p2 && sameJob(x.JobID, jobID) {
			cp := *x
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f fakeConversations) ListByUser(_ context.Context, userID string) ([]models.Conversation, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.Conversation
	for _, x := range f.db.conversations {
		if x.HasParticipant(userID) {
			out = append(out, *x)
		}
	}
	return out, nil
}

func (f fakeConversations) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.conversations[conversationID]
	return ok && c.HasParticipant(userID), nil
}

func (f fakeConversations) InsertMessage(_ context.Context, m *models.Message) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.messages = append(f.db.messages, *m)
	return nil
}

func (f fakeConversations) ListMessages(_ context.Context, conversationID string, limit int) ([]models.Message, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var out []models.Message
	for _, m := range f.db.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f fakeConversations) MarkRead(_ context.Context, conversationID, readerID string) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for i := range f.db.messages {
		m := &f.db.messages[i]
		if m.ConversationID == conversationID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(u *models.User) (string, error) { return "token-" + u.ID, nil }

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	UserID string
	Event  string
	Data   any
}

func (n *recordingNotifier) NotifyUser(userID, event string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{UserID: userID, Event: event, Data: data})
}

// seedUser inserts a user directly and returns its principal.
func seedUser(db *memDB, id string, role models.Role) models.Principal {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[id] = &models.User{ID: id, Email: id + "@example.com", Name: "User " + id, Role: role}
	return models.Principal{UserID: id, Email: id + "@example.com", Role: role}
}
