package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
)

type fixture struct {
	service     *Service
	users       *fakeUsers
	profiles    *fakeProfiles
	bannedWords *fakeBannedWords
	outbox      *fakeOutbox
	cache       *fakeCache
	revocations *fakeRevocations
}

func newFixture() *fixture {
	users := &fakeUsers{byID: map[uuid.UUID]domain.User{}}
	profiles := &fakeProfiles{byUser: map[uuid.UUID]domain.Profile{}, users: users}
	users.profiles = profiles
	banned := &fakeBannedWords{}
	outbox := &fakeOutbox{}
	users.outbox = outbox
	cache := &fakeCache{items: map[string]string{}}
	revocations := &fakeRevocations{revoked: map[string]bool{}}

	svc := NewService(Dependencies{
		Config: Config{
			ServiceName:           "directory-test",
			UniversityEmailDomain: "university.edu",
			TokenTTL:              time.Hour,
		},
		Users:       users,
		Profiles:    profiles,
		Skills:      &fakeSkills{},
		Projects:    &fakeProjects{},
		BannedWords: banned,
		Outbox:      outbox,
		Idempotency: &fakeIdempotency{records: map[string]ports.IdempotencyRecord{}},
		Cache:       cache,
		Revocations: revocations,
		Files:       &fakeFiles{},
		Hasher:      &fakeHasher{},
		TokenSigner: &fakeSigner{tokens: map[string]ports.SessionClaims{}},
	})

	return &fixture{
		service:     svc,
		users:       users,
		profiles:    profiles,
		bannedWords: banned,
		outbox:      outbox,
		cache:       cache,
		revocations: revocations,
	}
}

func pdfDocument() UploadedFile {
	return UploadedFile{
		Filename:    "id.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 test"),
	}
}

type fakeUsers struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]domain.User
	profiles *fakeProfiles
	outbox   *fakeOutbox
}

func (f *fakeUsers) CreateWithProfileTx(ctx context.Context, params ports.CreateUserParams, event ports.OutboxEvent) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == params.Email || u.StudentID == params.StudentID {
			return domain.User{}, domain.ErrConflict
		}
	}
	user := domain.User{
		UserID:            uuid.New(),
		Name:              params.Name,
		Email:             params.Email,
		PasswordHash:      params.PasswordHash,
		StudentID:         params.StudentID,
		StudentIDDocument: params.StudentIDDocument,
		Role:              params.Role,
		Status:            params.Status,
		CreatedAt:         params.RegisteredAt,
		UpdatedAt:         params.RegisteredAt,
	}
	f.byID[user.UserID] = user
	f.createProfile(user.UserID, params.Username, params.RegisteredAt)
	if f.outbox != nil {
		_ = f.outbox.Enqueue(ctx, event)
	}
	return user, nil
}

// createProfile mirrors the transactional user+profile insert.
func (f *fakeUsers) createProfile(userID uuid.UUID, username string, at time.Time) {
	if f.profiles == nil {
		return
	}
	f.profiles.put(domain.Profile{
		ProfileID:  uuid.New(),
		UserID:     userID,
		Username:   username,
		Interests:  []string{},
		Visibility: domain.VisibilityPublic,
		CreatedAt:  at,
		UpdatedAt:  at,
	})
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, userID uuid.UUID) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdateStatus(_ context.Context, userID uuid.UUID, status domain.AccountStatus, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = status
	u.UpdatedAt = updatedAt
	f.byID[userID] = u
	return nil
}

func (f *fakeUsers) ListByStatus(_ context.Context, status domain.AccountStatus, _, _ int) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.byID {
		if u.Role == domain.RoleStudent && u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) ListStudents(_ context.Context, _, _ int) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for _, u := range f.byID {
		if u.Role == domain.RoleStudent {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) CountStats(_ context.Context) (domain.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stats domain.DashboardStats
	for _, u := range f.byID {
		if u.Role != domain.RoleStudent {
			continue
		}
		stats.TotalStudents++
		switch u.Status {
		case domain.AccountStatusPending:
			stats.Pending++
		case domain.AccountStatusApproved:
			stats.Approved++
		case domain.AccountStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (f *fakeUsers) Delete(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, userID)
	return nil
}

type fakeProfiles struct {
	mu     sync.Mutex
	byUser map[uuid.UUID]domain.Profile
	users  *fakeUsers
}

func (f *fakeProfiles) put(p domain.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[p.UserID] = p
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetByUsername(_ context.Context, username string) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byUser {
		if p.Username == username {
			return p, nil
		}
	}
	return domain.Profile{}, domain.ErrNotFound
}

func (f *fakeProfiles) Update(_ context.Context, params ports.UpdateProfileParams) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[params.UserID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	if params.Bio != nil {
		p.Bio = *params.Bio
	}
	if params.Interests != nil {
		p.Interests = params.Interests
	}
	if params.Contact != nil {
		p.Contact = *params.Contact
	}
	if params.Visibility != nil {
		p.Visibility = *params.Visibility
	}
	if params.PhotoURL != nil {
		p.PhotoURL = *params.PhotoURL
	}
	p.UpdatedAt = params.UpdatedAt
	f.byUser[params.UserID] = p
	return p, nil
}

func (f *fakeProfiles) IncrementFlaggedAttempts(_ context.Context, userID uuid.UUID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.FlaggedAttempts += delta
	f.byUser[userID] = p
	return nil
}

func (f *fakeProfiles) ListDirectory(ctx context.Context, visibilities []domain.Visibility, includeOwner *uuid.UUID, _, _ int) ([]ports.DirectoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	allowed := map[domain.Visibility]bool{}
	for _, v := range visibilities {
		allowed[v] = true
	}
	var out []ports.DirectoryEntry
	for _, p := range f.byUser {
		user, ok := f.users.byID[p.UserID]
		if !ok || user.Role != domain.RoleStudent || user.Status != domain.AccountStatusApproved {
			continue
		}
		isOwner := includeOwner != nil && *includeOwner == p.UserID
		if !allowed[p.Visibility] && !isOwner {
			continue
		}
		out = append(out, ports.DirectoryEntry{
			UserID:     p.UserID,
			Username:   p.Username,
			Name:       user.Name,
			Bio:        p.Bio,
			PhotoURL:   p.PhotoURL,
			Visibility: p.Visibility,
		})
	}
	return out, nil
}

func (f *fakeProfiles) ListTopFlagged(_ context.Context, limit int) ([]ports.FlaggedStudent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ports.FlaggedStudent
	for _, p := range f.byUser {
		if p.FlaggedAttempts == 0 {
			continue
		}
		name := ""
		if u, ok := f.users.byID[p.UserID]; ok {
			name = u.Name
		}
		out = append(out, ports.FlaggedStudent{
			UserID:          p.UserID,
			Username:        p.Username,
			Name:            name,
			FlaggedAttempts: p.FlaggedAttempts,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfiles) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byUser {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeSkills struct {
	mu     sync.Mutex
	skills []domain.Skill
}

func (f *fakeSkills) ListByUserID(_ context.Context, userID uuid.UUID) ([]domain.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Skill
	for _, s := range f.skills {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSkills) Create(_ context.Context, params ports.AddSkillParams) (domain.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	skill := domain.Skill{
		SkillID: uuid.New(),
		UserID:  params.UserID,
		Name:    params.Name,
		Level:   params.Level,
		AddedAt: params.AddedAt,
	}
	f.skills = append(f.skills, skill)
	return skill, nil
}

type fakeProjects struct {
	mu       sync.Mutex
	projects []domain.Project
}

func (f *fakeProjects) ListByUserID(_ context.Context, userID uuid.UUID) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) Create(_ context.Context, params ports.AddProjectParams) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project := domain.Project{
		ProjectID:   uuid.New(),
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		GitHubLink:  params.GitHubLink,
		LiveLink:    params.LiveLink,
		AddedAt:     params.AddedAt,
	}
	f.projects = append(f.projects, project)
	return project, nil
}

type fakeBannedWords struct {
	mu    sync.Mutex
	words []domain.BannedWord
}

func (f *fakeBannedWords) ListAll(_ context.Context) ([]domain.BannedWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.BannedWord, len(f.words))
	copy(out, f.words)
	return out, nil
}

func (f *fakeBannedWords) Insert(_ context.Context, term string, createdAt time.Time) (domain.BannedWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.words {
		if w.Term == term {
			return domain.BannedWord{}, domain.ErrTermExists
		}
	}
	word := domain.BannedWord{BannedWordID: uuid.New(), Term: term, CreatedAt: createdAt}
	f.words = append(f.words, word)
	return word, nil
}

func (f *fakeBannedWords) DeleteByTerm(_ context.Context, term string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.words {
		if w.Term == term {
			f.words = append(f.words[:i], f.words[i+1:]...)
			return nil
		}
	}
	return domain.ErrTermNotFound
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []ports.OutboxEvent
}

func (f *fakeOutbox) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutbox) FetchUnpublished(_ context.Context, _ int) ([]ports.OutboxRecord, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

func (f *fakeOutbox) MarkFailed(_ context.Context, _ uuid.UUID, _ string, _ time.Time) error {
	return nil
}

func (f *fakeOutbox) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.EventType)
	}
	return out
}

type fakeIdempotency struct {
	mu      sync.Mutex
	records map[string]ports.IdempotencyRecord
}

func (f *fakeIdempotency) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeIdempotency) Reserve(_ context.Context, key, requestHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[key]; ok {
		return domain.ErrConflict
	}
	f.records[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      "in_progress",
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (f *fakeIdempotency) Complete(_ context.Context, key string, responseCode int, responseBody []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[key]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = "completed"
	rec.ResponseCode = responseCode
	rec.ResponseBody = responseBody
	f.records[key] = rec
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]string
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[key], nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.items, k)
	}
	return nil
}

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (f *fakeRevocations) MarkRevoked(_ context.Context, sessionID string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[sessionID] = true
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[sessionID], nil
}

type fakeFiles struct{}

func (f *fakeFiles) Save(_ context.Context, category, filename string, _ []byte) (string, error) {
	return "/uploads/" + category + "/" + filename, nil
}

type fakeHasher struct{}

func (f *fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

type fakeSigner struct {
	mu     sync.Mutex
	tokens map[string]ports.SessionClaims
}

func (f *fakeSigner) Sign(claims ports.SessionClaims) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := "tok-" + uuid.NewString()
	f.tokens[token] = claims
	return token, nil
}

func (f *fakeSigner) ParseAndValidate(token string) (ports.SessionClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	claims, ok := f.tokens[token]
	if !ok {
		return ports.SessionClaims{}, errors.New("unknown token")
	}
	return claims, nil
}
